package models

import (
	"time"

	"github.com/barberbook/booking-service/internal/domain"
	"github.com/barberbook/booking-service/pkg/types"
)

// AppointmentResponse модель записи для отдачи наружу
type AppointmentResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Email         *string `json:"email,omitempty"`
	Phone         string  `json:"phone"`
	Service       string  `json:"service"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	Status        string  `json:"status"`
	CustomerID    *string `json:"customerId,omitempty"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// UpdateAppointmentRequest частичное обновление записи, nil-поля не изменяются
type UpdateAppointmentRequest struct {
	Status  *string
	Name    *string
	Email   *string
	Phone   *string
	Service *string
	Date    *time.Time
	Time    *types.TimeString
}

// FromDomainAppointment конвертирует доменную запись в модель ответа
func FromDomainAppointment(appt *domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:            appt.ID,
		Name:          appt.Name,
		Email:         appt.Email,
		Phone:         appt.Phone,
		Service:       string(appt.Service),
		Date:          appt.Date.Format(domain.DateFormat),
		Time:          appt.Time.String(),
		Status:        string(appt.Status),
		CustomerID:    appt.CustomerID,
		CustomerEmail: appt.CustomerEmail,
		CustomerPhone: appt.CustomerPhone,
		CreatedAt:     appt.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainAppointmentList конвертирует список доменных записей
func FromDomainAppointmentList(appts []*domain.Appointment) *AppointmentListResponse {
	out := make([]AppointmentResponse, len(appts))
	for i, appt := range appts {
		out[i] = FromDomainAppointment(appt)
	}
	return &AppointmentListResponse{Appointments: out}
}

// ToDomainStatus валидирует и конвертирует строковый статус
func ToDomainStatus(raw string) (domain.AppointmentStatus, bool) {
	status := domain.AppointmentStatus(raw)
	return status, status.IsValid()
}
