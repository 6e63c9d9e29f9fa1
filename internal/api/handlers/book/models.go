package book

import (
	"time"

	"github.com/barberbook/booking-service/internal/domain"
	bookAppointment "github.com/barberbook/booking-service/internal/usecase/book_appointment"
	"github.com/barberbook/booking-service/pkg/types"
)

// BookRequest HTTP request model
type BookRequest struct {
	Name    string  `json:"name"`
	Email   *string `json:"email,omitempty"`
	Phone   string  `json:"phone"`
	Service string  `json:"service"`
	Date    string  `json:"date"` // "2026-09-15"
	Time    string  `json:"time"` // "10:00"

	// Идентичность подтвержденного клиента (опционально)
	CustomerID    *string `json:"customerId,omitempty"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
}

// BookResponse HTTP response model
type BookResponse struct {
	Success       bool   `json:"success"`
	AppointmentID int64  `json:"appointmentId"`
	Message       string `json:"message"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookRequest) ToUseCaseRequest() (*bookAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	slot, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &bookAppointment.Request{
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		Service:       domain.ServiceType(r.Service),
		Date:          date,
		Time:          slot,
		CustomerID:    r.CustomerID,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
	}, nil
}
