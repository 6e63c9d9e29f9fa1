package domain

import (
	"time"

	"github.com/barberbook/booking-service/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// IsValid reports whether the status is one of the known values
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// ServiceType represents the barbershop service being booked
type ServiceType string

const (
	ServiceHaircut ServiceType = "haircut"
	ServiceBeard   ServiceType = "beard"
	ServiceBoth    ServiceType = "both"
)

// IsValid reports whether the service type is one of the known values
func (s ServiceType) IsValid() bool {
	switch s {
	case ServiceHaircut, ServiceBeard, ServiceBoth:
		return true
	default:
		return false
	}
}

// Appointment represents a customer booking at the barbershop
type Appointment struct {
	ID      int64
	Name    string
	Email   *string // опционально, старые записи могут быть без email
	Phone   string  // нормализованный международный формат: +<код страны><номер>
	Service ServiceType
	Date    time.Time // календарная дата, время внутри суток игнорируется
	Time    types.TimeString
	Status  AppointmentStatus

	// Привязка к аутентифицированному клиенту (если бронь сделана после входа)
	CustomerID    *string
	CustomerEmail *string
	CustomerPhone *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLive returns true if the appointment still occupies its slot
func (a *Appointment) IsLive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanTransitionTo reports whether the status change is allowed.
// Разрешённые переходы: pending → confirmed, pending → cancelled,
// confirmed → cancelled. Повторная установка текущего статуса допустима.
func (a *Appointment) CanTransitionTo(target AppointmentStatus) bool {
	if a.Status == target {
		return true
	}

	switch a.Status {
	case StatusPending:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusCancelled
	default:
		// Из cancelled выхода нет
		return false
	}
}

// AppointmentUpdate describes a partial update of an appointment.
// Nil-поля не изменяются.
type AppointmentUpdate struct {
	Name    *string
	Email   *string
	Phone   *string
	Service *ServiceType
	Date    *time.Time
	Time    *types.TimeString
	Status  *AppointmentStatus
}

// IsEmpty reports whether the update changes nothing
func (u *AppointmentUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil &&
		u.Service == nil && u.Date == nil && u.Time == nil && u.Status == nil
}
