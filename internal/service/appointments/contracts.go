package appointments

import (
	"context"

	"github.com/barberbook/booking-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Update(ctx context.Context, id int64, update domain.AppointmentUpdate) error
	Delete(ctx context.Context, id int64) error
}

// EventPublisher публикует события об изменениях записей
type EventPublisher interface {
	AppointmentStatusChanged(ctx context.Context, id int64, status domain.AppointmentStatus)
	AppointmentDeleted(ctx context.Context, id int64)
}

// SlotsCache сбрасывает кеш слотов затронутой даты
type SlotsCache interface {
	Invalidate(ctx context.Context, date string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
