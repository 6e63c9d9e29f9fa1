package events

import (
	"context"

	"github.com/barberbook/booking-service/internal/domain"
)

// NoopPublisher заглушка, используется когда публикация событий отключена
type NoopPublisher struct{}

func (NoopPublisher) AppointmentCreated(context.Context, *domain.Appointment) {}

func (NoopPublisher) AppointmentStatusChanged(context.Context, int64, domain.AppointmentStatus) {}

func (NoopPublisher) AppointmentDeleted(context.Context, int64) {}
