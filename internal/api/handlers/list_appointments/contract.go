package list_appointments

import (
	"context"

	"github.com/barberbook/booking-service/internal/service/appointments/models"
)

type AppointmentsService interface {
	List(ctx context.Context) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
