package update

import (
	"context"

	"github.com/barberbook/booking-service/internal/service/appointments/models"
)

type AppointmentsService interface {
	Update(ctx context.Context, id int64, req *models.UpdateAppointmentRequest) error
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
