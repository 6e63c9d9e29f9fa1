package get_slots

import (
	"context"

	getAvailableSlots "github.com/barberbook/booking-service/internal/usecase/get_available_slots"
)

type GetAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

// SlotsCache кеш рассчитанных слотов на дату
type SlotsCache interface {
	Get(ctx context.Context, date string) ([]string, bool, error)
	Set(ctx context.Context, date string, slots []string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
