package get_slots

import (
	"github.com/barberbook/booking-service/internal/domain"
	getAvailableSlots "github.com/barberbook/booking-service/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Success        bool     `json:"success"`
	Date           string   `json:"date"`
	AvailableSlots []string `json:"availableSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailableSlots.Response) SlotsResponse {
	slots := make([]string, len(resp.AvailableSlots))
	for i, slot := range resp.AvailableSlots {
		slots[i] = slot.String()
	}

	return SlotsResponse{
		Success:        true,
		Date:           resp.Date.Format(domain.DateFormat),
		AvailableSlots: slots,
	}
}
