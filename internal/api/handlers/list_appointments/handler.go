package list_appointments

import (
	"net/http"

	"github.com/barberbook/booking-service/internal/api/handlers"
	"github.com/barberbook/booking-service/internal/service/appointments/models"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ListResponse HTTP response model
type ListResponse struct {
	Success      bool                         `json:"success"`
	Appointments []models.AppointmentResponse `json:"appointments"`
}

// Handle GET /appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /appointments - Failed to list appointments: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ListResponse{
		Success:      true,
		Appointments: result.Appointments,
	})
}
