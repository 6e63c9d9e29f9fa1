package update

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/barberbook/booking-service/internal/api/handlers"
	"github.com/barberbook/booking-service/internal/service/appointments"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidID          = "invalid appointment id"
	msgInvalidDateOrTime  = "invalid date or time, expected YYYY-MM-DD and HH:MM"
	msgInvalidInput       = "invalid appointment data"
	msgInvalidStatus      = "invalid appointment status"
	msgInvalidTransition  = "status transition not allowed"
	msgSlotTaken          = "target time slot is already taken"
	msgNotFound           = "appointment not found"
	msgUpdated            = "appointment updated"
	msgDeleted            = "appointment deleted"
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

// StatusResponse HTTP response model
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HandleUpdate PATCH /update
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /update - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.ID <= 0 {
		h.logger.Warn("PATCH /update - Invalid id: %d", req.ID)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PATCH /update - Failed to parse request: id=%d, error=%v", req.ID, err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	if err := h.service.Update(r.Context(), req.ID, serviceReq); err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidStatus):
			h.logger.Warn("PATCH /update - Invalid status: id=%d", req.ID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("PATCH /update - Invalid transition: id=%d", req.ID)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("PATCH /update - Invalid input: id=%d, error=%v", req.ID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, appointments.ErrSlotTaken):
			h.logger.Warn("PATCH /update - Slot taken: id=%d", req.ID)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /update - Not found: id=%d", req.ID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /update - Failed to update: id=%d, error=%v", req.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /update - Appointment updated: id=%d", req.ID)
	handlers.RespondJSON(w, http.StatusOK, StatusResponse{Success: true, Message: msgUpdated})
}

// HandleDelete DELETE /update?id=
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	rawID := r.URL.Query().Get("id")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("DELETE /update - Invalid id: %q", rawID)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /update - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /update - Failed to delete: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /update - Appointment deleted: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, StatusResponse{Success: true, Message: msgDeleted})
}
