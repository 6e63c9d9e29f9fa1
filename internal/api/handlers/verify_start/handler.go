package verify_start

import (
	"context"
	"errors"
	"net/http"

	"github.com/barberbook/booking-service/internal/api/handlers"
	"github.com/barberbook/booking-service/internal/service/verification"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidPhone       = "invalid phone number, expected international format"
	msgCodeSent           = "verification code sent"
)

type VerificationService interface {
	Start(ctx context.Context, phone string) (string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service VerificationService
	logger  Logger
}

func NewHandler(service VerificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// StartRequest HTTP request model
type StartRequest struct {
	Phone string `json:"phone"`
}

// StartResponse HTTP response model
type StartResponse struct {
	Success           bool   `json:"success"`
	VerificationToken string `json:"verificationToken"`
	Message           string `json:"message"`
}

// Handle POST /verify/start
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /verify/start - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	token, err := h.service.Start(r.Context(), req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrInvalidPhone):
			h.logger.Warn("POST /verify/start - Invalid phone: %q", req.Phone)
			handlers.RespondBadRequest(w, msgInvalidPhone)

		default:
			h.logger.Error("POST /verify/start - Failed to start verification: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, StartResponse{
		Success:           true,
		VerificationToken: token,
		Message:           msgCodeSent,
	})
}
