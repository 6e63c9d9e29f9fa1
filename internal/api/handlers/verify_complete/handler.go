package verify_complete

import (
	"context"
	"errors"
	"net/http"

	"github.com/barberbook/booking-service/internal/api/handlers"
	"github.com/barberbook/booking-service/internal/service/verification"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgSessionNotFound    = "verification session not found or expired"
	msgInvalidCode        = "invalid verification code"
	msgTooManyAttempts    = "too many attempts, request a new code"
	msgVerified           = "phone verified"
)

type VerificationService interface {
	Complete(ctx context.Context, token, code string) (*verification.CustomerIdentity, error)
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

// CompleteRequest HTTP request model
type CompleteRequest struct {
	Token string `json:"token"`
	Code  string `json:"code"`
}

// CompleteResponse HTTP response model
type CompleteResponse struct {
	Success    bool   `json:"success"`
	CustomerID string `json:"customerId"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
}

// Handle POST /verify/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CompleteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /verify/complete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	identity, err := h.service.Complete(r.Context(), req.Token, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrSessionNotFound):
			h.logger.Warn("POST /verify/complete - Session not found")
			handlers.RespondBadRequest(w, msgSessionNotFound)

		case errors.Is(err, verification.ErrInvalidCode):
			h.logger.Warn("POST /verify/complete - Invalid code")
			handlers.RespondUnauthorized(w, msgInvalidCode)

		case errors.Is(err, verification.ErrTooManyAttempts):
			h.logger.Warn("POST /verify/complete - Too many attempts")
			handlers.RespondUnauthorized(w, msgTooManyAttempts)

		default:
			h.logger.Error("POST /verify/complete - Failed to complete verification: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CompleteResponse{
		Success:    true,
		CustomerID: identity.CustomerID,
		Phone:      identity.Phone,
		Message:    msgVerified,
	})
}
