package auth_check

import (
	"net/http"

	"github.com/barberbook/booking-service/internal/api/handlers"
	"github.com/barberbook/booking-service/internal/service/auth"
)

const msgNotAuthenticated = "not authenticated"

type AuthService interface {
	ValidateToken(token string) bool
}

type Logger interface {
	Warn(format string, v ...interface{})
}

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// CheckResponse HTTP response model
type CheckResponse struct {
	Success       bool `json:"success"`
	Authenticated bool `json:"authenticated"`
}

// Handle GET /auth/check.
// В отличие от middleware здесь сверяется само значение токена.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(auth.CookieName)
	if err != nil || !h.service.ValidateToken(cookie.Value) {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CheckResponse{Success: true, Authenticated: true})
}
