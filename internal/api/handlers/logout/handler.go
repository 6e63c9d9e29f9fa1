package logout

import (
	"net/http"

	"github.com/barberbook/booking-service/internal/api/handlers"
)

const msgLoggedOut = "logged out"

type AuthService interface {
	ClearSessionCookie() *http.Cookie
}

type Logger interface {
	Info(format string, v ...interface{})
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

// LogoutResponse HTTP response model
type LogoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Handle POST /auth/logout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.service.ClearSessionCookie())
	handlers.RespondJSON(w, http.StatusOK, LogoutResponse{Success: true, Message: msgLoggedOut})
}
