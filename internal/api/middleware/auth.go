package middleware

import (
	"net/http"

	"github.com/barberbook/booking-service/internal/api/handlers"
	"github.com/barberbook/booking-service/internal/service/auth"
)

const msgAuthRequired = "authentication required"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth пропускает запрос дальше только при наличии сессионной cookie.
// Проверяется лишь наличие cookie, её значение сверяется отдельно
// эндпоинтом /auth/check.
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := r.Cookie(auth.CookieName); err != nil {
				logger.Warn("%s %s - unauthenticated admin request", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgAuthRequired)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
