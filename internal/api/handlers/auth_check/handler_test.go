package auth_check

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/barberbook/booking-service/internal/service/auth"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{}) {}

func doCheck(t *testing.T, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	svc := auth.NewService(nil, 24*time.Hour, false, nopLogger{})
	h := NewHandler(svc, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/auth/check", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestCheckValidSession(t *testing.T) {
	rec := doCheck(t, &http.Cookie{Name: auth.CookieName, Value: "authenticated"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true,"authenticated":true}`, rec.Body.String())
}

func TestCheckRejectsMissingOrForgedCookie(t *testing.T) {
	// Middleware пропускает любую cookie с нужным именем,
	// /auth/check сверяет само значение
	rec := doCheck(t, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doCheck(t, &http.Cookie{Name: auth.CookieName, Value: "forged"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
