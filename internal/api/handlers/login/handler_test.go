package login

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/barberbook/booking-service/internal/service/auth"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newHandler(t *testing.T) *Handler {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := auth.NewService([]auth.Credential{
		{Username: "admin", PasswordHash: string(hash)},
	}, 24*time.Hour, false, nopLogger{})

	return NewHandler(svc, nopLogger{})
}

func doLogin(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestLoginSuccessSetsSessionCookie(t *testing.T) {
	rec := doLogin(newHandler(t), `{"username":"admin","password":"admin123"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	require.Equal(t, auth.CookieName, cookie.Name)
	require.Equal(t, "authenticated", cookie.Value)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	require.Equal(t, 24*60*60, cookie.MaxAge)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	for _, body := range []string{
		`{"username":"admin","password":"wrong"}`,
		`{"username":"ghost","password":"admin123"}`,
	} {
		rec := doLogin(newHandler(t), body)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Empty(t, rec.Result().Cookies())
	}
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	rec := doLogin(newHandler(t), `{"username":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
