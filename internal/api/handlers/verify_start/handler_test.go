package verify_start

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/barberbook/booking-service/internal/service/verification"
)

type stubService struct {
	token string
	err   error
	phone string
}

func (s *stubService) Start(_ context.Context, phone string) (string, error) {
	s.phone = phone
	return s.token, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doStart(svc *stubService, body string) *httptest.ResponseRecorder {
	h := NewHandler(svc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/verify/start", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestStartReturnsVerificationToken(t *testing.T) {
	svc := &stubService{token: "tok-123"}
	rec := doStart(svc, `{"phone":"+491701234567"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "+491701234567", svc.phone)

	// Клиент читает именно поле verificationToken
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, true, body["success"])
	require.Equal(t, "tok-123", body["verificationToken"])
}

func TestStartRejectsInvalidPhone(t *testing.T) {
	svc := &stubService{err: verification.ErrInvalidPhone}
	rec := doStart(svc, `{"phone":"12345"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStartRejectsMalformedBody(t *testing.T) {
	rec := doStart(&stubService{}, `{"phone":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
