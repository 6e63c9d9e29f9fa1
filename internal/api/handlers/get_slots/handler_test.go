package get_slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/barberbook/booking-service/internal/usecase/get_available_slots"
	"github.com/barberbook/booking-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubUseCase struct {
	resp  *getAvailableSlots.Response
	err   error
	calls int
}

func (s *stubUseCase) Execute(_ context.Context, _ *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.calls++
	return s.resp, s.err
}

type stubCache struct {
	slots    []string
	hit      bool
	setDates []string
}

func (c *stubCache) Get(_ context.Context, _ string) ([]string, bool, error) {
	return c.slots, c.hit, nil
}

func (c *stubCache) Set(_ context.Context, date string, _ []string) error {
	c.setDates = append(c.setDates, date)
	return nil
}

func doRequest(h *Handler, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandleComputesAndCaches(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &getAvailableSlots.Response{
		Date:           date,
		AvailableSlots: []types.TimeString{"09:00", "09:30"},
	}}
	cache := &stubCache{}
	h := NewHandler(uc, cache, nopLogger{})

	rec := doRequest(h, "/slots?date=2026-09-15")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "public, max-age=60", rec.Header().Get("Cache-Control"))
	require.JSONEq(t,
		`{"success":true,"date":"2026-09-15","availableSlots":["09:00","09:30"]}`,
		rec.Body.String())
	require.Equal(t, 1, uc.calls)
	require.Equal(t, []string{"2026-09-15"}, cache.setDates)
}

func TestHandleCacheHitSkipsUseCase(t *testing.T) {
	uc := &stubUseCase{}
	cache := &stubCache{slots: []string{"14:00"}, hit: true}
	h := NewHandler(uc, cache, nopLogger{})

	rec := doRequest(h, "/slots?date=2026-09-15")

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t,
		`{"success":true,"date":"2026-09-15","availableSlots":["14:00"]}`,
		rec.Body.String())
	require.Zero(t, uc.calls)
}

func TestHandleBadDate(t *testing.T) {
	tests := []struct {
		name string
		url  string
		err  error
	}{
		{"missing date", "/slots", nil},
		{"malformed date", "/slots?date=15.09.2026", nil},
		{"past date", "/slots?date=2026-09-15", getAvailableSlots.ErrPastDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{err: tt.err}
			rec := doRequest(NewHandler(uc, &stubCache{}, nopLogger{}), tt.url)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
