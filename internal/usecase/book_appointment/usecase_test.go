package book_appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/barberbook/booking-service/internal/domain"
	apptRepo "github.com/barberbook/booking-service/internal/infra/storage/appointment"
	"github.com/barberbook/booking-service/pkg/ptr"
	"github.com/barberbook/booking-service/pkg/types"
)

type stubRepo struct {
	occupied  []types.TimeString
	createErr error
	created   *domain.Appointment
}

func (s *stubRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	appt.ID = 42
	appt.CreatedAt = time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC)
	s.created = appt
	return appt, nil
}

func (s *stubRepo) GetTimesByDate(_ context.Context, _ time.Time) ([]types.TimeString, error) {
	return s.occupied, nil
}

// inlineTxManager выполняет функцию без реальной транзакции
type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingEvents struct {
	created []*domain.Appointment
}

func (r *recordingEvents) AppointmentCreated(_ context.Context, appt *domain.Appointment) {
	r.created = append(r.created, appt)
}

type recordingCache struct {
	invalidated []string
}

func (r *recordingCache) Invalidate(_ context.Context, date string) error {
	r.invalidated = append(r.invalidated, date)
	return nil
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *stubRepo, events *recordingEvents, cache *recordingCache) *UseCase {
	uc := NewUseCase(
		repo,
		inlineTxManager{},
		events,
		cache,
		domain.SlotTemplate{"09:00", "09:30", "10:00"},
		time.UTC,
		nopLogger{},
	)
	uc.timeProvider = &fixedClock{now: time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC)}
	return uc
}

func validRequest() *Request {
	return &Request{
		Name:    "John Doe",
		Email:   ptr.Ptr("john@example.com"),
		Phone:   "+491701234567",
		Service: domain.ServiceHaircut,
		Date:    time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Time:    "09:30",
	}
}

func TestUseCase_Execute_CreatesPendingAppointment(t *testing.T) {
	repo := &stubRepo{}
	events := &recordingEvents{}
	cache := &recordingCache{}
	uc := newTestUseCase(repo, events, cache)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Equal(t, int64(42), resp.ID)
	require.Equal(t, string(domain.StatusPending), resp.Status)
	require.Equal(t, domain.StatusPending, repo.created.Status, "status must be forced to pending")

	require.Equal(t, []string{"2025-06-10"}, cache.invalidated)
	require.Len(t, events.created, 1)
}

func TestUseCase_Execute_OccupiedSlotRejected(t *testing.T) {
	repo := &stubRepo{occupied: []types.TimeString{"09:30"}}
	uc := newTestUseCase(repo, &recordingEvents{}, &recordingCache{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotTaken)
	require.Nil(t, repo.created)
}

func TestUseCase_Execute_UniqueIndexConflictMapsToSlotTaken(t *testing.T) {
	repo := &stubRepo{createErr: apptRepo.ErrSlotTaken}
	uc := newTestUseCase(repo, &recordingEvents{}, &recordingCache{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotTaken)
}

func TestUseCase_Execute_SerializationConflictOnInsertMapsToSlotTaken(t *testing.T) {
	repo := &stubRepo{createErr: apptRepo.ErrSerializationConflict}
	uc := newTestUseCase(repo, &recordingEvents{}, &recordingCache{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotTaken)
}

// commitConflictTxManager выполняет функцию, но роняет "коммит" как
// конкурентная сериализуемая транзакция
type commitConflictTxManager struct{}

func (commitConflictTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return fmt.Errorf("txmanager: commit transaction: %w", &pq.Error{Code: "40001"})
}

func TestUseCase_Execute_SerializationConflictOnCommitMapsToSlotTaken(t *testing.T) {
	events := &recordingEvents{}
	cache := &recordingCache{}
	uc := newTestUseCase(&stubRepo{}, events, cache)
	uc.txManager = commitConflictTxManager{}

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotTaken)

	require.Empty(t, cache.invalidated, "cache must not be touched for a failed booking")
	require.Empty(t, events.created, "no event for a failed booking")
}

func TestUseCase_Execute_SameDayAcceptedWestOfUTC(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	repo := &stubRepo{}
	uc := NewUseCase(
		repo,
		inlineTxManager{},
		&recordingEvents{},
		&recordingCache{},
		domain.SlotTemplate{"09:00", "09:30", "10:00"},
		loc,
		nopLogger{},
	)
	// 12:00 UTC = 08:00 в Нью-Йорке, календарный день там еще 10 июня
	uc.timeProvider = &fixedClock{now: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)}

	req := validRequest()
	req.Date = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	resp, execErr := uc.Execute(context.Background(), req)
	require.NoError(t, execErr)
	require.Equal(t, int64(42), resp.ID)
}

func TestUseCase_Execute_PastDateRejected(t *testing.T) {
	uc := newTestUseCase(&stubRepo{}, &recordingEvents{}, &recordingCache{})

	req := validRequest()
	req.Date = time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrPastDate)
}

func TestUseCase_Execute_TimeOutsideTemplateRejected(t *testing.T) {
	uc := newTestUseCase(&stubRepo{}, &recordingEvents{}, &recordingCache{})

	req := validRequest()
	req.Time = "12:15"

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr bool
	}{
		{name: "valid request", mutate: func(r *Request) {}},
		{name: "valid without email", mutate: func(r *Request) { r.Email = nil }},
		{name: "name too short", mutate: func(r *Request) { r.Name = "J" }, wantErr: true},
		{name: "name with digits", mutate: func(r *Request) { r.Name = "John 2" }, wantErr: true},
		{name: "accented name accepted", mutate: func(r *Request) { r.Name = "José Müller" }},
		{name: "phone without plus", mutate: func(r *Request) { r.Phone = "491701234567" }, wantErr: true},
		{name: "phone too short", mutate: func(r *Request) { r.Phone = "+4912" }, wantErr: true},
		{name: "phone leading zero country code", mutate: func(r *Request) { r.Phone = "+01701234567" }, wantErr: true},
		{name: "bad email", mutate: func(r *Request) { r.Email = ptr.Ptr("not-an-email") }, wantErr: true},
		{name: "unknown service", mutate: func(r *Request) { r.Service = "massage" }, wantErr: true},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }, wantErr: true},
		{name: "malformed time", mutate: func(r *Request) { r.Time = "9 o'clock" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := validateRequest(req)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidInput)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
