package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/barberbook/booking-service/internal/domain"
	apptRepo "github.com/barberbook/booking-service/internal/infra/storage/appointment"
	"github.com/barberbook/booking-service/internal/service/appointments/models"
	"github.com/barberbook/booking-service/pkg/ptr"
)

type mockRepo struct {
	appt *domain.Appointment

	updateStatusCalls int
	updateCalls       int
	deleteCalls       int

	deleteErr error
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if m.appt == nil || m.appt.ID != id {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	return m.appt, nil
}

func (m *mockRepo) List(_ context.Context) ([]*domain.Appointment, error) {
	if m.appt == nil {
		return []*domain.Appointment{}, nil
	}
	return []*domain.Appointment{m.appt}, nil
}

func (m *mockRepo) UpdateStatus(_ context.Context, _ int64, _ domain.AppointmentStatus) error {
	m.updateStatusCalls++
	return nil
}

func (m *mockRepo) Update(_ context.Context, _ int64, _ domain.AppointmentUpdate) error {
	m.updateCalls++
	return nil
}

func (m *mockRepo) Delete(_ context.Context, _ int64) error {
	m.deleteCalls++
	return m.deleteErr
}

type nopEvents struct{}

func (nopEvents) AppointmentStatusChanged(context.Context, int64, domain.AppointmentStatus) {}
func (nopEvents) AppointmentDeleted(context.Context, int64)                                 {}

type nopCache struct{}

func (nopCache) Invalidate(context.Context, string) error { return nil }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func pendingAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:      7,
		Name:    "Jane Doe",
		Phone:   "+491701234567",
		Service: domain.ServiceBoth,
		Date:    time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Time:    "09:30",
		Status:  domain.StatusPending,
	}
}

func newTestService(repo *mockRepo) *Service {
	return NewService(repo, nopEvents{}, nopCache{}, nopLogger{})
}

func TestUpdateStatus_InvalidValueRejectedWithoutStoreMutation(t *testing.T) {
	repo := &mockRepo{appt: pendingAppointment()}
	svc := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), 7, "archived")
	require.ErrorIs(t, err, ErrInvalidStatus)
	require.Zero(t, repo.updateStatusCalls, "store must not be mutated")
}

func TestUpdateStatus_AllowedTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.AppointmentStatus
		to      string
		wantErr error
	}{
		{name: "pending to confirmed", from: domain.StatusPending, to: "confirmed"},
		{name: "pending to cancelled", from: domain.StatusPending, to: "cancelled"},
		{name: "confirmed to cancelled", from: domain.StatusConfirmed, to: "cancelled"},
		{name: "same status is a no-op transition", from: domain.StatusConfirmed, to: "confirmed"},
		{name: "confirmed back to pending rejected", from: domain.StatusConfirmed, to: "pending", wantErr: ErrInvalidTransition},
		{name: "cancelled to confirmed rejected", from: domain.StatusCancelled, to: "confirmed", wantErr: ErrInvalidTransition},
		{name: "cancelled to pending rejected", from: domain.StatusCancelled, to: "pending", wantErr: ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appt := pendingAppointment()
			appt.Status = tt.from
			repo := &mockRepo{appt: appt}
			svc := newTestService(repo)

			err := svc.UpdateStatus(context.Background(), 7, tt.to)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Zero(t, repo.updateStatusCalls)
			} else {
				require.NoError(t, err)
				require.Equal(t, 1, repo.updateStatusCalls)
			}
		})
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc := newTestService(&mockRepo{})

	err := svc.UpdateStatus(context.Background(), 99, "confirmed")
	require.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestUpdate_EmptyRequestRejected(t *testing.T) {
	repo := &mockRepo{appt: pendingAppointment()}
	svc := newTestService(repo)

	err := svc.Update(context.Background(), 7, &models.UpdateAppointmentRequest{})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Zero(t, repo.updateCalls)
}

func TestUpdate_PartialFields(t *testing.T) {
	repo := &mockRepo{appt: pendingAppointment()}
	svc := newTestService(repo)

	err := svc.Update(context.Background(), 7, &models.UpdateAppointmentRequest{
		Name:   ptr.Ptr("Janet Doe"),
		Status: ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	require.Equal(t, 1, repo.updateCalls)
}

func TestDelete_MissingAppointmentIsDistinctOutcome(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	err := svc.Delete(context.Background(), 123)
	require.ErrorIs(t, err, ErrAppointmentNotFound)
	require.Zero(t, repo.deleteCalls)
}

func TestDelete_Success(t *testing.T) {
	repo := &mockRepo{appt: pendingAppointment()}
	svc := newTestService(repo)

	require.NoError(t, svc.Delete(context.Background(), 7))
	require.Equal(t, 1, repo.deleteCalls)
}

func TestList_ReturnsAppointments(t *testing.T) {
	repo := &mockRepo{appt: pendingAppointment()}
	svc := newTestService(repo)

	resp, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	require.Equal(t, "2025-06-10", resp.Appointments[0].Date)
	require.Equal(t, "09:30", resp.Appointments[0].Time)
}
