package verification

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/barberbook/booking-service/internal/infra/cache"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type recordingSender struct {
	to   string
	body string
	err  error
}

func (s *recordingSender) Send(_ context.Context, to string, body string) error {
	if s.err != nil {
		return s.err
	}
	s.to = to
	s.body = body
	return nil
}

func newTestService(t *testing.T, sender *recordingSender) (*Service, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	return NewService(client, sender, 5*time.Minute, 3, nopLogger{}), mr
}

func sessionCode(t *testing.T, mr *miniredis.Miniredis, token string) string {
	t.Helper()

	raw, err := mr.Get(fmt.Sprintf(cache.KeyVerification, token))
	require.NoError(t, err)

	var sess session
	require.NoError(t, json.Unmarshal([]byte(raw), &sess))
	return sess.Code
}

func TestStartSendsCode(t *testing.T) {
	sender := &recordingSender{}
	svc, mr := newTestService(t, sender)

	token, err := svc.Start(context.Background(), "+4915123456789")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	code := sessionCode(t, mr, token)
	require.Len(t, code, 6)

	require.Equal(t, "+4915123456789", sender.to)
	require.Contains(t, sender.body, code)
}

func TestStartInvalidPhone(t *testing.T) {
	sender := &recordingSender{}
	svc, _ := newTestService(t, sender)

	for _, phone := range []string{"", "015123456789", "+0123456789", "not a phone"} {
		_, err := svc.Start(context.Background(), phone)
		require.ErrorIs(t, err, ErrInvalidPhone, "phone %q", phone)
	}
	require.Empty(t, sender.to)
}

func TestStartSMSFailureCleansSession(t *testing.T) {
	sender := &recordingSender{err: fmt.Errorf("provider down")}
	svc, mr := newTestService(t, sender)

	_, err := svc.Start(context.Background(), "+4915123456789")
	require.ErrorIs(t, err, ErrInternal)
	require.Empty(t, mr.Keys())
}

func TestCompleteSuccess(t *testing.T) {
	sender := &recordingSender{}
	svc, mr := newTestService(t, sender)

	token, err := svc.Start(context.Background(), "+4915123456789")
	require.NoError(t, err)
	code := sessionCode(t, mr, token)

	identity, err := svc.Complete(context.Background(), token, code)
	require.NoError(t, err)
	require.Equal(t, "+4915123456789", identity.Phone)
	require.NotEmpty(t, identity.CustomerID)

	// Сессия одноразовая
	_, err = svc.Complete(context.Background(), token, code)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCompleteStableCustomerID(t *testing.T) {
	sender := &recordingSender{}
	svc, mr := newTestService(t, sender)

	verify := func() string {
		token, err := svc.Start(context.Background(), "+4915123456789")
		require.NoError(t, err)

		identity, err := svc.Complete(context.Background(), token, sessionCode(t, mr, token))
		require.NoError(t, err)
		return identity.CustomerID
	}

	first := verify()
	second := verify()
	require.Equal(t, first, second)
}

func TestCompleteWrongCode(t *testing.T) {
	sender := &recordingSender{}
	svc, mr := newTestService(t, sender)

	token, err := svc.Start(context.Background(), "+4915123456789")
	require.NoError(t, err)
	code := sessionCode(t, mr, token)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	_, err = svc.Complete(context.Background(), token, wrong)
	require.ErrorIs(t, err, ErrInvalidCode)

	_, err = svc.Complete(context.Background(), token, wrong)
	require.ErrorIs(t, err, ErrInvalidCode)

	// Третий промах исчерпывает попытки и убивает сессию
	_, err = svc.Complete(context.Background(), token, wrong)
	require.ErrorIs(t, err, ErrTooManyAttempts)

	_, err = svc.Complete(context.Background(), token, code)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

// Параллельные промахи должны списывать ровно по одной попытке каждый,
// а не затирать счетчик друг друга
func TestCompleteConcurrentWrongCodesBurnDistinctAttempts(t *testing.T) {
	sender := &recordingSender{}
	svc, mr := newTestService(t, sender)

	token, err := svc.Start(context.Background(), "+4915123456789")
	require.NoError(t, err)
	code := sessionCode(t, mr, token)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Complete(context.Background(), token, wrong)
		}(i)
	}
	wg.Wait()

	for _, e := range errs {
		require.ErrorIs(t, e, ErrInvalidCode)
	}

	// Из трех попыток сожжены ровно две
	left, err := mr.Get(fmt.Sprintf(cache.KeyVerificationAttempts, token))
	require.NoError(t, err)
	require.Equal(t, "1", left)
}

func TestCompleteUnknownToken(t *testing.T) {
	sender := &recordingSender{}
	svc, _ := newTestService(t, sender)

	_, err := svc.Complete(context.Background(), "no-such-token", "123456")
	require.ErrorIs(t, err, ErrSessionNotFound)
}
