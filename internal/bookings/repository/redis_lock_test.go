package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingserrors "aeroclub/internal/bookings/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockLocker(t *testing.T) (*redisLocker, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	l := &redisLocker{client: db, newToken: func() string { return "token-1" }}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})
	return l, mock
}

func TestRedisLocker_Acquire(t *testing.T) {
	l, mock := newMockLocker(t)
	mock.ExpectSetNX("booking_lock_OH-ABC", "token-1", 10*time.Second).SetVal(true)

	token, err := l.Acquire(context.Background(), "OH-ABC", 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)
}

func TestRedisLocker_AcquireHeld(t *testing.T) {
	l, mock := newMockLocker(t)
	mock.ExpectSetNX("booking_lock_OH-ABC", "token-1", 10*time.Second).SetVal(false)

	_, err := l.Acquire(context.Background(), "OH-ABC", 10*time.Second)
	assert.ErrorIs(t, err, bookingserrors.ErrResourceBusy)
}

func TestRedisLocker_AcquireError(t *testing.T) {
	l, mock := newMockLocker(t)
	mock.ExpectSetNX("booking_lock_OH-ABC", "token-1", 10*time.Second).SetErr(errors.New("connection refused"))

	_, err := l.Acquire(context.Background(), "OH-ABC", 10*time.Second)
	require.Error(t, err)
	assert.NotErrorIs(t, err, bookingserrors.ErrResourceBusy)
}

func TestRedisLocker_Release(t *testing.T) {
	l, mock := newMockLocker(t)
	mock.ExpectEvalSha(releaseScript.Hash(), []string{"booking_lock_OH-ABC"}, "token-1").SetVal(int64(1))

	require.NoError(t, l.Release(context.Background(), "OH-ABC", "token-1"))
}

func TestRedisLocker_ReleaseNotHeld(t *testing.T) {
	l, mock := newMockLocker(t)
	mock.ExpectEvalSha(releaseScript.Hash(), []string{"booking_lock_OH-ABC"}, "stale").SetVal(int64(0))

	err := l.Release(context.Background(), "OH-ABC", "stale")
	assert.ErrorIs(t, err, bookingserrors.ErrLockNotHeld)
}
