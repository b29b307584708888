package repository

import (
	"context"
	"fmt"
	"time"

	bookingserrors "aeroclub/internal/bookings/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only if the caller still holds it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLocker struct {
	client   *redis.Client
	newToken func() string
}

// NewRedisLocker takes locks with SET NX PX, so expiry is handled by Redis.
func NewRedisLocker(client *redis.Client) Locker {
	return &redisLocker{client: client, newToken: uuid.NewString}
}

func (l *redisLocker) Acquire(ctx context.Context, resourceID string, ttl time.Duration) (string, error) {
	token := l.newToken()
	ok, err := l.client.SetNX(ctx, LockKey(resourceID), token, ttl).Result()
	if err != nil {
		return "", fmt.Errorf("failed to acquire booking lock: %w", err)
	}
	if !ok {
		return "", bookingserrors.ErrResourceBusy
	}
	return token, nil
}

func (l *redisLocker) Release(ctx context.Context, resourceID string, token string) error {
	n, err := releaseScript.Run(ctx, l.client, []string{LockKey(resourceID)}, token).Int64()
	if err != nil {
		return fmt.Errorf("failed to release booking lock: %w", err)
	}
	if n == 0 {
		return bookingserrors.ErrLockNotHeld
	}
	return nil
}
