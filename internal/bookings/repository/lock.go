package repository

import (
	"context"
	"fmt"
	"time"

	bookingserrors "aeroclub/internal/bookings/errors"
	"aeroclub/pkg/config"
	"aeroclub/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	LockCollectionName = "Booking_locks"
	lockKeyPrefix      = "booking_lock_"
)

// Locker serializes guarded writes per resource. Acquire fails with
// ErrResourceBusy while another holder owns the key. The returned token
// must be passed to Release.
type Locker interface {
	Acquire(ctx context.Context, resourceID string, ttl time.Duration) (token string, err error)
	Release(ctx context.Context, resourceID string, token string) error
}

func LockKey(resourceID string) string {
	return lockKeyPrefix + resourceID
}

type mongoLocker struct {
	collection *mongo.Collection
	newToken   func() string
	now        func() time.Time
}

// NewMongoLocker keeps one document per locked resource in Booking_locks.
// The unique _id makes the insert the lock; a TTL index on expires_at
// eventually removes locks whose holder died.
func NewMongoLocker(cfg *config.Config) Locker {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoLocker{
		collection: db.Collection(LockCollectionName),
		newToken:   uuid.NewString,
		now:        time.Now,
	}
}

func (l *mongoLocker) Acquire(ctx context.Context, resourceID string, ttl time.Duration) (string, error) {
	now := l.now().UTC()
	lock := &model.BookingLock{
		ID:        LockKey(resourceID),
		Token:     l.newToken(),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	_, err := l.collection.InsertOne(ctx, lock)
	if err == nil {
		return lock.Token, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return "", fmt.Errorf("failed to acquire booking lock: %w", err)
	}

	// The TTL monitor runs about once a minute, so an expired lock can still
	// be present. Take it over only if it has expired.
	res, err := l.collection.DeleteOne(ctx, bson.M{"_id": lock.ID, "expires_at": bson.M{"$lt": now}})
	if err != nil {
		return "", fmt.Errorf("failed to clear expired booking lock: %w", err)
	}
	if res.DeletedCount == 0 {
		return "", bookingserrors.ErrResourceBusy
	}

	if _, err := l.collection.InsertOne(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", bookingserrors.ErrResourceBusy
		}
		return "", fmt.Errorf("failed to acquire booking lock: %w", err)
	}
	return lock.Token, nil
}

func (l *mongoLocker) Release(ctx context.Context, resourceID string, token string) error {
	res, err := l.collection.DeleteOne(ctx, bson.M{"_id": LockKey(resourceID), "token": token})
	if err != nil {
		return fmt.Errorf("failed to release booking lock: %w", err)
	}
	if res.DeletedCount == 0 {
		return bookingserrors.ErrLockNotHeld
	}
	return nil
}
