package repository

import (
	"context"
	"fmt"

	"aeroclub/pkg/config"
	mongotx "aeroclub/pkg/db/mongo"
	"aeroclub/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Booking_events"
)

type EventRepository interface {
	// Store inserts the event once. It reports false when an event with the
	// same id was already stored.
	Store(ctx context.Context, event *model.StoredBookingEvent) (bool, error)
	FindByBookingID(ctx context.Context, bookingID string, limit int) ([]*model.StoredBookingEvent, error)
}

type mongoEventRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoEventRepository(cfg *config.Config) EventRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoEventRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoEventRepository) Store(ctx context.Context, event *model.StoredBookingEvent) (bool, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, event); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to store booking event: %w", err)
	}
	return true, nil
}

func (r *mongoEventRepository) FindByBookingID(ctx context.Context, bookingID string, limit int) ([]*model.StoredBookingEvent, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "event.occurred_at", Value: 1}}).
		SetLimit(int64(config.NormalizePaginationLimit(limit)))

	cursor, err := r.collection.Find(ctx, bson.M{"event.booking._id": bookingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find booking events: %w", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var events []*model.StoredBookingEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode booking events: %w", err)
	}
	return events, nil
}
