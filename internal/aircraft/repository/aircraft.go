package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	aircrafterrors "aeroclub/internal/aircraft/errors"
	"aeroclub/pkg/config"
	mongotx "aeroclub/pkg/db/mongo"
	"aeroclub/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Aircraft"
)

type AircraftRepository interface {
	Create(ctx context.Context, aircraft *model.Aircraft) error
	FindByID(ctx context.Context, id string) (*model.Aircraft, error)
	FindByRegistration(ctx context.Context, registration string) (*model.Aircraft, error)
	FindAll(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Aircraft, error)
	Count(ctx context.Context, activeOnly bool) (int64, error)
	Update(ctx context.Context, id string, aircraft *model.Aircraft) error
	Delete(ctx context.Context, id string) error
}

type mongoAircraftRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAircraftRepository(cfg *config.Config) AircraftRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAircraftRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoAircraftRepository) Create(ctx context.Context, aircraft *model.Aircraft) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	aircraft.ID = ""
	aircraft.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, aircraft)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", aircrafterrors.ErrDuplicateRegistration, aircraft.Registration)
		}
		return fmt.Errorf("failed to create aircraft: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		aircraft.ID = oid.Hex()
	}
	return nil
}

func (r *mongoAircraftRepository) FindByID(ctx context.Context, id string) (*model.Aircraft, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", aircrafterrors.ErrInvalidID, id)
	}

	return r.findOne(ctx, bson.M{"_id": objectID}, id)
}

func (r *mongoAircraftRepository) FindByRegistration(ctx context.Context, registration string) (*model.Aircraft, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return r.findOne(ctx, bson.M{"registration": registration}, registration)
}

func (r *mongoAircraftRepository) findOne(ctx context.Context, filter bson.M, key string) (*model.Aircraft, error) {
	var aircraft model.Aircraft
	if err := r.collection.FindOne(ctx, filter).Decode(&aircraft); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", aircrafterrors.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to find aircraft: %w", err)
	}
	return &aircraft, nil
}

func (r *mongoAircraftRepository) FindAll(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Aircraft, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "registration", Value: 1}})

	cursor, err := r.collection.Find(ctx, listFilter(activeOnly), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query aircraft: %w", err)
	}
	defer cursor.Close(ctx)

	aircraft := []*model.Aircraft{}
	if err = cursor.All(ctx, &aircraft); err != nil {
		return nil, fmt.Errorf("failed to decode aircraft: %w", err)
	}
	return aircraft, nil
}

func (r *mongoAircraftRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, listFilter(activeOnly))
	if err != nil {
		return 0, fmt.Errorf("failed to count aircraft: %w", err)
	}
	return count, nil
}

func (r *mongoAircraftRepository) Update(ctx context.Context, id string, aircraft *model.Aircraft) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", aircrafterrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"registration": aircraft.Registration,
			"model":        aircraft.Model,
			"active":       aircraft.Active,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", aircrafterrors.ErrDuplicateRegistration, aircraft.Registration)
		}
		return fmt.Errorf("failed to update aircraft: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", aircrafterrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoAircraftRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", aircrafterrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete aircraft: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", aircrafterrors.ErrNotFound, id)
	}
	return nil
}

func listFilter(activeOnly bool) bson.M {
	if activeOnly {
		return bson.M{"active": true}
	}
	return bson.M{}
}
