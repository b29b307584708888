package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	profileserrors "aeroclub/internal/profiles/errors"
	"aeroclub/pkg/config"
	mongotx "aeroclub/pkg/db/mongo"
	"aeroclub/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Profiles"
)

type ProfileRepository interface {
	FindByMemberID(ctx context.Context, memberID string) (*model.Profile, error)
	Upsert(ctx context.Context, profile *model.Profile) error
}

type mongoProfileRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoProfileRepository(cfg *config.Config) ProfileRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoProfileRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoProfileRepository) FindByMemberID(ctx context.Context, memberID string) (*model.Profile, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var profile model.Profile
	if err := r.collection.FindOne(ctx, bson.M{"_id": memberID}).Decode(&profile); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", profileserrors.ErrNotFound, memberID)
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return &profile, nil
}

// Upsert replaces the whole profile document, creating it on first save.
func (r *mongoProfileRepository) Upsert(ctx context.Context, profile *model.Profile) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	profile.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": profile.MemberID}, profile, opts); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
