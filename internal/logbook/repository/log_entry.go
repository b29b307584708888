package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	logbookerrors "aeroclub/internal/logbook/errors"
	"aeroclub/pkg/config"
	mongotx "aeroclub/pkg/db/mongo"
	"aeroclub/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Log_entries"
)

// LogEntryRepository scopes every lookup to the owning member, so one
// member's id never reaches another member's entry.
type LogEntryRepository interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	FindByID(ctx context.Context, memberID, id string) (*model.LogEntry, error)
	FindByMember(ctx context.Context, memberID string, limit int, offset int64) ([]*model.LogEntry, error)
	CountByMember(ctx context.Context, memberID string) (int64, error)
	Update(ctx context.Context, memberID, id string, entry *model.LogEntry) error
	Delete(ctx context.Context, memberID, id string) error
	Totals(ctx context.Context, memberID string) ([]*AircraftTotals, error)
}

// AircraftTotals is the raw per-aircraft aggregate; block time is in
// milliseconds as produced by date subtraction.
type AircraftTotals struct {
	Aircraft    string `bson:"_id"`
	Flights     int    `bson:"flights"`
	Landings    int    `bson:"landings"`
	BlockMillis int64  `bson:"block_millis"`
}

type mongoLogEntryRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoLogEntryRepository(cfg *config.Config) LogEntryRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoLogEntryRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoLogEntryRepository) Create(ctx context.Context, entry *model.LogEntry) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	entry.ID = ""
	entry.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to create log entry: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid.Hex()
	}
	return nil
}

func (r *mongoLogEntryRepository) FindByID(ctx context.Context, memberID, id string) (*model.LogEntry, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter, err := ownedFilter(memberID, id)
	if err != nil {
		return nil, err
	}

	var entry model.LogEntry
	if err := r.collection.FindOne(ctx, filter).Decode(&entry); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", logbookerrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find log entry: %w", err)
	}
	return &entry, nil
}

func (r *mongoLogEntryRepository) FindByMember(ctx context.Context, memberID string, limit int, offset int64) ([]*model.LogEntry, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "off_block", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"member_id": memberID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query log entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []*model.LogEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode log entries: %w", err)
	}
	return entries, nil
}

func (r *mongoLogEntryRepository) CountByMember(ctx context.Context, memberID string) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"member_id": memberID})
	if err != nil {
		return 0, fmt.Errorf("failed to count log entries: %w", err)
	}
	return count, nil
}

func (r *mongoLogEntryRepository) Update(ctx context.Context, memberID, id string, entry *model.LogEntry) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter, err := ownedFilter(memberID, id)
	if err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"aircraft":        entry.Aircraft,
			"date":            entry.Date,
			"pic":             entry.PIC,
			"people_on_board": entry.PeopleOnBoard,
			"departure":       entry.Departure,
			"arrival":         entry.Arrival,
			"off_block":       entry.OffBlock,
			"takeoff":         entry.Takeoff,
			"landing":         entry.Landing,
			"on_block":        entry.OnBlock,
			"landings":        entry.Landings,
			"flight_rules":    entry.FlightRules,
			"night_minutes":   entry.NightMinutes,
			"ifr_minutes":     entry.IFRMinutes,
			"fuel_litres":     entry.FuelLitres,
			"flight_type":     entry.FlightType,
			"details":         entry.Details,
			"billing_details": entry.BillingDetails,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update log entry: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", logbookerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoLogEntryRepository) Delete(ctx context.Context, memberID, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter, err := ownedFilter(memberID, id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete log entry: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", logbookerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoLogEntryRepository) Totals(ctx context.Context, memberID string) ([]*AircraftTotals, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Aggregate(ctx, totalsPipeline(memberID))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate log entries: %w", err)
	}
	defer cursor.Close(ctx)

	totals := []*AircraftTotals{}
	if err := cursor.All(ctx, &totals); err != nil {
		return nil, fmt.Errorf("failed to decode log totals: %w", err)
	}
	return totals, nil
}

func totalsPipeline(memberID string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"member_id": memberID}}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$aircraft",
			"flights":      bson.M{"$sum": 1},
			"landings":     bson.M{"$sum": "$landings"},
			"block_millis": bson.M{"$sum": bson.M{"$subtract": bson.A{"$on_block", "$off_block"}}},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
}

func ownedFilter(memberID, id string) (bson.M, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", logbookerrors.ErrInvalidID, id)
	}
	return bson.M{"_id": objectID, "member_id": memberID}, nil
}
