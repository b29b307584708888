package repository

import (
	"context"
	"testing"
	"time"

	bookingserrors "aeroclub/internal/bookings/errors"
	"aeroclub/pkg/config"
	"aeroclub/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newTestMongoRepository(mt *mtest.T) *mongoBookingRepository {
	return &mongoBookingRepository{
		cfg:        &config.Config{ReadTimeout: 5 * time.Second, WriteTimeout: 5 * time.Second},
		collection: mt.Coll,
	}
}

func bookingDocument(id primitive.ObjectID, title string, start, end time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "start_time", Value: start},
		{Key: "end_time", Value: end},
		{Key: "resource_id", Value: "OH-ABC"},
		{Key: "member_id", Value: "m1"},
		{Key: "created_at", Value: start.Add(-time.Hour)},
	}
}

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func TestMongoRepository_FindByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mt.Run("object id decodes into string id", func(mt *mtest.T) {
		repo := newTestMongoRepository(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bookingDocument(id, "Pattern work", start, end)))

		got, err := repo.FindByID(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), got.ID)
		assert.Equal(mt, "Pattern work", got.Title)
		assert.Equal(mt, "OH-ABC", got.ResourceID)
		assert.True(mt, got.StartTime.Equal(start))
		assert.True(mt, got.EndTime.Equal(end))
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := newTestMongoRepository(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, bookingserrors.ErrNotFound)
	})

	mt.Run("malformed id never reaches the store", func(mt *mtest.T) {
		repo := newTestMongoRepository(mt)

		_, err := repo.FindByID(context.Background(), "not-an-object-id")
		assert.ErrorIs(mt, err, bookingserrors.ErrInvalidID)
		assert.Nil(mt, mt.GetStartedEvent())
	})
}

func TestMongoRepository_Insert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns id and created_at", func(mt *mtest.T) {
		repo := newTestMongoRepository(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		booking := &model.Booking{
			ID:         "client-supplied",
			StartTime:  time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
			EndTime:    time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC),
			ResourceID: "OH-ABC",
		}
		require.NoError(mt, repo.Insert(context.Background(), booking))

		_, err := primitive.ObjectIDFromHex(booking.ID)
		assert.NoError(mt, err, "id should be the generated object id")
		assert.False(mt, booking.CreatedAt.IsZero())
	})
}

func TestMongoRepository_Update(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	mt.Run("returns the updated record", func(mt *mtest.T) {
		repo := newTestMongoRepository(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: bookingDocument(id, "Cross-country", start, end)},
		))

		updated, err := repo.Update(context.Background(), id.Hex(), &model.Booking{
			Title:      "Cross-country",
			StartTime:  start,
			EndTime:    end,
			ResourceID: "OH-ABC",
		})
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), updated.ID)
		assert.Equal(mt, "Cross-country", updated.Title)
		assert.True(mt, updated.EndTime.Equal(end))

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "findAndModify", evt.CommandName)
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := newTestMongoRepository(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.Update(context.Background(), primitive.NewObjectID().Hex(), &model.Booking{})
		assert.ErrorIs(mt, err, bookingserrors.ErrNotFound)
	})
}

func TestMongoRepository_Delete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	start := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mt.Run("returns the deleted record", func(mt *mtest.T) {
		repo := newTestMongoRepository(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: bookingDocument(id, "Night checkout", start, end)},
		))

		deleted, err := repo.Delete(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), deleted.ID)
		assert.Equal(mt, "Night checkout", deleted.Title)
		assert.Equal(mt, "m1", deleted.MemberID)
		assert.True(mt, deleted.StartTime.Equal(start))
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := newTestMongoRepository(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.Delete(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, bookingserrors.ErrNotFound)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := newTestMongoRepository(mt)

		_, err := repo.Delete(context.Background(), "zzz")
		assert.ErrorIs(mt, err, bookingserrors.ErrInvalidID)
	})
}
