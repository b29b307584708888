package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aeroclub/pkg/kafka"
	"aeroclub/pkg/logger"
	"aeroclub/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryEventRepository struct {
	events   map[string]*model.StoredBookingEvent
	storeErr error
	findErr  error
}

func newMemoryRepository() *memoryEventRepository {
	return &memoryEventRepository{events: make(map[string]*model.StoredBookingEvent)}
}

func (m *memoryEventRepository) Store(_ context.Context, event *model.StoredBookingEvent) (bool, error) {
	if m.storeErr != nil {
		return false, m.storeErr
	}
	if _, ok := m.events[event.ID]; ok {
		return false, nil
	}
	m.events[event.ID] = event
	return true, nil
}

func (m *memoryEventRepository) FindByBookingID(_ context.Context, bookingID string, _ int) ([]*model.StoredBookingEvent, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []*model.StoredBookingEvent
	for _, e := range m.events {
		if e.Event.Booking.ID == bookingID {
			out = append(out, e)
		}
	}
	return out, nil
}

func bookingMessage(t *testing.T, eventID, eventType string) kafka.Message {
	t.Helper()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	msg, err := kafka.NewMessage().
		WithKey("OH-ABC").
		WithValue(model.BookingEvent{
			Type: eventType,
			Booking: model.Booking{
				ID:         "b-1",
				ResourceID: "OH-ABC",
				StartTime:  start,
				EndTime:    start.Add(time.Hour),
			},
			OccurredAt: start,
		}).
		WithEventID(eventID).
		WithEventType(eventType).
		WithCorrelationID("req-1").
		Build()
	require.NoError(t, err)
	msg.Partition = 2
	msg.Offset = 41
	return msg
}

func TestHandle_StoresEventOnce(t *testing.T) {
	repo := newMemoryRepository()
	consumer := NewEventConsumer(repo, logger.Discard())
	msg := bookingMessage(t, "evt-1", model.BookingCreated)

	require.NoError(t, consumer.Handle(context.Background(), msg))
	require.NoError(t, consumer.Handle(context.Background(), msg))

	require.Len(t, repo.events, 1)
	stored := repo.events["evt-1"]
	assert.Equal(t, model.BookingCreated, stored.Event.Type)
	assert.Equal(t, "OH-ABC", stored.Event.Booking.ResourceID)
	assert.Equal(t, "req-1", stored.CorrelationID)
	assert.Equal(t, 2, stored.Partition)
	assert.Equal(t, int64(41), stored.Offset)
	assert.False(t, stored.ReceivedAt.IsZero())
}

func TestHandle_PermanentFailures(t *testing.T) {
	tests := []struct {
		name string
		msg  func(t *testing.T) kafka.Message
	}{
		{
			name: "missing event id",
			msg: func(t *testing.T) kafka.Message {
				msg := bookingMessage(t, "evt-1", model.BookingCreated)
				delete(msg.Headers, kafka.HeaderEventID)
				return msg
			},
		},
		{
			name: "invalid payload",
			msg: func(t *testing.T) kafka.Message {
				msg := bookingMessage(t, "evt-1", model.BookingCreated)
				msg.Value = []byte(`{"type":`)
				return msg
			},
		},
		{
			name: "unknown type",
			msg: func(t *testing.T) kafka.Message {
				return bookingMessage(t, "evt-1", "booking.archived")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryRepository()
			err := NewEventConsumer(repo, logger.Discard()).Handle(context.Background(), tt.msg(t))

			require.Error(t, err)
			assert.Equal(t, kafka.ErrorTypePermanent, kafka.ClassifyError(err))
			assert.Empty(t, repo.events)
		})
	}
}

func TestHandle_StoreFailureIsRetried(t *testing.T) {
	repo := newMemoryRepository()
	repo.storeErr = errors.New("write failed")

	err := NewEventConsumer(repo, logger.Discard()).Handle(context.Background(), bookingMessage(t, "evt-1", model.BookingDeleted))

	require.Error(t, err)
	assert.Equal(t, kafka.ErrorTypeTransient, kafka.ClassifyError(err))
	assert.True(t, kafka.ShouldRetry(err, 0, 3))
}

func TestHistory(t *testing.T) {
	repo := newMemoryRepository()
	consumer := NewEventConsumer(repo, logger.Discard())
	require.NoError(t, consumer.Handle(context.Background(), bookingMessage(t, "evt-1", model.BookingCreated)))
	require.NoError(t, consumer.Handle(context.Background(), bookingMessage(t, "evt-2", model.BookingUpdated)))

	router := httprouter.New()
	NewHistoryHandler(repo, logger.Discard()).RegisterRoutes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/audit/bookings/b-1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []model.StoredBookingEvent `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp.Data, 2)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/audit/bookings/b-1?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	repo.findErr = errors.New("boom")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/audit/bookings/b-1", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
