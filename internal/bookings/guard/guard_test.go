package guard

import (
	"context"
	"errors"
	"testing"
	"time"

	"aeroclub/pkg/model"
)

type mockStore struct {
	findFunc func(ctx context.Context, f model.BookingFilter, limit int, offset int64) ([]*model.Booking, error)
}

func (m *mockStore) Find(ctx context.Context, f model.BookingFilter, limit int, offset int64) ([]*model.Booking, error) {
	return m.findFunc(ctx, f, limit, offset)
}

func clock(hour, minute, second int) time.Time {
	return time.Date(2025, 6, 1, hour, minute, second, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	existing := Interval{Start: clock(10, 0, 0), End: clock(11, 0, 0)}

	tests := []struct {
		name      string
		candidate Interval
		want      bool
	}{
		{"identical", existing, true},
		{"strictly inside", Interval{clock(10, 30, 0), clock(10, 45, 0)}, true},
		{"covers", Interval{clock(9, 0, 0), clock(12, 0, 0)}, true},
		{"starts at end", Interval{clock(11, 0, 0), clock(12, 0, 0)}, true},
		{"ends at start", Interval{clock(9, 0, 0), clock(10, 0, 0)}, true},
		{"one second after", Interval{clock(11, 0, 1), clock(12, 0, 0)}, false},
		{"one second before", Interval{clock(9, 0, 0), clock(9, 59, 59)}, false},
		{"zero length at end", Interval{clock(11, 0, 0), clock(11, 0, 0)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.candidate, existing); got != tt.want {
				t.Errorf("Overlaps(candidate, existing) = %v, want %v", got, tt.want)
			}
			if got := Overlaps(existing, tt.candidate); got != tt.want {
				t.Errorf("Overlaps(existing, candidate) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCandidate_Normalize(t *testing.T) {
	now := clock(8, 0, 0)
	start := clock(10, 0, 0)

	iv, key := Candidate{}.Normalize(now)
	if !iv.Start.Equal(now) || !iv.End.Equal(now) {
		t.Errorf("expected empty candidate to collapse to now, got %+v", iv)
	}
	if key != DefaultOwnerKey {
		t.Errorf("expected default owner key, got %q", key)
	}

	iv, key = Candidate{Start: &start, OwnerKey: "OH-ABC"}.Normalize(now)
	if !iv.Start.Equal(start) || !iv.End.Equal(now) {
		t.Errorf("unexpected interval %+v", iv)
	}
	if key != "OH-ABC" {
		t.Errorf("expected owner key OH-ABC, got %q", key)
	}
}

func TestGuard_Filter(t *testing.T) {
	g := New(nil)
	b := &model.Booking{StartTime: clock(10, 0, 0), EndTime: clock(11, 0, 0), ResourceID: "OH-ABC"}

	f := g.Filter(ForBooking(b, "self"))
	if !f.EndsAtOrAfter.Equal(b.StartTime) || !f.StartsAtOrBefore.Equal(b.EndTime) {
		t.Errorf("unexpected bounds %v %v", f.EndsAtOrAfter, f.StartsAtOrBefore)
	}
	if f.ResourceID != "OH-ABC" || f.ExcludeID != "self" {
		t.Errorf("unexpected scope %+v", f)
	}

	b.StartTime = clock(12, 0, 0)
	if f.EndsAtOrAfter.Equal(b.StartTime) {
		t.Error("filter must not alias the booking's times")
	}
}

func TestGuard_HasOverlap(t *testing.T) {
	var gotLimit int
	store := &mockStore{findFunc: func(_ context.Context, f model.BookingFilter, limit int, _ int64) ([]*model.Booking, error) {
		gotLimit = limit
		if f.ResourceID == "BUSY" {
			return []*model.Booking{{ID: "b1"}}, nil
		}
		return nil, nil
	}}
	g := New(store)

	overlapping, err := g.HasOverlap(context.Background(), Candidate{OwnerKey: "BUSY"})
	if err != nil || !overlapping {
		t.Fatalf("expected overlap, got %v %v", overlapping, err)
	}
	if gotLimit != 1 {
		t.Errorf("expected HasOverlap to stop at one match, got limit %d", gotLimit)
	}

	overlapping, err = g.HasOverlap(context.Background(), Candidate{OwnerKey: "FREE"})
	if err != nil || overlapping {
		t.Fatalf("expected no overlap, got %v %v", overlapping, err)
	}
}

func TestGuard_Conflicts(t *testing.T) {
	store := &mockStore{findFunc: func(_ context.Context, _ model.BookingFilter, limit int, _ int64) ([]*model.Booking, error) {
		if limit != 0 {
			t.Errorf("expected unlimited query, got limit %d", limit)
		}
		return []*model.Booking{{ID: "a"}, {ID: "b"}}, nil
	}}

	conflicts, err := New(store).Conflicts(context.Background(), Candidate{OwnerKey: "OH-ABC"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conflicts) != 2 {
		t.Errorf("expected 2 conflicts, got %d", len(conflicts))
	}
}

func TestGuard_StoreErrorWrapped(t *testing.T) {
	storeErr := errors.New("server selection error")
	store := &mockStore{findFunc: func(context.Context, model.BookingFilter, int, int64) ([]*model.Booking, error) {
		return nil, storeErr
	}}
	g := New(store)

	if _, err := g.HasOverlap(context.Background(), Candidate{}); !errors.Is(err, storeErr) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
	if _, err := g.Conflicts(context.Background(), Candidate{}); !errors.Is(err, storeErr) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}
