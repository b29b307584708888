// Package guard decides whether a proposed booking interval collides with
// bookings already stored for the same resource.
//
// Intervals are closed at both ends: a booking that ends at 11:00 collides
// with one that starts at 11:00.
package guard

import (
	"context"
	"fmt"
	"time"

	"aeroclub/pkg/model"
)

// DefaultOwnerKey scopes candidates that arrive without a resource.
const DefaultOwnerKey = "unassigned"

// Store is the read side of a booking store the guard needs.
type Store interface {
	Find(ctx context.Context, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, error)
}

type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether a and b share at least one instant.
func Overlaps(a, b Interval) bool {
	return !a.End.Before(b.Start) && !a.Start.After(b.End)
}

// Candidate is a proposed booking. Nil times and an empty owner key are
// filled in by Normalize.
type Candidate struct {
	Start     *time.Time
	End       *time.Time
	OwnerKey  string
	ExcludeID string
}

// ForBooking builds the candidate that writing b would create. excludeID is
// set when b replaces an existing record.
func ForBooking(b *model.Booking, excludeID string) Candidate {
	start, end := b.StartTime, b.EndTime
	return Candidate{
		Start:     &start,
		End:       &end,
		OwnerKey:  b.ResourceID,
		ExcludeID: excludeID,
	}
}

// Normalize returns the interval and owner key the candidate resolves to.
func (c Candidate) Normalize(now time.Time) (Interval, string) {
	iv := Interval{Start: now, End: now}
	if c.Start != nil {
		iv.Start = *c.Start
	}
	if c.End != nil {
		iv.End = *c.End
	}
	key := c.OwnerKey
	if key == "" {
		key = DefaultOwnerKey
	}
	return iv, key
}

type Guard struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Guard {
	return &Guard{store: store, now: time.Now}
}

// Filter is the store query selecting every booking that collides with c.
func (g *Guard) Filter(c Candidate) model.BookingFilter {
	iv, key := c.Normalize(g.now().UTC())
	return model.BookingFilter{
		EndsAtOrAfter:    &iv.Start,
		StartsAtOrBefore: &iv.End,
		ResourceID:       key,
		ExcludeID:        c.ExcludeID,
	}
}

// HasOverlap reports whether any stored booking collides with c.
func (g *Guard) HasOverlap(ctx context.Context, c Candidate) (bool, error) {
	matches, err := g.store.Find(ctx, g.Filter(c), 1, 0)
	if err != nil {
		return false, fmt.Errorf("overlap check failed: %w", err)
	}
	return len(matches) > 0, nil
}

// Conflicts returns every stored booking that collides with c, ordered as
// the store returns them.
func (g *Guard) Conflicts(ctx context.Context, c Candidate) ([]*model.Booking, error) {
	matches, err := g.store.Find(ctx, g.Filter(c), 0, 0)
	if err != nil {
		return nil, fmt.Errorf("overlap check failed: %w", err)
	}
	return matches, nil
}
