package repository

import (
	"errors"
	"testing"

	logbookerrors "aeroclub/internal/logbook/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestOwnedFilter(t *testing.T) {
	oid := primitive.NewObjectID()

	filter, err := ownedFilter("member-1", oid.Hex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter["_id"] != oid || filter["member_id"] != "member-1" {
		t.Errorf("unexpected filter %v", filter)
	}

	if _, err := ownedFilter("member-1", "not-an-id"); !errors.Is(err, logbookerrors.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}

func TestTotalsPipeline(t *testing.T) {
	pipeline := totalsPipeline("member-1")
	if len(pipeline) != 3 {
		t.Fatalf("expected 3 stages, got %d", len(pipeline))
	}

	match, ok := pipeline[0][0].Value.(bson.M)
	if pipeline[0][0].Key != "$match" || !ok || match["member_id"] != "member-1" {
		t.Errorf("unexpected match stage %v", pipeline[0])
	}

	group, ok := pipeline[1][0].Value.(bson.M)
	if pipeline[1][0].Key != "$group" || !ok {
		t.Fatalf("unexpected group stage %v", pipeline[1])
	}
	if group["_id"] != "$aircraft" {
		t.Errorf("expected grouping by aircraft, got %v", group["_id"])
	}
	for _, field := range []string{"flights", "landings", "block_millis"} {
		if _, ok := group[field]; !ok {
			t.Errorf("expected %s accumulator", field)
		}
	}
}
