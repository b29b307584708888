package repository

import (
	"fmt"
	"regexp"

	bookingserrors "aeroclub/internal/bookings/errors"
	"aeroclub/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// buildMongoFilter translates f into a Mongo query. Ids that are not valid
// ObjectIDs fail with ErrInvalidID, except ExcludeID, which cannot match any
// stored booking and is dropped.
func buildMongoFilter(f model.BookingFilter) (bson.M, error) {
	filter := bson.M{}

	idClause := bson.M{}
	if f.ID != "" {
		oid, err := primitive.ObjectIDFromHex(f.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, f.ID)
		}
		idClause["$eq"] = oid
	}
	if f.ExcludeID != "" {
		if oid, err := primitive.ObjectIDFromHex(f.ExcludeID); err == nil {
			idClause["$ne"] = oid
		}
	}
	if len(idClause) > 0 {
		filter["_id"] = idClause
	}

	if f.TitleContains != "" {
		filter["title"] = containsPattern(f.TitleContains)
	}
	if f.DetailsContains != "" {
		filter["details"] = containsPattern(f.DetailsContains)
	}

	startClause := bson.M{}
	if f.StartAfter != nil {
		startClause["$gte"] = f.StartAfter.UTC()
	}
	if f.StartsAtOrBefore != nil {
		startClause["$lte"] = f.StartsAtOrBefore.UTC()
	}
	if len(startClause) > 0 {
		filter["start_time"] = startClause
	}

	endClause := bson.M{}
	if f.EndBefore != nil {
		endClause["$lte"] = f.EndBefore.UTC()
	}
	if f.EndsAtOrAfter != nil {
		endClause["$gte"] = f.EndsAtOrAfter.UTC()
	}
	if len(endClause) > 0 {
		filter["end_time"] = endClause
	}

	if f.CreatedAt != nil {
		filter["created_at"] = f.CreatedAt.UTC()
	}
	if f.ResourceID != "" {
		filter["resource_id"] = f.ResourceID
	}
	if f.MemberID != "" {
		filter["member_id"] = f.MemberID
	}

	return filter, nil
}

func containsPattern(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}
