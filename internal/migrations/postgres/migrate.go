package postgres

import (
	"context"
	"fmt"

	"aeroclub/pkg/logger"
	"aeroclub/pkg/model"

	"gorm.io/gorm"
)

// ExclusionConstraint rejects two bookings of the same resource whose closed
// intervals share any instant.
const ExclusionConstraint = "bookings_no_overlap"

const (
	createBtreeGist = `CREATE EXTENSION IF NOT EXISTS btree_gist`

	addExclusionConstraint = `
DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '` + ExclusionConstraint + `') THEN
		ALTER TABLE bookings
			ADD CONSTRAINT ` + ExclusionConstraint + `
			EXCLUDE USING gist (
				resource_id WITH =,
				tstzrange(start_time, end_time, '[]') WITH &&
			);
	END IF;
END
$$;`
)

// RunMigration creates the bookings table. On PostgreSQL it also installs the
// exclusion constraint; other dialects get the table only.
func RunMigration(ctx context.Context, db *gorm.DB, log *logger.Logger) error {
	db = db.WithContext(ctx)
	dialect := db.Dialector.Name()
	log.Info("Running SQL migrations", "dialect", dialect)

	if dialect == "postgres" {
		if err := db.Exec(createBtreeGist).Error; err != nil {
			return fmt.Errorf("failed to create btree_gist extension: %w", err)
		}
	}

	if err := db.AutoMigrate(&model.Booking{}); err != nil {
		return fmt.Errorf("failed to migrate bookings table: %w", err)
	}

	if dialect == "postgres" {
		if err := db.Exec(addExclusionConstraint).Error; err != nil {
			return fmt.Errorf("failed to add %s constraint: %w", ExclusionConstraint, err)
		}
		log.Info("Exclusion constraint ensured", "constraint", ExclusionConstraint)
	}

	log.Info("All SQL migrations applied successfully")
	return nil
}
