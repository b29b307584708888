package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bookingserrors "aeroclub/internal/bookings/errors"
	mongotx "aeroclub/pkg/db/mongo"
	"aeroclub/pkg/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	// pgExclusionViolation is raised by the bookings_no_overlap constraint.
	pgExclusionViolation = "23P01"
)

type txKey struct{}

type sqlBookingRepository struct {
	db           *gorm.DB
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewSQLBookingRepository stores bookings through GORM. It is used with
// PostgreSQL in production and SQLite in tests.
func NewSQLBookingRepository(db *gorm.DB, readTimeout, writeTimeout time.Duration) BookingRepository {
	return &sqlBookingRepository{
		db:           db,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// conn returns the transaction bound to ctx, or the pool.
func (r *sqlBookingRepository) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

func (r *sqlBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *sqlBookingRepository) Find(ctx context.Context, f model.BookingFilter, limit int, offset int64) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.readTimeout)
	defer cancel()

	query := applySQLFilter(r.conn(ctx).Model(&model.Booking{}), f).
		Order("start_time ASC").
		Order("id ASC").
		Offset(int(offset))
	if limit > 0 {
		query = query.Limit(limit)
	}

	bookings := []*model.Booking{}
	if err := query.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	return bookings, nil
}

func (r *sqlBookingRepository) Count(ctx context.Context, f model.BookingFilter) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.readTimeout)
	defer cancel()

	var count int64
	if err := applySQLFilter(r.conn(ctx).Model(&model.Booking{}), f).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

func (r *sqlBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.readTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var booking model.Booking
	if err := r.conn(ctx).Where("id = ?", id).Take(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

func (r *sqlBookingRepository) Insert(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.writeTimeout)
	defer cancel()

	booking.ID = uuid.NewString()
	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if err := r.conn(ctx).Create(booking).Error; err != nil {
		booking.ID = ""
		return translateSQLError("failed to insert booking", err)
	}
	return nil
}

func (r *sqlBookingRepository) Update(ctx context.Context, id string, booking *model.Booking) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.writeTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	result := r.conn(ctx).Model(&model.Booking{}).Where("id = ?", id).Updates(map[string]any{
		"title":       booking.Title,
		"details":     booking.Details,
		"start_time":  booking.StartTime,
		"end_time":    booking.EndTime,
		"resource_id": booking.ResourceID,
	})
	if result.Error != nil {
		return nil, translateSQLError("failed to update booking", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, bookingserrors.ErrNotFound
	}

	var updated model.Booking
	if err := r.conn(ctx).Where("id = ?", id).Take(&updated).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}
	return &updated, nil
}

func (r *sqlBookingRepository) Delete(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.writeTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var deleted model.Booking
	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Take(&deleted).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return bookingserrors.ErrNotFound
			}
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Booking{}).Error
	})
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to delete booking: %w", err)
	}
	return &deleted, nil
}

func (r *sqlBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func applySQLFilter(q *gorm.DB, f model.BookingFilter) *gorm.DB {
	if f.ID != "" {
		q = q.Where("id = ?", f.ID)
	}
	if f.ExcludeID != "" {
		q = q.Where("id <> ?", f.ExcludeID)
	}
	if f.TitleContains != "" {
		q = q.Where(`LOWER(title) LIKE ? ESCAPE '\'`, likePattern(f.TitleContains))
	}
	if f.DetailsContains != "" {
		q = q.Where(`LOWER(details) LIKE ? ESCAPE '\'`, likePattern(f.DetailsContains))
	}
	if f.StartAfter != nil {
		q = q.Where("start_time >= ?", f.StartAfter.UTC())
	}
	if f.EndBefore != nil {
		q = q.Where("end_time <= ?", f.EndBefore.UTC())
	}
	if f.EndsAtOrAfter != nil {
		q = q.Where("end_time >= ?", f.EndsAtOrAfter.UTC())
	}
	if f.StartsAtOrBefore != nil {
		q = q.Where("start_time <= ?", f.StartsAtOrBefore.UTC())
	}
	if f.CreatedAt != nil {
		q = q.Where("created_at = ?", f.CreatedAt.UTC())
	}
	if f.ResourceID != "" {
		q = q.Where("resource_id = ?", f.ResourceID)
	}
	if f.MemberID != "" {
		q = q.Where("member_id = ?", f.MemberID)
	}
	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

func translateSQLError(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
		return fmt.Errorf("%w: %s", bookingserrors.ErrOverlap, pgErr.ConstraintName)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
