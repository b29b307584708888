package service

import (
	"context"
	"errors"
	"sync"
	"time"

	bookingserrors "aeroclub/internal/bookings/errors"
	"aeroclub/internal/bookings/events"
	"aeroclub/internal/bookings/guard"
	"aeroclub/internal/bookings/repository"
	"aeroclub/internal/bookings/validator"
	"aeroclub/pkg/config"
	apperrors "aeroclub/pkg/errors"
	"aeroclub/pkg/identity"
	"aeroclub/pkg/model"
	"aeroclub/pkg/sanitizer"
)

const lockReleaseTimeout = 5 * time.Second

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	List(ctx context.Context, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error)
	Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error)
	Delete(ctx context.Context, id string) (*model.Booking, error)
	CheckOverlap(ctx context.Context, candidate guard.Candidate) (bool, error)
}

// ResourceChecker confirms a resource can be booked. It returns
// ErrUnknownResource or ErrInactiveResource when it cannot.
type ResourceChecker interface {
	CheckBookable(ctx context.Context, resourceID string) error
}

type bookingService struct {
	repo      repository.BookingRepository
	locker    repository.Locker
	guard     *guard.Guard
	validator *validator.BookingValidator
	events    events.Publisher
	resources ResourceChecker
	cfg       *config.Config
}

// NewBookingService wires the booking mutations. locker, publisher and
// resources are optional.
func NewBookingService(
	repo repository.BookingRepository,
	locker repository.Locker,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	resources ResourceChecker,
	cfg *config.Config,
) BookingService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &bookingService{
		repo:      repo,
		locker:    locker,
		guard:     guard.New(repo),
		validator: validator,
		events:    publisher,
		resources: resources,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.sanitize(booking)
	if booking.MemberID == "" {
		booking.MemberID = identity.MemberID(ctx)
	}
	if err := s.validate(booking); err != nil {
		return err
	}
	if err := s.checkResource(ctx, booking.ResourceID); err != nil {
		return err
	}

	err := s.guardedWrite(ctx, booking, "", func(ctx context.Context) error {
		if err := s.repo.Insert(ctx, booking); err != nil {
			return s.storeError("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to create booking", "resource_id", booking.ResourceID, "error", err)
		return err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"resource_id", booking.ResourceID,
		"start_time", booking.StartTime,
		"end_time", booking.EndTime,
	)
	s.publish(ctx, model.BookingCreated, booking)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(id, "Failed to retrieve booking", err)
	}
	return booking, nil
}

func (s *bookingService) List(ctx context.Context, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)
	filter.ResourceID = sanitizer.NormalizeRegistration(filter.ResourceID)

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, filter)
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.Find(ctx, filter, limit, offset)
	}()

	wg.Wait()

	for _, err := range []error{errCount, errFind} {
		if err == nil {
			continue
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, 0, apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to list bookings", "limit", limit, "offset", offset, "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve bookings", err)
	}

	return bookings, count, nil
}

func (s *bookingService) Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return nil, validationError("Invalid update input", err)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(id, "Failed to check booking existence", err)
	}

	merged := updates.Merge(existing)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return nil, err
	}
	if merged.ResourceID != existing.ResourceID {
		if err := s.checkResource(ctx, merged.ResourceID); err != nil {
			return nil, err
		}
	}

	var updated *model.Booking
	err = s.guardedWrite(ctx, merged, id, func(ctx context.Context) error {
		var err error
		updated, err = s.repo.Update(ctx, id, merged)
		if err != nil {
			return s.lookupError(id, "Failed to update booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to update booking", "id", id, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Booking updated successfully", "id", id)
	s.publish(ctx, model.BookingUpdated, updated)
	return updated, nil
}

// Delete removes the booking unconditionally. Deleting never creates an
// overlap, so neither the guard nor the lock is involved.
func (s *bookingService) Delete(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, s.lookupError(id, "Failed to delete booking", err)
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	s.publish(ctx, model.BookingDeleted, deleted)
	return deleted, nil
}

func (s *bookingService) CheckOverlap(ctx context.Context, candidate guard.Candidate) (bool, error) {
	candidate.OwnerKey = sanitizer.NormalizeRegistration(candidate.OwnerKey)
	overlapping, err := s.guard.HasOverlap(ctx, candidate)
	if err != nil {
		s.cfg.Log.Error("Overlap check failed", "resource_id", candidate.OwnerKey, "error", err)
		return false, apperrors.Internal("Failed to check booking overlap", err)
	}
	return overlapping, nil
}

// guardedWrite runs the overlap check followed by write. In locked mode both
// happen inside a store transaction while the resource lock is held; in
// check-then-write mode they run back to back and concurrent writers can
// both pass the check.
func (s *bookingService) guardedWrite(ctx context.Context, b *model.Booking, excludeID string, write func(ctx context.Context) error) error {
	if s.cfg.BookingWriteMode == config.WriteModeCheckThenWrite {
		if err := s.ensureNoOverlap(ctx, b, excludeID); err != nil {
			return err
		}
		return write(ctx)
	}

	release, err := s.acquireLock(ctx, b.ResourceID)
	if err != nil {
		return err
	}
	defer release()

	return s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if err := s.ensureNoOverlap(txCtx, b, excludeID); err != nil {
			return err
		}
		return write(txCtx)
	})
}

func (s *bookingService) ensureNoOverlap(ctx context.Context, b *model.Booking, excludeID string) error {
	conflicts, err := s.guard.Conflicts(ctx, guard.ForBooking(b, excludeID))
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}
	if len(conflicts) == 0 {
		return nil
	}

	ids := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		ids = append(ids, c.ID)
	}
	return apperrors.Conflict(bookingserrors.ErrOverlap.Error()).
		WithDetails(map[string]any{"resource_id": b.ResourceID, "conflicting_ids": ids}).
		WithCause(bookingserrors.ErrOverlap)
}

func (s *bookingService) acquireLock(ctx context.Context, resourceID string) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}

	token, err := s.locker.Acquire(ctx, resourceID, s.cfg.BookingLockTTL)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrResourceBusy) {
			return nil, apperrors.Conflict("This aircraft is currently being booked by another request. Please try again.").
				WithCause(bookingserrors.ErrResourceBusy)
		}
		s.cfg.Log.Error("Failed to acquire booking lock", "resource_id", resourceID, "error", err)
		return nil, apperrors.Internal("Failed to acquire booking lock", err)
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lockReleaseTimeout)
		defer cancel()
		if err := s.locker.Release(releaseCtx, resourceID, token); err != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "resource_id", resourceID, "error", err)
		}
	}, nil
}

func (s *bookingService) checkResource(ctx context.Context, resourceID string) error {
	if s.resources == nil {
		return nil
	}
	err := s.resources.CheckBookable(ctx, resourceID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bookingserrors.ErrUnknownResource):
		return apperrors.Validation("Booking validation failed", map[string]any{"resource_id": err.Error()})
	case errors.Is(err, bookingserrors.ErrInactiveResource):
		return apperrors.Conflict(err.Error()).WithCause(err)
	default:
		return apperrors.Internal("Failed to check resource", err)
	}
}

func (s *bookingService) publish(ctx context.Context, eventType string, booking *model.Booking) {
	if err := s.events.Publish(ctx, eventType, booking); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"event_type", eventType,
			"id", booking.ID,
			"error", err,
		)
	}
}

// --- Helpers ---

func (s *bookingService) sanitize(b *model.Booking) {
	b.Title = sanitizer.NormalizeTitle(b.Title)
	b.Details = sanitizer.NormalizeMultiline(b.Details)
	b.ResourceID = sanitizer.NormalizeRegistration(b.ResourceID)
	b.StartTime = b.StartTime.UTC().Truncate(time.Millisecond)
	b.EndTime = b.EndTime.UTC().Truncate(time.Millisecond)
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return validationError("Booking validation failed", err)
	}
	return nil
}

func (s *bookingService) lookupError(id, message string, err error) error {
	switch {
	case apperrors.IsAppError(err):
		return err
	case errors.Is(err, bookingserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	case errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking ID format")
	default:
		return s.storeError(message, err)
	}
}

// storeError keeps overlap rejections raised by the store itself, such as a
// PostgreSQL exclusion constraint, distinguishable from other failures.
func (s *bookingService) storeError(message string, err error) error {
	if errors.Is(err, bookingserrors.ErrOverlap) {
		return apperrors.Conflict(bookingserrors.ErrOverlap.Error()).WithCause(err)
	}
	s.cfg.Log.Error(message, "error", err)
	return apperrors.Internal(message, err)
}

func validationError(message string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation(message, verrs.Details())
	}
	return apperrors.Validation(message, map[string]any{"error": err.Error()})
}
