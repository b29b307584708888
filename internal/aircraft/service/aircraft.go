package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	aircrafterrors "aeroclub/internal/aircraft/errors"
	"aeroclub/internal/aircraft/repository"
	"aeroclub/internal/aircraft/validator"
	bookingserrors "aeroclub/internal/bookings/errors"
	"aeroclub/pkg/config"
	apperrors "aeroclub/pkg/errors"
	"aeroclub/pkg/model"
	"aeroclub/pkg/sanitizer"
)

type AircraftService interface {
	Create(ctx context.Context, aircraft *model.Aircraft) error
	GetByID(ctx context.Context, id string) (*model.Aircraft, error)
	List(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Aircraft, int64, error)
	Update(ctx context.Context, id string, updates *model.AircraftUpdate) (*model.Aircraft, error)
	Delete(ctx context.Context, id string) error

	// CheckBookable reports whether registration names an active aircraft.
	CheckBookable(ctx context.Context, registration string) error
}

type aircraftService struct {
	repo      repository.AircraftRepository
	validator *validator.AircraftValidator
	cfg       *config.Config
}

func NewAircraftService(
	repo repository.AircraftRepository,
	validator *validator.AircraftValidator,
	cfg *config.Config,
) AircraftService {
	return &aircraftService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *aircraftService) Create(ctx context.Context, aircraft *model.Aircraft) error {
	aircraft.Registration = sanitizer.NormalizeRegistration(aircraft.Registration)
	aircraft.Model = sanitizer.NormalizeName(aircraft.Model)

	if err := s.validator.Validate(aircraft); err != nil {
		s.cfg.Log.Warn("Aircraft validation failed",
			"registration", aircraft.Registration,
			"error", err,
		)
		return validationError("Aircraft validation failed", err)
	}

	if err := s.repo.Create(ctx, aircraft); err != nil {
		return s.mapError(aircraft.Registration, "Failed to create aircraft", err)
	}

	s.cfg.Log.Info("Aircraft created successfully",
		"id", aircraft.ID,
		"registration", aircraft.Registration,
		"active", aircraft.Active,
	)
	return nil
}

func (s *aircraftService) GetByID(ctx context.Context, id string) (*model.Aircraft, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Aircraft ID cannot be empty")
	}

	aircraft, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(id, "Failed to retrieve aircraft", err)
	}
	return aircraft, nil
}

func (s *aircraftService) List(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Aircraft, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var aircraft []*model.Aircraft
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, activeOnly)
	}()

	go func() {
		defer wg.Done()
		aircraft, errFind = s.repo.FindAll(ctx, activeOnly, limit, offset)
	}()

	wg.Wait()

	if err := errors.Join(errCount, errFind); err != nil {
		s.cfg.Log.Error("Failed to list aircraft", "limit", limit, "offset", offset, "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve aircraft", err)
	}
	return aircraft, count, nil
}

func (s *aircraftService) Update(ctx context.Context, id string, updates *model.AircraftUpdate) (*model.Aircraft, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Aircraft ID cannot be empty")
	}

	if updates.Registration != "" {
		updates.Registration = sanitizer.NormalizeRegistration(updates.Registration)
	}
	if updates.Model != "" {
		updates.Model = sanitizer.NormalizeName(updates.Model)
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Aircraft update validation failed", "id", id, "error", err)
		return nil, validationError("Invalid update input", err)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(id, "Failed to check aircraft existence", err)
	}

	merged := *existing
	if updates.Registration != "" {
		merged.Registration = updates.Registration
	}
	if updates.Model != "" {
		merged.Model = updates.Model
	}
	if updates.Active != nil {
		merged.Active = *updates.Active
	}

	if err := s.repo.Update(ctx, id, &merged); err != nil {
		return nil, s.mapError(id, "Failed to update aircraft", err)
	}

	s.cfg.Log.Info("Aircraft updated successfully",
		"id", id,
		"registration", merged.Registration,
		"active", merged.Active,
	)
	return &merged, nil
}

func (s *aircraftService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Aircraft ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapError(id, "Failed to delete aircraft", err)
	}

	s.cfg.Log.Info("Aircraft deleted successfully", "id", id)
	return nil
}

// CheckBookable lets the booking service refuse bookings for aircraft the
// club does not operate or has grounded.
func (s *aircraftService) CheckBookable(ctx context.Context, registration string) error {
	registration = sanitizer.NormalizeRegistration(registration)

	aircraft, err := s.repo.FindByRegistration(ctx, registration)
	if err != nil {
		if errors.Is(err, aircrafterrors.ErrNotFound) {
			return fmt.Errorf("%w: %s", bookingserrors.ErrUnknownResource, registration)
		}
		return fmt.Errorf("failed to look up aircraft %s: %w", registration, err)
	}
	if !aircraft.Active {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInactiveResource, registration)
	}
	return nil
}

func (s *aircraftService) mapError(key, message string, err error) error {
	switch {
	case errors.Is(err, aircrafterrors.ErrNotFound):
		return apperrors.NotFoundWithID("Aircraft", key)
	case errors.Is(err, aircrafterrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid aircraft ID format")
	case errors.Is(err, aircrafterrors.ErrDuplicateRegistration):
		return apperrors.Conflict("Aircraft with this registration already exists").WithCause(err)
	default:
		s.cfg.Log.Error(message, "key", key, "error", err)
		return apperrors.Internal(message, err)
	}
}

func validationError(message string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation(message, verrs.Details())
	}
	return apperrors.Validation(message, map[string]any{"error": err.Error()})
}
