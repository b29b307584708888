package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	logbookerrors "aeroclub/internal/logbook/errors"
	"aeroclub/internal/logbook/repository"
	"aeroclub/internal/logbook/validator"
	"aeroclub/pkg/config"
	apperrors "aeroclub/pkg/errors"
	"aeroclub/pkg/model"
	"aeroclub/pkg/sanitizer"
)

type LogEntryService interface {
	Create(ctx context.Context, memberID string, entry *model.LogEntry) error
	GetByID(ctx context.Context, memberID, id string) (*model.LogEntry, error)
	List(ctx context.Context, memberID string, limit int, offset int64) ([]*model.LogEntry, int64, error)
	Update(ctx context.Context, memberID, id string, updates *model.LogEntryUpdate) (*model.LogEntry, error)
	Delete(ctx context.Context, memberID, id string) error
	Totals(ctx context.Context, memberID string) ([]*model.FlightTotals, error)
}

type logEntryService struct {
	repo      repository.LogEntryRepository
	validator *validator.LogEntryValidator
	cfg       *config.Config
}

func NewLogEntryService(
	repo repository.LogEntryRepository,
	validator *validator.LogEntryValidator,
	cfg *config.Config,
) LogEntryService {
	return &logEntryService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

// FormatHours renders a duration in minutes as "Xh Ym".
func FormatHours(minutes int64) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func (s *logEntryService) Create(ctx context.Context, memberID string, entry *model.LogEntry) error {
	if memberID == "" {
		return apperrors.Unauthorized("A member is required to write the logbook")
	}
	entry.MemberID = memberID
	s.sanitize(entry)

	if err := s.validator.Validate(entry); err != nil {
		s.cfg.Log.Warn("Log entry validation failed",
			"member_id", memberID,
			"aircraft", entry.Aircraft,
			"error", err,
		)
		return validationError("Log entry validation failed", err)
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.cfg.Log.Error("Failed to create log entry", "member_id", memberID, "error", err)
		return apperrors.Internal("Failed to create log entry", err)
	}

	s.cfg.Log.Info("Log entry created successfully",
		"id", entry.ID,
		"member_id", memberID,
		"aircraft", entry.Aircraft,
		"block_time", entry.BlockTime(),
	)
	return nil
}

func (s *logEntryService) GetByID(ctx context.Context, memberID, id string) (*model.LogEntry, error) {
	if memberID == "" {
		return nil, apperrors.Unauthorized("A member is required to read the logbook")
	}
	if id == "" {
		return nil, apperrors.InvalidInput("Log entry ID cannot be empty")
	}

	entry, err := s.repo.FindByID(ctx, memberID, id)
	if err != nil {
		return nil, s.mapError(id, "Failed to retrieve log entry", err)
	}
	return entry, nil
}

func (s *logEntryService) List(ctx context.Context, memberID string, limit int, offset int64) ([]*model.LogEntry, int64, error) {
	if memberID == "" {
		return nil, 0, apperrors.Unauthorized("A member is required to read the logbook")
	}
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var entries []*model.LogEntry
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByMember(ctx, memberID)
	}()

	go func() {
		defer wg.Done()
		entries, errFind = s.repo.FindByMember(ctx, memberID, limit, offset)
	}()

	wg.Wait()

	if err := errors.Join(errCount, errFind); err != nil {
		s.cfg.Log.Error("Failed to list log entries", "member_id", memberID, "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve log entries", err)
	}
	return entries, count, nil
}

func (s *logEntryService) Update(ctx context.Context, memberID, id string, updates *model.LogEntryUpdate) (*model.LogEntry, error) {
	if memberID == "" {
		return nil, apperrors.Unauthorized("A member is required to write the logbook")
	}
	if id == "" {
		return nil, apperrors.InvalidInput("Log entry ID cannot be empty")
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		return nil, validationError("Invalid update input", err)
	}

	existing, err := s.repo.FindByID(ctx, memberID, id)
	if err != nil {
		return nil, s.mapError(id, "Failed to check log entry existence", err)
	}

	merged := mergeLogEntry(existing, updates)
	s.sanitize(merged)
	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Log entry validation failed", "id", id, "error", err)
		return nil, validationError("Log entry validation failed", err)
	}

	if err := s.repo.Update(ctx, memberID, id, merged); err != nil {
		return nil, s.mapError(id, "Failed to update log entry", err)
	}

	s.cfg.Log.Info("Log entry updated successfully", "id", id, "member_id", memberID)
	return merged, nil
}

func (s *logEntryService) Delete(ctx context.Context, memberID, id string) error {
	if memberID == "" {
		return apperrors.Unauthorized("A member is required to write the logbook")
	}
	if id == "" {
		return apperrors.InvalidInput("Log entry ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, memberID, id); err != nil {
		return s.mapError(id, "Failed to delete log entry", err)
	}

	s.cfg.Log.Info("Log entry deleted successfully", "id", id, "member_id", memberID)
	return nil
}

// Totals sums block time per aircraft for the member.
func (s *logEntryService) Totals(ctx context.Context, memberID string) ([]*model.FlightTotals, error) {
	if memberID == "" {
		return nil, apperrors.Unauthorized("A member is required to read the logbook")
	}

	rows, err := s.repo.Totals(ctx, memberID)
	if err != nil {
		s.cfg.Log.Error("Failed to compute flight totals", "member_id", memberID, "error", err)
		return nil, apperrors.Internal("Failed to compute flight totals", err)
	}

	totals := make([]*model.FlightTotals, 0, len(rows))
	for _, row := range rows {
		minutes := row.BlockMillis / time.Minute.Milliseconds()
		totals = append(totals, &model.FlightTotals{
			Aircraft:     row.Aircraft,
			Flights:      row.Flights,
			Landings:     row.Landings,
			BlockMinutes: minutes,
			Formatted:    FormatHours(minutes),
		})
	}
	return totals, nil
}

func (s *logEntryService) sanitize(entry *model.LogEntry) {
	entry.Aircraft = sanitizer.NormalizeRegistration(entry.Aircraft)
	entry.PIC = sanitizer.NormalizeName(entry.PIC)
	entry.Departure = strings.ToUpper(strings.TrimSpace(entry.Departure))
	entry.Arrival = strings.ToUpper(strings.TrimSpace(entry.Arrival))
	entry.FlightRules = strings.ToUpper(strings.TrimSpace(entry.FlightRules))
	entry.FlightType = sanitizer.TrimAndNormalize(entry.FlightType)
	entry.Details = sanitizer.NormalizeMultiline(entry.Details)
	entry.BillingDetails = sanitizer.NormalizeMultiline(entry.BillingDetails)

	entry.Date = entry.Date.UTC().Truncate(24 * time.Hour)
	for _, t := range []*time.Time{&entry.OffBlock, &entry.Takeoff, &entry.Landing, &entry.OnBlock} {
		*t = t.UTC().Truncate(time.Millisecond)
	}
}

func (s *logEntryService) mapError(id, message string, err error) error {
	switch {
	case errors.Is(err, logbookerrors.ErrNotFound):
		return apperrors.NotFoundWithID("Log entry", id)
	case errors.Is(err, logbookerrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid log entry ID format")
	default:
		s.cfg.Log.Error(message, "id", id, "error", err)
		return apperrors.Internal(message, err)
	}
}

func mergeLogEntry(existing *model.LogEntry, u *model.LogEntryUpdate) *model.LogEntry {
	merged := *existing

	if u.Aircraft != "" {
		merged.Aircraft = u.Aircraft
	}
	if u.Date != nil {
		merged.Date = *u.Date
	}
	if u.PIC != "" {
		merged.PIC = u.PIC
	}
	if u.PeopleOnBoard != nil {
		merged.PeopleOnBoard = *u.PeopleOnBoard
	}
	if u.Departure != "" {
		merged.Departure = u.Departure
	}
	if u.Arrival != "" {
		merged.Arrival = u.Arrival
	}
	if u.OffBlock != nil {
		merged.OffBlock = *u.OffBlock
	}
	if u.Takeoff != nil {
		merged.Takeoff = *u.Takeoff
	}
	if u.Landing != nil {
		merged.Landing = *u.Landing
	}
	if u.OnBlock != nil {
		merged.OnBlock = *u.OnBlock
	}
	if u.Landings != nil {
		merged.Landings = *u.Landings
	}
	if u.FlightRules != "" {
		merged.FlightRules = u.FlightRules
	}
	if u.NightMinutes != nil {
		merged.NightMinutes = *u.NightMinutes
	}
	if u.IFRMinutes != nil {
		merged.IFRMinutes = *u.IFRMinutes
	}
	if u.FuelLitres != nil {
		merged.FuelLitres = *u.FuelLitres
	}
	if u.FlightType != nil {
		merged.FlightType = *u.FlightType
	}
	if u.Details != nil {
		merged.Details = *u.Details
	}
	if u.BillingDetails != nil {
		merged.BillingDetails = *u.BillingDetails
	}

	merged.ID = existing.ID
	merged.MemberID = existing.MemberID
	merged.CreatedAt = existing.CreatedAt
	return &merged
}

func validationError(message string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation(message, verrs.Details())
	}
	return apperrors.Validation(message, map[string]any{"error": err.Error()})
}
