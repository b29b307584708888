package service

import (
	"context"
	"errors"
	"strings"

	profileserrors "aeroclub/internal/profiles/errors"
	"aeroclub/internal/profiles/repository"
	"aeroclub/internal/profiles/validator"
	"aeroclub/pkg/config"
	apperrors "aeroclub/pkg/errors"
	"aeroclub/pkg/locale"
	"aeroclub/pkg/model"
	"aeroclub/pkg/sanitizer"
)

type ProfileService interface {
	Get(ctx context.Context, memberID string) (*model.Profile, error)
	Update(ctx context.Context, memberID string, updates *model.ProfileUpdate) (*model.Profile, error)
}

type profileService struct {
	repo      repository.ProfileRepository
	validator *validator.ProfileValidator
	cfg       *config.Config
}

func NewProfileService(
	repo repository.ProfileRepository,
	validator *validator.ProfileValidator,
	cfg *config.Config,
) ProfileService {
	return &profileService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

// Get returns the stored profile, or an empty member profile when the member
// never saved one.
func (s *profileService) Get(ctx context.Context, memberID string) (*model.Profile, error) {
	if memberID == "" {
		return nil, apperrors.Unauthorized("A member is required to read a profile")
	}

	profile, err := s.repo.FindByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, profileserrors.ErrNotFound) {
			return &model.Profile{MemberID: memberID, Role: model.RoleMember}, nil
		}
		s.cfg.Log.Error("Failed to retrieve profile", "member_id", memberID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve profile", err)
	}
	return profile, nil
}

func (s *profileService) Update(ctx context.Context, memberID string, updates *model.ProfileUpdate) (*model.Profile, error) {
	if memberID == "" {
		return nil, apperrors.Unauthorized("A member is required to update a profile")
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		return nil, validationError("Invalid update input", err)
	}

	existing, err := s.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if updates.Role != nil && *updates.Role != existing.Role && existing.Role != model.RoleAdmin {
		s.cfg.Log.Warn("Role change refused", "member_id", memberID, "role", existing.Role, "requested", *updates.Role)
		return nil, apperrors.Forbidden("Only an admin can change a role")
	}

	merged := mergeProfile(existing, updates)
	if updates.Phone != nil && strings.TrimSpace(*updates.Phone) != "" {
		phone := sanitizer.NormalizePhone(*updates.Phone)
		if phone == "" {
			return nil, apperrors.Validation("Profile validation failed", map[string]any{
				"phone": "phone must be a valid phone number",
			})
		}
		merged.Phone = phone
	}
	if merged.Country == "" {
		if country := locale.InferCountryFromPhone(merged.Phone); country != nil {
			merged.Country = country.Name
		}
	}
	s.sanitize(merged)

	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Profile validation failed", "member_id", memberID, "error", err)
		return nil, validationError("Profile validation failed", err)
	}

	if err := s.repo.Upsert(ctx, merged); err != nil {
		s.cfg.Log.Error("Failed to save profile", "member_id", memberID, "error", err)
		return nil, apperrors.Internal("Failed to save profile", err)
	}

	s.cfg.Log.Info("Profile updated successfully", "member_id", memberID, "country", merged.Country)
	return merged, nil
}

func (s *profileService) sanitize(p *model.Profile) {
	p.Email = sanitizer.NormalizeEmail(p.Email)
	p.FullName = sanitizer.NormalizeName(p.FullName)
	p.Username = strings.TrimSpace(p.Username)
	p.StreetAddress = sanitizer.TrimAndNormalize(p.StreetAddress)
	p.City = sanitizer.NormalizeName(p.City)
	p.Country = sanitizer.NormalizeName(p.Country)
	p.Postcode = strings.ToUpper(strings.TrimSpace(p.Postcode))
}

func mergeProfile(existing *model.Profile, u *model.ProfileUpdate) *model.Profile {
	merged := *existing

	if u.Email != nil {
		merged.Email = *u.Email
	}
	if u.Phone != nil {
		merged.Phone = ""
	}
	if u.FullName != nil {
		merged.FullName = *u.FullName
	}
	if u.Username != nil {
		merged.Username = *u.Username
	}
	if u.StreetAddress != nil {
		merged.StreetAddress = *u.StreetAddress
	}
	if u.City != nil {
		merged.City = *u.City
	}
	if u.Country != nil {
		merged.Country = *u.Country
	}
	if u.Postcode != nil {
		merged.Postcode = *u.Postcode
	}
	if u.Role != nil {
		merged.Role = *u.Role
	}
	if u.Newsletter != nil {
		merged.Newsletter = *u.Newsletter
	}

	return &merged
}

func validationError(message string, err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return apperrors.Validation(message, validationErrs.Details())
	}
	return apperrors.Validation(message, map[string]any{"error": err.Error()})
}
