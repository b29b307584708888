package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	profileserrors "aeroclub/internal/profiles/errors"
	"aeroclub/internal/profiles/validator"
	"aeroclub/pkg/config"
	apperrors "aeroclub/pkg/errors"
	"aeroclub/pkg/logger"
	"aeroclub/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProfileRepository struct {
	stored    map[string]*model.Profile
	findErr   error
	upsertErr error
	upserts   int
}

func newMockRepository() *mockProfileRepository {
	return &mockProfileRepository{stored: make(map[string]*model.Profile)}
}

func (m *mockProfileRepository) FindByMemberID(_ context.Context, memberID string) (*model.Profile, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	p, ok := m.stored[memberID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", profileserrors.ErrNotFound, memberID)
	}
	cp := *p
	return &cp, nil
}

func (m *mockProfileRepository) Upsert(_ context.Context, p *model.Profile) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts++
	cp := *p
	m.stored[p.MemberID] = &cp
	return nil
}

func newTestService(repo *mockProfileRepository) ProfileService {
	log := logger.Discard()
	return NewProfileService(repo, validator.NewProfileValidator(log), &config.Config{Log: log})
}

func ptr[T any](v T) *T {
	return &v
}

func TestGet_EmptyProfileWhenNoneStored(t *testing.T) {
	profile, err := newTestService(newMockRepository()).Get(context.Background(), "member-1")
	require.NoError(t, err)

	assert.Equal(t, "member-1", profile.MemberID)
	assert.Equal(t, model.RoleMember, profile.Role)
	assert.Empty(t, profile.Email)
}

func TestGet_RequiresMember(t *testing.T) {
	_, err := newTestService(newMockRepository()).Get(context.Background(), "")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
}

func TestGet_RepositoryFailure(t *testing.T) {
	repo := newMockRepository()
	repo.findErr = errors.New("connection reset")

	_, err := newTestService(repo).Get(context.Background(), "member-1")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInternal))
}

func TestUpdate_UpsertsAndInfersCountry(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	profile, err := svc.Update(context.Background(), "member-1", &model.ProfileUpdate{
		Email:      ptr("  Pilot@Example.COM "),
		Phone:      ptr("040 123 4567"),
		FullName:   ptr(" Aino   Pilot "),
		Newsletter: ptr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, "pilot@example.com", profile.Email)
	assert.Equal(t, "+358401234567", profile.Phone)
	assert.Equal(t, "Aino Pilot", profile.FullName)
	assert.Equal(t, "Finland", profile.Country)
	assert.True(t, profile.Newsletter)
	assert.Equal(t, 1, repo.upserts)
	assert.Equal(t, "+358401234567", repo.stored["member-1"].Phone)
}

func TestUpdate_KeepsExplicitCountry(t *testing.T) {
	profile, err := newTestService(newMockRepository()).Update(context.Background(), "member-1", &model.ProfileUpdate{
		Phone:   ptr("+46701234567"),
		Country: ptr("Finland"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Finland", profile.Country)
}

func TestUpdate_PartialKeepsOtherFields(t *testing.T) {
	repo := newMockRepository()
	repo.stored["member-1"] = &model.Profile{
		MemberID: "member-1",
		Email:    "pilot@example.com",
		City:     "Helsinki",
		Role:     model.RoleMember,
	}

	profile, err := newTestService(repo).Update(context.Background(), "member-1", &model.ProfileUpdate{
		Postcode: ptr("00100"),
	})
	require.NoError(t, err)

	assert.Equal(t, "pilot@example.com", profile.Email)
	assert.Equal(t, "Helsinki", profile.City)
	assert.Equal(t, "00100", profile.Postcode)
}

func TestUpdate_EmptyPhoneClearsIt(t *testing.T) {
	repo := newMockRepository()
	repo.stored["member-1"] = &model.Profile{MemberID: "member-1", Phone: "+358401234567", Role: model.RoleMember}

	profile, err := newTestService(repo).Update(context.Background(), "member-1", &model.ProfileUpdate{Phone: ptr("")})
	require.NoError(t, err)
	assert.Empty(t, profile.Phone)
}

func TestUpdate_InvalidPhone(t *testing.T) {
	repo := newMockRepository()
	_, err := newTestService(repo).Update(context.Background(), "member-1", &model.ProfileUpdate{Phone: ptr("not-a-phone")})

	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Details, "phone")
	assert.Zero(t, repo.upserts)
}

func TestUpdate_InvalidEmail(t *testing.T) {
	_, err := newTestService(newMockRepository()).Update(context.Background(), "member-1", &model.ProfileUpdate{Email: ptr("nope")})

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Details, "email")
}

func TestUpdate_RoleChange(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		want     string
		wantCode string
	}{
		{name: "member cannot promote itself", current: model.RoleMember, want: model.RoleAdmin, wantCode: apperrors.CodeForbidden},
		{name: "same role is a no-op", current: model.RoleInstructor, want: model.RoleInstructor},
		{name: "admin can change role", current: model.RoleAdmin, want: model.RoleInstructor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepository()
			repo.stored["member-1"] = &model.Profile{MemberID: "member-1", Role: tt.current}

			profile, err := newTestService(repo).Update(context.Background(), "member-1", &model.ProfileUpdate{Role: ptr(tt.want)})
			if tt.wantCode != "" {
				assert.True(t, apperrors.HasCode(err, tt.wantCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, profile.Role)
		})
	}
}

func TestUpdate_RepositoryFailure(t *testing.T) {
	repo := newMockRepository()
	repo.upsertErr = errors.New("write concern error")

	_, err := newTestService(repo).Update(context.Background(), "member-1", &model.ProfileUpdate{City: ptr("Turku")})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInternal))
}
