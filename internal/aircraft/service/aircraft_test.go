package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	aircrafterrors "aeroclub/internal/aircraft/errors"
	"aeroclub/internal/aircraft/validator"
	bookingserrors "aeroclub/internal/bookings/errors"
	"aeroclub/pkg/config"
	apperrors "aeroclub/pkg/errors"
	"aeroclub/pkg/logger"
	"aeroclub/pkg/model"
)

// ────────────────────────────────────────────────
// Mock repository
// ────────────────────────────────────────────────

type mockAircraftRepository struct {
	createFunc             func(ctx context.Context, a *model.Aircraft) error
	findByIDFunc           func(ctx context.Context, id string) (*model.Aircraft, error)
	findByRegistrationFunc func(ctx context.Context, registration string) (*model.Aircraft, error)
	findAllFunc            func(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Aircraft, error)
	countFunc              func(ctx context.Context, activeOnly bool) (int64, error)
	updateFunc             func(ctx context.Context, id string, a *model.Aircraft) error
	deleteFunc             func(ctx context.Context, id string) error
}

func (m *mockAircraftRepository) Create(ctx context.Context, a *model.Aircraft) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, a)
	}
	a.ID = "65a000000000000000000001"
	return nil
}

func (m *mockAircraftRepository) FindByID(ctx context.Context, id string) (*model.Aircraft, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, fmt.Errorf("%w: %s", aircrafterrors.ErrNotFound, id)
}

func (m *mockAircraftRepository) FindByRegistration(ctx context.Context, registration string) (*model.Aircraft, error) {
	if m.findByRegistrationFunc != nil {
		return m.findByRegistrationFunc(ctx, registration)
	}
	return nil, fmt.Errorf("%w: %s", aircrafterrors.ErrNotFound, registration)
}

func (m *mockAircraftRepository) FindAll(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Aircraft, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, activeOnly, limit, offset)
	}
	return []*model.Aircraft{}, nil
}

func (m *mockAircraftRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, activeOnly)
	}
	return 0, nil
}

func (m *mockAircraftRepository) Update(ctx context.Context, id string, a *model.Aircraft) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, a)
	}
	return nil
}

func (m *mockAircraftRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func newTestService(repo *mockAircraftRepository) AircraftService {
	log := logger.Discard()
	return NewAircraftService(repo, validator.NewAircraftValidator(log), &config.Config{Log: log})
}

// ────────────────────────────────────────────────
// Tests
// ────────────────────────────────────────────────

func TestCreate_NormalizesRegistration(t *testing.T) {
	var stored *model.Aircraft
	repo := &mockAircraftRepository{createFunc: func(_ context.Context, a *model.Aircraft) error {
		stored = a
		return nil
	}}

	err := newTestService(repo).Create(context.Background(), &model.Aircraft{Registration: " oh-abc", Model: "  Cessna   172 ", Active: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Registration != "OH-ABC" || stored.Model != "Cessna 172" {
		t.Errorf("unexpected stored aircraft %+v", stored)
	}
}

func TestCreate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		aircraft  *model.Aircraft
		createErr error
		wantCode  string
	}{
		{"invalid registration", &model.Aircraft{Registration: "OH/ABC", Model: "Cessna 172"}, nil, apperrors.CodeValidation},
		{"duplicate", &model.Aircraft{Registration: "OH-ABC", Model: "Cessna 172"}, aircrafterrors.ErrDuplicateRegistration, apperrors.CodeConflict},
		{"store failure", &model.Aircraft{Registration: "OH-ABC", Model: "Cessna 172"}, errors.New("socket closed"), apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockAircraftRepository{createFunc: func(context.Context, *model.Aircraft) error { return tt.createErr }}
			err := newTestService(repo).Create(context.Background(), tt.aircraft)
			if !apperrors.HasCode(err, tt.wantCode) {
				t.Errorf("expected %s, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestUpdate_MergesFields(t *testing.T) {
	existing := &model.Aircraft{ID: "65a000000000000000000001", Registration: "OH-ABC", Model: "Cessna 172", Active: true}
	var saved *model.Aircraft
	repo := &mockAircraftRepository{
		findByIDFunc: func(context.Context, string) (*model.Aircraft, error) { return existing, nil },
		updateFunc: func(_ context.Context, _ string, a *model.Aircraft) error {
			saved = a
			return nil
		},
	}

	inactive := false
	updated, err := newTestService(repo).Update(context.Background(), existing.ID, &model.AircraftUpdate{Active: &inactive})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Active || updated.Registration != "OH-ABC" || saved != updated {
		t.Errorf("unexpected update result %+v", updated)
	}
	if !existing.Active {
		t.Error("existing record must not be mutated")
	}
}

func TestGetByID_NotFound(t *testing.T) {
	_, err := newTestService(&mockAircraftRepository{}).GetByID(context.Background(), "65a000000000000000000009")
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestList_PassesActiveFilter(t *testing.T) {
	var gotActive bool
	var gotLimit int
	repo := &mockAircraftRepository{
		findAllFunc: func(_ context.Context, activeOnly bool, limit int, _ int64) ([]*model.Aircraft, error) {
			gotActive, gotLimit = activeOnly, limit
			return []*model.Aircraft{{Registration: "OH-ABC"}}, nil
		},
		countFunc: func(context.Context, bool) (int64, error) { return 1, nil },
	}

	aircraft, total, err := newTestService(repo).List(context.Background(), true, 0, -3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gotActive || gotLimit != 10 || total != 1 || len(aircraft) != 1 {
		t.Errorf("unexpected list call active=%v limit=%d total=%d", gotActive, gotLimit, total)
	}
}

func TestCheckBookable(t *testing.T) {
	repo := &mockAircraftRepository{findByRegistrationFunc: func(_ context.Context, reg string) (*model.Aircraft, error) {
		switch reg {
		case "OH-ABC":
			return &model.Aircraft{Registration: reg, Active: true}, nil
		case "OH-OLD":
			return &model.Aircraft{Registration: reg, Active: false}, nil
		case "OH-ERR":
			return nil, errors.New("server selection error")
		}
		return nil, fmt.Errorf("%w: %s", aircrafterrors.ErrNotFound, reg)
	}}
	svc := newTestService(repo)

	if err := svc.CheckBookable(context.Background(), "oh-abc"); err != nil {
		t.Errorf("expected active aircraft to be bookable, got %v", err)
	}
	if err := svc.CheckBookable(context.Background(), "OH-OLD"); !errors.Is(err, bookingserrors.ErrInactiveResource) {
		t.Errorf("expected ErrInactiveResource, got %v", err)
	}
	if err := svc.CheckBookable(context.Background(), "OH-NEW"); !errors.Is(err, bookingserrors.ErrUnknownResource) {
		t.Errorf("expected ErrUnknownResource, got %v", err)
	}
	err := svc.CheckBookable(context.Background(), "OH-ERR")
	if err == nil || errors.Is(err, bookingserrors.ErrUnknownResource) {
		t.Errorf("expected plain lookup failure, got %v", err)
	}
}
