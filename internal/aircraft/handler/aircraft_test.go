package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "aeroclub/pkg/errors"
	"aeroclub/pkg/logger"
	"aeroclub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockAircraftService struct {
	createFunc func(ctx context.Context, a *model.Aircraft) error
	listFunc   func(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Aircraft, int64, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockAircraftService) Create(ctx context.Context, a *model.Aircraft) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, a)
	}
	return nil
}

func (m *mockAircraftService) GetByID(ctx context.Context, id string) (*model.Aircraft, error) {
	return &model.Aircraft{ID: id}, nil
}

func (m *mockAircraftService) List(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Aircraft, int64, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, activeOnly, limit, offset)
	}
	return []*model.Aircraft{}, 0, nil
}

func (m *mockAircraftService) Update(ctx context.Context, id string, u *model.AircraftUpdate) (*model.Aircraft, error) {
	return &model.Aircraft{ID: id}, nil
}

func (m *mockAircraftService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockAircraftService) CheckBookable(ctx context.Context, registration string) error {
	return nil
}

func newRouter(svc *mockAircraftService) *httprouter.Router {
	router := httprouter.New()
	NewAircraftHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func TestCreate_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{"created", `{"registration":"OH-ABC","model":"Cessna 172","active":true}`, nil, http.StatusCreated},
		{"bad json", `{"registration":`, nil, http.StatusBadRequest},
		{"duplicate", `{"registration":"OH-ABC","model":"Cessna 172"}`, apperrors.Conflict("Aircraft with this registration already exists"), http.StatusConflict},
		{"invalid", `{"registration":"x","model":"C"}`, apperrors.Validation("Aircraft validation failed", nil), http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAircraftService{createFunc: func(context.Context, *model.Aircraft) error { return tt.serviceErr }}
			w := httptest.NewRecorder()
			newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/aircraft", strings.NewReader(tt.body)))

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestList_ActiveOnly(t *testing.T) {
	var gotActive bool
	svc := &mockAircraftService{listFunc: func(_ context.Context, activeOnly bool, _ int, _ int64) ([]*model.Aircraft, int64, error) {
		gotActive = activeOnly
		return nil, 0, nil
	}}

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/aircraft?active=true", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !gotActive {
		t.Error("expected active filter to be passed through")
	}
}

func TestDelete_NoContent(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(&mockAircraftService{}).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/aircraft/id/65a000000000000000000001", nil))

	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
}
