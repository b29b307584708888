package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "aeroclub/pkg/errors"
	"aeroclub/pkg/identity"
	"aeroclub/pkg/logger"
	"aeroclub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockLogEntryService struct {
	totalsFunc func(ctx context.Context, memberID string) ([]*model.FlightTotals, error)
}

func (m *mockLogEntryService) Create(ctx context.Context, memberID string, e *model.LogEntry) error {
	return nil
}

func (m *mockLogEntryService) GetByID(ctx context.Context, memberID, id string) (*model.LogEntry, error) {
	return &model.LogEntry{ID: id, MemberID: memberID}, nil
}

func (m *mockLogEntryService) List(ctx context.Context, memberID string, limit int, offset int64) ([]*model.LogEntry, int64, error) {
	return []*model.LogEntry{}, 0, nil
}

func (m *mockLogEntryService) Update(ctx context.Context, memberID, id string, u *model.LogEntryUpdate) (*model.LogEntry, error) {
	return &model.LogEntry{ID: id}, nil
}

func (m *mockLogEntryService) Delete(ctx context.Context, memberID, id string) error {
	return nil
}

func (m *mockLogEntryService) Totals(ctx context.Context, memberID string) ([]*model.FlightTotals, error) {
	return m.totalsFunc(ctx, memberID)
}

func TestTotals_UsesRequestMember(t *testing.T) {
	var gotMember string
	svc := &mockLogEntryService{totalsFunc: func(_ context.Context, memberID string) ([]*model.FlightTotals, error) {
		gotMember = memberID
		if memberID == "" {
			return nil, apperrors.Unauthorized("A member is required to read the logbook")
		}
		return []*model.FlightTotals{{Aircraft: "OH-ABC", BlockMinutes: 90, Formatted: "1h 30m"}}, nil
	}}
	router := httprouter.New()
	NewLogEntryHandler(svc, logger.Discard()).RegisterRoutes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logbook/totals", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without member, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/logbook/totals", nil)
	req = req.WithContext(identity.WithMemberID(req.Context(), "member-1"))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotMember != "member-1" {
		t.Errorf("expected member-1, got %q", gotMember)
	}

	var resp struct {
		Data []model.FlightTotals `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Formatted != "1h 30m" {
		t.Errorf("unexpected totals %+v", resp.Data)
	}
}
