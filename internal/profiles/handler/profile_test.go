package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "aeroclub/pkg/errors"
	"aeroclub/pkg/identity"
	"aeroclub/pkg/logger"
	"aeroclub/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProfileService struct {
	getFunc    func(ctx context.Context, memberID string) (*model.Profile, error)
	updateFunc func(ctx context.Context, memberID string, u *model.ProfileUpdate) (*model.Profile, error)
}

func (m *mockProfileService) Get(ctx context.Context, memberID string) (*model.Profile, error) {
	return m.getFunc(ctx, memberID)
}

func (m *mockProfileService) Update(ctx context.Context, memberID string, u *model.ProfileUpdate) (*model.Profile, error) {
	return m.updateFunc(ctx, memberID, u)
}

func serve(t *testing.T, svc *mockProfileService, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	router := httprouter.New()
	NewProfileHandler(svc, logger.Discard()).RegisterRoutes(router)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asMember(req *http.Request, memberID string) *http.Request {
	return req.WithContext(identity.WithMemberID(req.Context(), memberID))
}

func TestGet(t *testing.T) {
	svc := &mockProfileService{getFunc: func(_ context.Context, memberID string) (*model.Profile, error) {
		if memberID == "" {
			return nil, apperrors.Unauthorized("A member is required to read a profile")
		}
		return &model.Profile{MemberID: memberID, Role: model.RoleMember, Newsletter: true}, nil
	}}

	w := serve(t, svc, httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(t, svc, asMember(httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil), "member-1"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "member-1", resp.Data["member_id"])
	assert.Equal(t, true, resp.Data["nf"])
}

func TestUpdate(t *testing.T) {
	var got *model.ProfileUpdate
	svc := &mockProfileService{updateFunc: func(_ context.Context, memberID string, u *model.ProfileUpdate) (*model.Profile, error) {
		got = u
		return &model.Profile{MemberID: memberID, City: *u.City, Role: model.RoleMember}, nil
	}}

	body := strings.NewReader(`{"city":"Turku","nf":false}`)
	w := serve(t, svc, asMember(httptest.NewRequest(http.MethodPatch, "/api/v1/profile", body), "member-1"))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got)
	assert.Equal(t, "Turku", *got.City)
	require.NotNil(t, got.Newsletter)
	assert.False(t, *got.Newsletter)
	assert.Nil(t, got.Email)
}

func TestUpdate_RejectsUnknownFields(t *testing.T) {
	svc := &mockProfileService{updateFunc: func(context.Context, string, *model.ProfileUpdate) (*model.Profile, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}}

	body := strings.NewReader(`{"member_id":"someone-else"}`)
	w := serve(t, svc, asMember(httptest.NewRequest(http.MethodPatch, "/api/v1/profile", body), "member-1"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
