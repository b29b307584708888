package handler

import (
	"net/http"

	"aeroclub/internal/bookings/guard"
	"aeroclub/internal/bookings/service"
	apperrors "aeroclub/pkg/errors"
	httputil "aeroclub/pkg/http"
	"aeroclub/pkg/identity"
	"aeroclub/pkg/logger"
	"aeroclub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

type OverlapResponse struct {
	Overlapping bool `json:"overlapping"`
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := httputil.DecodeJSON(r, &booking); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := h.service.Create(r.Context(), &booking); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	booking, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

// List returns bookings matching the query filters. "mine=true" restricts
// the result to the caller's own bookings.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	bookings, total, err := h.service.List(r.Context(), filter, limit, offset)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "List", "operation", "WritePaginated", "error", err)
	}
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var updates model.BookingUpdate
	if err := httputil.DecodeJSON(r, &updates); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	updated, err := h.service.Update(r.Context(), id, &updates)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, updated); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteSuccess(w, deleted); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "operation", "WriteSuccess", "error", err)
	}
}

// Overlap answers whether the given interval would collide with a stored
// booking. Missing times default to now.
func (h *BookingHandler) Overlap(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	start, err := httputil.ParseTimeParam(r, "start_time")
	if err != nil {
		h.writeError(w, "Overlap", err)
		return
	}
	end, err := httputil.ParseTimeParam(r, "end_time")
	if err != nil {
		h.writeError(w, "Overlap", err)
		return
	}
	if start != nil && end != nil && end.Before(*start) {
		h.writeError(w, "Overlap", apperrors.InvalidInput("end_time must not be before start_time"))
		return
	}

	overlapping, err := h.service.CheckOverlap(r.Context(), guard.Candidate{
		Start:     start,
		End:       end,
		OwnerKey:  query.Get("resource_id"),
		ExcludeID: query.Get("exclude_id"),
	})
	if err != nil {
		h.writeError(w, "Overlap", err)
		return
	}

	if err := httputil.WriteSuccess(w, OverlapResponse{Overlapping: overlapping}); err != nil {
		h.log.Error("failed to write success response", "handler", "Overlap", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.GET("/api/v1/bookings", h.List)
	router.GET("/api/v1/bookings/id/:id", h.GetByID)
	router.PATCH("/api/v1/bookings/id/:id", h.Update)
	router.DELETE("/api/v1/bookings/id/:id", h.Delete)
	router.GET("/api/v1/bookings/overlap", h.Overlap)
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func parseFilter(r *http.Request) (model.BookingFilter, error) {
	query := r.URL.Query()
	filter := model.BookingFilter{
		ID:              query.Get("id"),
		TitleContains:   query.Get("title"),
		DetailsContains: query.Get("details"),
		ResourceID:      query.Get("resource_id"),
		MemberID:        query.Get("member_id"),
	}

	var err error
	if filter.StartAfter, err = httputil.ParseTimeParam(r, "start_time"); err != nil {
		return filter, err
	}
	if filter.EndBefore, err = httputil.ParseTimeParam(r, "end_time"); err != nil {
		return filter, err
	}
	if filter.CreatedAt, err = httputil.ParseTimeParam(r, "created_at"); err != nil {
		return filter, err
	}

	if query.Get("mine") == "true" {
		memberID := identity.MemberID(r.Context())
		if memberID == "" {
			return filter, apperrors.Unauthorized("mine=true requires an authenticated member")
		}
		filter.MemberID = memberID
	}
	return filter, nil
}
