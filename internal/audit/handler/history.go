package handler

import (
	"net/http"

	"aeroclub/internal/audit/repository"
	apperrors "aeroclub/pkg/errors"
	httputil "aeroclub/pkg/http"
	"aeroclub/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

// HistoryHandler serves the stored events of one booking.
type HistoryHandler struct {
	repo repository.EventRepository
	log  *logger.Logger
}

func NewHistoryHandler(repo repository.EventRepository, log *logger.Logger) *HistoryHandler {
	return &HistoryHandler{repo: repo, log: log}
}

func (h *HistoryHandler) GetByBookingID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookingID := ps.ByName("id")
	if bookingID == "" {
		h.writeError(w, apperrors.InvalidInput("Booking ID cannot be empty"))
		return
	}

	limit, _, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	events, err := h.repo.FindByBookingID(r.Context(), bookingID, limit)
	if err != nil {
		h.log.Error("Failed to load booking history", "booking_id", bookingID, "error", err)
		h.writeError(w, apperrors.Internal("Failed to load booking history", err))
		return
	}

	if err := httputil.WriteSuccess(w, events); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByBookingID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HistoryHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/audit/bookings/:id", h.GetByBookingID)
}

func (h *HistoryHandler) writeError(w http.ResponseWriter, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", "GetByBookingID", "operation", "WriteError", "error", writeErr)
	}
}
