package handler

import (
	"net/http"

	"aeroclub/internal/logbook/service"
	httputil "aeroclub/pkg/http"
	"aeroclub/pkg/identity"
	"aeroclub/pkg/logger"
	"aeroclub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// LogEntryHandler serves the caller's own logbook; the member comes from the
// request identity, never from the URL.
type LogEntryHandler struct {
	service service.LogEntryService
	log     *logger.Logger
}

func NewLogEntryHandler(service service.LogEntryService, log *logger.Logger) *LogEntryHandler {
	return &LogEntryHandler{
		service: service,
		log:     log,
	}
}

func (h *LogEntryHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var entry model.LogEntry
	if err := httputil.DecodeJSON(r, &entry); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := h.service.Create(r.Context(), identity.MemberID(r.Context()), &entry); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, entry); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *LogEntryHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	entry, err := h.service.GetByID(r.Context(), identity.MemberID(r.Context()), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, entry); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *LogEntryHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	entries, total, err := h.service.List(r.Context(), identity.MemberID(r.Context()), limit, offset)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WritePaginated(w, entries, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "List", "operation", "WritePaginated", "error", err)
	}
}

func (h *LogEntryHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.LogEntryUpdate
	if err := httputil.DecodeJSON(r, &updates); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	updated, err := h.service.Update(r.Context(), identity.MemberID(r.Context()), ps.ByName("id"), &updates)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, updated); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *LogEntryHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), identity.MemberID(r.Context()), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *LogEntryHandler) Totals(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	totals, err := h.service.Totals(r.Context(), identity.MemberID(r.Context()))
	if err != nil {
		h.writeError(w, "Totals", err)
		return
	}

	if err := httputil.WriteSuccess(w, totals); err != nil {
		h.log.Error("failed to write success response", "handler", "Totals", "operation", "WriteSuccess", "error", err)
	}
}

func (h *LogEntryHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/logbook", h.Create)
	router.GET("/api/v1/logbook", h.List)
	router.GET("/api/v1/logbook/totals", h.Totals)
	router.GET("/api/v1/logbook/id/:id", h.GetByID)
	router.PATCH("/api/v1/logbook/id/:id", h.Update)
	router.DELETE("/api/v1/logbook/id/:id", h.Delete)
}

func (h *LogEntryHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
