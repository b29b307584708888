package handler

import (
	"net/http"

	"aeroclub/internal/aircraft/service"
	httputil "aeroclub/pkg/http"
	"aeroclub/pkg/logger"
	"aeroclub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type AircraftHandler struct {
	service service.AircraftService
	log     *logger.Logger
}

func NewAircraftHandler(service service.AircraftService, log *logger.Logger) *AircraftHandler {
	return &AircraftHandler{
		service: service,
		log:     log,
	}
}

func (h *AircraftHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var aircraft model.Aircraft
	if err := httputil.DecodeJSON(r, &aircraft); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := h.service.Create(r.Context(), &aircraft); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, aircraft); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *AircraftHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	aircraft, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, aircraft); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

// List returns the fleet; "active=true" hides grounded aircraft.
func (h *AircraftHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}
	activeOnly := r.URL.Query().Get("active") == "true"

	aircraft, total, err := h.service.List(r.Context(), activeOnly, limit, offset)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WritePaginated(w, aircraft, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "List", "operation", "WritePaginated", "error", err)
	}
}

func (h *AircraftHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.AircraftUpdate
	if err := httputil.DecodeJSON(r, &updates); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	updated, err := h.service.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, updated); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AircraftHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *AircraftHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/aircraft", h.Create)
	router.GET("/api/v1/aircraft", h.List)
	router.GET("/api/v1/aircraft/id/:id", h.GetByID)
	router.PATCH("/api/v1/aircraft/id/:id", h.Update)
	router.DELETE("/api/v1/aircraft/id/:id", h.Delete)
}

func (h *AircraftHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
