package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"turfbook/internal/blockedslots/service"
	httputil "turfbook/pkg/http"
	"turfbook/pkg/logger"
	"turfbook/pkg/model"
)

type BlockedSlotHandler struct {
	service service.BlockedSlotService
	log     *logger.Logger
}

func NewBlockedSlotHandler(service service.BlockedSlotService, log *logger.Logger) *BlockedSlotHandler {
	return &BlockedSlotHandler{
		service: service,
		log:     log,
	}
}

func (h *BlockedSlotHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var b model.BlockedSlot
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &b); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, b); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BlockedSlotHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	turfID := strings.TrimSpace(query.Get("turf_id"))
	date := strings.TrimSpace(query.Get("date"))

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	slots, totalCount, err := h.service.GetAll(r.Context(), turfID, date, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, slots, totalCount, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "List", "operation", "WritePaginated", "error", err)
	}
}

func (h *BlockedSlotHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		}); err != nil {
			h.log.Error("failed to write bad request response", "handler", "Delete", "operation", "WriteJSON", "error", err)
		}
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BlockedSlotHandler) Purge(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	date := strings.TrimSpace(r.URL.Query().Get("before"))
	if date == "" {
		if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "'before' query parameter is required",
		}); err != nil {
			h.log.Error("failed to write bad request response", "handler", "Purge", "operation", "WriteJSON", "error", err)
		}
		return
	}

	deleted, err := h.service.PurgeBefore(r.Context(), date)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Purge", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]int64{"deleted": deleted}); err != nil {
		h.log.Error("failed to write success response", "handler", "Purge", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BlockedSlotHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/blocked-slots", h.Create)
	router.GET("/api/v1/blocked-slots", h.List)
	router.DELETE("/api/v1/blocked-slots/id/:id", h.Delete)
	router.POST("/api/v1/blocked-slots/purge", h.Purge)
}
