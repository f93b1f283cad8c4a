package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/course-catalog/internal/catalogview"
	"github.com/Lixing-Zhang/course-catalog/internal/middleware"
	"github.com/Lixing-Zhang/course-catalog/internal/models"
	"github.com/Lixing-Zhang/course-catalog/internal/service"
)

// ViewResponse is the JSON rendering of a session's catalog view
type ViewResponse struct {
	SearchTerm string                  `json:"searchTerm"`
	Sort       models.SortOption       `json:"sort"`
	Items      []models.Item           `json:"items"`
	Cart       catalogview.CartSummary `json:"cart"`
}

// SearchRequest is the body of PUT /api/view/search
type SearchRequest struct {
	Term string `json:"term"`
}

// SortRequest is the body of PUT /api/view/sort
type SortRequest struct {
	Sort string `json:"sort"`
}

// CartHandler handles the session-scoped view and cart endpoints
type CartHandler struct {
	sessions *service.SessionService
	log      *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(sessions *service.SessionService, log *slog.Logger) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		log:      log,
	}
}

// GetView handles GET /api/view
func (h *CartHandler) GetView(w http.ResponseWriter, r *http.Request) {
	v, err := h.sessions.View(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, newViewResponse(v), h.log)
}

// SetSearch handles PUT /api/view/search
func (h *CartHandler) SetSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("failed to decode search request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	v, err := h.sessions.Update(r.Context(), middleware.SessionID(r.Context()), func(v catalogview.View) catalogview.View {
		return v.SetSearchTerm(req.Term)
	})
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, newViewResponse(v), h.log)
}

// SetSort handles PUT /api/view/sort
func (h *CartHandler) SetSort(w http.ResponseWriter, r *http.Request) {
	var req SortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("failed to decode sort request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	option, err := models.ParseSortOption(req.Sort)
	if err != nil {
		h.log.Warn("invalid sort option", "sort", req.Sort)
		WriteError(w, http.StatusBadRequest, "Invalid sort option", h.log)
		return
	}

	v, err := h.sessions.Update(r.Context(), middleware.SessionID(r.Context()), func(v catalogview.View) catalogview.View {
		return v.SetSortOption(option)
	})
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, newViewResponse(v), h.log)
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	v, err := h.sessions.View(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, v.CartSummary(), h.log)
}

// AddItem handles POST /api/cart/{itemId}
// Ids that are not in the catalog leave the cart unchanged.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	h.updateCart(w, r, "add", catalogview.View.AddItem)
}

// RemoveItem handles DELETE /api/cart/{itemId}
// One unit is removed; ids that are not in the cart leave it unchanged.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.updateCart(w, r, "remove", catalogview.View.RemoveItem)
}

// ResetSession handles DELETE /api/session
func (h *CartHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	id := middleware.SessionID(r.Context())
	if id == "" {
		h.writeSessionError(w, service.ErrInvalidSession)
		return
	}

	existed := h.sessions.Reset(id)
	h.log.Info("session reset", "session_id", id, "existed", existed)
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) updateCart(w http.ResponseWriter, r *http.Request, op string, apply func(catalogview.View, int64) catalogview.View) {
	id, err := itemIDParam(r)
	if err != nil {
		h.log.Warn("invalid item ID format", "op", op, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.log)
		return
	}

	sessionID := middleware.SessionID(r.Context())
	v, err := h.sessions.Update(r.Context(), sessionID, func(v catalogview.View) catalogview.View {
		return apply(v, id)
	})
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.log.Debug("cart updated", "op", op, "itemId", id, "quantity", v.Quantity(id), "session_id", sessionID)
	WriteJSON(w, http.StatusOK, v.CartSummary(), h.log)
}

func (h *CartHandler) writeSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrInvalidSession) {
		WriteError(w, http.StatusBadRequest, "Session required", h.log)
		return
	}

	h.log.Error("failed to load session view", "error", err)
	WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
}

func newViewResponse(v catalogview.View) ViewResponse {
	return ViewResponse{
		SearchTerm: v.SearchTerm(),
		Sort:       v.SortOption(),
		Items:      v.DisplayList(),
		Cart:       v.CartSummary(),
	}
}
