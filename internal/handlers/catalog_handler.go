package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/course-catalog/internal/models"
	"github.com/Lixing-Zhang/course-catalog/internal/repository"
	"github.com/Lixing-Zhang/course-catalog/internal/service"
)

// CatalogHandler handles catalog-related HTTP requests
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger,
	}
}

// ListItems handles GET /api/item
// Without query parameters the catalog is returned in catalog order.
// ?q= filters titles case-insensitively and ?sort=title|price orders the result.
func (h *CatalogHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	if !query.Has("q") && !query.Has("sort") {
		items, err := h.service.ListItems(ctx)
		if err != nil {
			h.logger.Error("failed to list items", "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
			return
		}
		WriteJSON(w, http.StatusOK, items, h.logger)
		return
	}

	option := models.DefaultSortOption
	if raw := query.Get("sort"); raw != "" {
		parsed, err := models.ParseSortOption(raw)
		if err != nil {
			h.logger.Warn("invalid sort option", "sort", raw)
			WriteError(w, http.StatusBadRequest, "Invalid sort option", h.logger)
			return
		}
		option = parsed
	}

	items, err := h.service.SearchItems(ctx, query.Get("q"), option)
	if err != nil {
		h.logger.Error("failed to search items", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, items, h.logger)
}

// GetItem handles GET /api/item/{itemId}
// - 200: successful operation
// - 400: Invalid ID supplied
// - 404: Item not found
func (h *CatalogHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemIDParam(r)
	if err != nil {
		h.logger.Warn("invalid item ID format", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	item, err := h.service.GetItem(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			h.logger.Info("item not found", "itemId", id)
			WriteError(w, http.StatusNotFound, "Item not found", h.logger)
			return
		}

		h.logger.Error("failed to get item", "itemId", id, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, item, h.logger)
}
