package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

var errInvalidItemID = errors.New("invalid item id")

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	WriteJSON(w, status, ErrorResponse{Error: message}, logger)
}

// itemIDParam reads the {itemId} URL parameter.
// Item ids are integers; anything else is rejected.
func itemIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "itemId")
	if raw == "" {
		return 0, errInvalidItemID
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errInvalidItemID
	}
	return id, nil
}
