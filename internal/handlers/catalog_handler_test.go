package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Lixing-Zhang/course-catalog/internal/models"
)

func TestListItems(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodGet, "/api/item", "", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var items []models.Item
	if err := json.NewDecoder(w.Body).Decode(&items); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(items) != 6 {
		t.Fatalf("expected 6 items, got %d", len(items))
	}

	// Catalog order, not sorted
	if items[0].ID != 1 || items[5].ID != 6 {
		t.Errorf("expected catalog order, got first=%d last=%d", items[0].ID, items[5].ID)
	}
}

func TestListItems_SearchAndSort(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedIDs    []int64
	}{
		{"search only sorts by title", "?q=gigantes", http.StatusOK, []int64{3, 5}},
		{"sort by price", "?sort=price", http.StatusOK, []int64{4, 1, 2, 6, 5, 3}},
		{"search and sort", "?q=MEC%C3%82NICO&sort=price", http.StatusOK, []int64{4, 2}},
		{"no match", "?q=culin%C3%A1ria", http.StatusOK, []int64{}},
		{"invalid sort", "?sort=rating", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(http.MethodGet, "/api/item"+tt.query, "", nil)

			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var items []models.Item
			if err := json.NewDecoder(w.Body).Decode(&items); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if len(items) != len(tt.expectedIDs) {
				t.Fatalf("got %d items, want %d", len(items), len(tt.expectedIDs))
			}
			for i, id := range tt.expectedIDs {
				if items[i].ID != id {
					t.Errorf("items[%d].ID = %d, want %d", i, items[i].ID, id)
				}
			}
		})
	}
}

func TestGetItem(t *testing.T) {
	srv := newTestServer(t)

	testCases := []struct {
		id        string
		title     string
		priceCent int64
	}{
		{"1", "Informática Básica", 53000},
		{"3", "Técnico em Robôs Gigantes", 91000},
		{"6", "Agiota", 60000},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			w := srv.do(http.MethodGet, "/api/item/"+tc.id, "", nil)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}

			var item models.Item
			if err := json.NewDecoder(w.Body).Decode(&item); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if item.Title != tc.title {
				t.Errorf("expected title %q, got %q", tc.title, item.Title)
			}
			if item.Price.Cents != tc.priceCent {
				t.Errorf("expected price %d cents, got %d", tc.priceCent, item.Price.Cents)
			}
		})
	}
}

func TestGetItem_NotFound(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodGet, "/api/item/999", "", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}

	var response ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if response.Error != "Item not found" {
		t.Errorf("expected error message 'Item not found', got %s", response.Error)
	}
}

func TestGetItem_InvalidID(t *testing.T) {
	srv := newTestServer(t)

	for _, id := range []string{"invalid", "abc@123", "12.34"} {
		t.Run(id, func(t *testing.T) {
			w := srv.do(http.MethodGet, "/api/item/"+id, "", nil)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400 for ID %s, got %d", id, w.Code)
			}

			var response ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}

			if response.Error != "Invalid ID supplied" {
				t.Errorf("expected error message 'Invalid ID supplied', got %s", response.Error)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	// mount one session first
	srv.do(http.MethodGet, "/api/cart", newSession(), nil)

	w := srv.do(http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "healthy" || resp.Version != Version {
		t.Errorf("unexpected health response: %+v", resp)
	}
	if resp.Sessions != 1 {
		t.Errorf("expected 1 session, got %d", resp.Sessions)
	}
}
