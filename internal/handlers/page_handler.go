package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/course-catalog/internal/catalogview"
	"github.com/Lixing-Zhang/course-catalog/internal/middleware"
	"github.com/Lixing-Zhang/course-catalog/internal/models"
	"github.com/Lixing-Zhang/course-catalog/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

var catalogTemplate = template.Must(template.ParseFS(templateFS, "templates/catalog.html"))

// PageHeading is the title rendered at the top of the catalog page
const PageHeading = "Cursos SENAI 2070"

type pageData struct {
	Heading     string
	SearchTerm  string
	Sort        models.SortOption
	SortOptions []models.SortOption
	Items       []models.Item
	Cart        catalogview.CartSummary
}

// PageHandler renders the catalog as an HTML page.
// Form posts update the session view and redirect back to the page.
type PageHandler struct {
	sessions *service.SessionService
	log      *slog.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(sessions *service.SessionService, log *slog.Logger) *PageHandler {
	return &PageHandler{
		sessions: sessions,
		log:      log,
	}
}

// Index handles GET /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	v, err := h.sessions.View(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		h.fail(w, err)
		return
	}

	data := pageData{
		Heading:     PageHeading,
		SearchTerm:  v.SearchTerm(),
		Sort:        v.SortOption(),
		SortOptions: models.SortOptions,
		Items:       v.DisplayList(),
		Cart:        v.CartSummary(),
	}

	// render into a buffer so a template error never leaves a half-written page
	var buf bytes.Buffer
	if err := catalogTemplate.Execute(&buf, data); err != nil {
		h.log.Error("failed to render catalog page", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// Search handles POST /search
func (h *PageHandler) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	term := r.PostForm.Get("q")
	h.update(w, r, func(v catalogview.View) catalogview.View {
		return v.SetSearchTerm(term)
	})
}

// Sort handles POST /sort
func (h *PageHandler) Sort(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	option, err := models.ParseSortOption(r.PostForm.Get("sort"))
	if err != nil {
		h.log.Warn("invalid sort option", "sort", r.PostForm.Get("sort"))
		http.Error(w, "Invalid sort option", http.StatusBadRequest)
		return
	}

	h.update(w, r, func(v catalogview.View) catalogview.View {
		return v.SetSortOption(option)
	})
}

// AddItem handles POST /cart/{itemId}/add
func (h *PageHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemIDParam(r)
	if err != nil {
		http.Error(w, "Invalid ID supplied", http.StatusBadRequest)
		return
	}

	h.update(w, r, func(v catalogview.View) catalogview.View {
		return v.AddItem(id)
	})
}

// RemoveItem handles POST /cart/{itemId}/remove
func (h *PageHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemIDParam(r)
	if err != nil {
		http.Error(w, "Invalid ID supplied", http.StatusBadRequest)
		return
	}

	h.update(w, r, func(v catalogview.View) catalogview.View {
		return v.RemoveItem(id)
	})
}

func (h *PageHandler) update(w http.ResponseWriter, r *http.Request, fn func(catalogview.View) catalogview.View) {
	if _, err := h.sessions.Update(r.Context(), middleware.SessionID(r.Context()), fn); err != nil {
		h.fail(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PageHandler) fail(w http.ResponseWriter, err error) {
	h.log.Error("failed to load session view", "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
