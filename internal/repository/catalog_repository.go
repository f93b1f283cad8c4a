package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Lixing-Zhang/course-catalog/internal/models"
)

var (
	ErrItemNotFound  = errors.New("item not found")
	ErrInvalidItem   = errors.New("invalid item")
	ErrDuplicateItem = errors.New("duplicate item id")
)

// CatalogRepository defines the interface for catalog data access
type CatalogRepository interface {
	GetAll(ctx context.Context) ([]models.Item, error)
	GetByID(ctx context.Context, id int64) (*models.Item, error)
}

// InMemoryCatalogRepository implements CatalogRepository over a fixed item list.
// The list is read-only after construction.
type InMemoryCatalogRepository struct {
	items []models.Item
	byID  map[int64]int
}

// DefaultCourses returns the built-in catalog
func DefaultCourses() []models.Item {
	return []models.Item{
		{ID: 1, Title: "Informática Básica", Price: models.Money{Cents: 53000}},
		{ID: 2, Title: "Mecânico de Motocicletas", Price: models.Money{Cents: 53000}},
		{ID: 3, Title: "Técnico em Robôs Gigantes", Price: models.Money{Cents: 91000}},
		{ID: 4, Title: "Mecânico de Armas a Laser", Price: models.Money{Cents: 52000}},
		{ID: 5, Title: "Treinador de Ursos Gigantes", Price: models.Money{Cents: 90000}},
		{ID: 6, Title: "Agiota", Price: models.Money{Cents: 60000}},
	}
}

// NewInMemoryCatalogRepository creates a repository seeded with the built-in courses
func NewInMemoryCatalogRepository() *InMemoryCatalogRepository {
	repo, err := NewInMemoryCatalogRepositoryFromItems(DefaultCourses())
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return repo
}

// NewInMemoryCatalogRepositoryFromItems creates a repository over items, keeping their order.
// Ids must be unique, titles non-empty and prices non-negative.
func NewInMemoryCatalogRepositoryFromItems(items []models.Item) (*InMemoryCatalogRepository, error) {
	byID := make(map[int64]int, len(items))

	for i, it := range items {
		if strings.TrimSpace(it.Title) == "" {
			return nil, fmt.Errorf("%w: item %d has an empty title", ErrInvalidItem, it.ID)
		}
		if it.Price.Cents < 0 {
			return nil, fmt.Errorf("%w: item %d has a negative price", ErrInvalidItem, it.ID)
		}
		if _, exists := byID[it.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateItem, it.ID)
		}
		byID[it.ID] = i
	}

	return &InMemoryCatalogRepository{
		items: slices.Clone(items),
		byID:  byID,
	}, nil
}

// GetAll returns all items in catalog order
func (r *InMemoryCatalogRepository) GetAll(ctx context.Context) ([]models.Item, error) {
	return slices.Clone(r.items), nil
}

// GetByID returns an item by its ID
func (r *InMemoryCatalogRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	idx, exists := r.byID[id]
	if !exists {
		return nil, ErrItemNotFound
	}
	item := r.items[idx]
	return &item, nil
}
