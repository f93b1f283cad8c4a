package service

import (
	"context"

	"github.com/Lixing-Zhang/course-catalog/internal/catalogview"
	"github.com/Lixing-Zhang/course-catalog/internal/models"
	"github.com/Lixing-Zhang/course-catalog/internal/repository"
)

// CatalogService handles read access to the course catalog
type CatalogService struct {
	repo repository.CatalogRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo repository.CatalogRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// ListItems returns all items in catalog order
func (s *CatalogService) ListItems(ctx context.Context) ([]models.Item, error) {
	return s.repo.GetAll(ctx)
}

// SearchItems returns the items matching term, ordered by option
func (s *CatalogService) SearchItems(ctx context.Context, term string, option models.SortOption) ([]models.Item, error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return catalogview.Sort(catalogview.Filter(items, term), option), nil
}

// GetItem returns an item by ID
func (s *CatalogService) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	return s.repo.GetByID(ctx, id)
}

// NewView mounts a fresh catalog view over the current items
func (s *CatalogService) NewView(ctx context.Context) (catalogview.View, error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return catalogview.View{}, err
	}
	return catalogview.New(items), nil
}
