package repository

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Lixing-Zhang/course-catalog/internal/models"
)

// catalogFile is the on-disk layout of a catalog:
//
//	items:
//	  - id: 1
//	    title: Informática Básica
//	    price: 530.00
type catalogFile struct {
	Items []catalogFileItem `yaml:"items"`
}

type catalogFileItem struct {
	ID    *int64   `yaml:"id"`
	Title string   `yaml:"title"`
	Price *float64 `yaml:"price"`
}

// LoadCatalogFile reads a YAML catalog and returns its items in file order
func LoadCatalogFile(path string) ([]models.Item, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	items, err := ParseCatalog(b)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return items, nil
}

// ParseCatalog decodes YAML catalog bytes
func ParseCatalog(data []byte) ([]models.Item, error) {
	var dto catalogFile
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, err
	}

	if len(dto.Items) == 0 {
		return nil, fmt.Errorf("%w: catalog has no items", ErrInvalidItem)
	}

	items := make([]models.Item, 0, len(dto.Items))
	for i, it := range dto.Items {
		if it.ID == nil {
			return nil, fmt.Errorf("%w: entry %d has no id", ErrInvalidItem, i+1)
		}
		if it.Price == nil {
			return nil, fmt.Errorf("%w: item %d has no price", ErrInvalidItem, *it.ID)
		}
		if err := checkPrice(*it.ID, *it.Price); err != nil {
			return nil, err
		}

		items = append(items, models.Item{
			ID:    *it.ID,
			Title: it.Title,
			Price: models.FromDecimal(*it.Price),
		})
	}

	return items, nil
}

// checkPrice rejects prices that cannot be held as int64 cents
func checkPrice(id int64, price float64) error {
	switch {
	case math.IsNaN(price) || math.IsInf(price, 0):
		return fmt.Errorf("%w: item %d has a non-finite price", ErrInvalidItem, id)
	case price < 0:
		return fmt.Errorf("%w: item %d has a negative price", ErrInvalidItem, id)
	case math.Round(price*100) >= math.MaxInt64:
		return fmt.Errorf("%w: item %d price %g is out of range", ErrInvalidItem, id, price)
	}
	return nil
}

// NewCatalogRepositoryFromFile loads path and builds a repository over its items
func NewCatalogRepositoryFromFile(path string) (*InMemoryCatalogRepository, error) {
	items, err := LoadCatalogFile(path)
	if err != nil {
		return nil, err
	}

	repo, err := NewInMemoryCatalogRepositoryFromItems(items)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return repo, nil
}
