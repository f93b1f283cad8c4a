package catalogview

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Lixing-Zhang/course-catalog/internal/models"
)

// titleLanguage drives the collation used for title ordering
var titleLanguage = language.BrazilianPortuguese

// Filter returns the items whose title contains term, ignoring case.
// An empty term matches every item. Input order is preserved.
func Filter(items []models.Item, term string) []models.Item {
	fold := cases.Fold()
	needle := fold.String(term)

	out := make([]models.Item, 0, len(items))
	for _, it := range items {
		if strings.Contains(fold.String(it.Title), needle) {
			out = append(out, it)
		}
	}
	return out
}

// Sort returns a sorted copy of items. Ties keep their input order.
func Sort(items []models.Item, option models.SortOption) []models.Item {
	out := slices.Clone(items)

	switch option {
	case models.SortByPrice:
		slices.SortStableFunc(out, func(a, b models.Item) int {
			return cmp.Compare(a.Price.Cents, b.Price.Cents)
		})
	default:
		// collators keep internal buffers and are not safe to share
		col := collate.New(titleLanguage)
		slices.SortStableFunc(out, func(a, b models.Item) int {
			return col.CompareString(a.Title, b.Title)
		})
	}

	return out
}

// CompareTitles orders two titles the way the title sort does
func CompareTitles(a, b string) int {
	return collate.New(titleLanguage).CompareString(a, b)
}
