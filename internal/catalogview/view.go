// Package catalogview holds the state of the course catalog view: the static
// item list, the shopping cart, the search term and the sort preference.
//
// View is an immutable value. Every operation returns a new View and never
// writes to memory reachable from an earlier View, so a snapshot handed to a
// renderer stays valid while later events are processed.
package catalogview

import (
	"slices"

	"github.com/Lixing-Zhang/course-catalog/internal/models"
)

// View is the state owned by one mounted catalog view
type View struct {
	items      []models.Item
	lines      []models.CartLine
	searchTerm string
	sort       models.SortOption
}

// New creates a view over items with an empty cart, no search term and the default sort.
// The items slice is copied; callers may reuse it.
func New(items []models.Item) View {
	return View{
		items: slices.Clone(items),
		sort:  models.DefaultSortOption,
	}
}

// Items returns the catalog in catalog order
func (v View) Items() []models.Item {
	return slices.Clone(v.items)
}

// SearchTerm returns the active search filter
func (v View) SearchTerm() string {
	return v.searchTerm
}

// SortOption returns the active ordering of the display list
func (v View) SortOption() models.SortOption {
	return v.sort
}

// AddItem puts one unit of the item in the cart. An id that is not in the
// catalog leaves the view unchanged.
func (v View) AddItem(id int64) View {
	idx := slices.IndexFunc(v.items, func(it models.Item) bool { return it.ID == id })
	if idx < 0 {
		return v
	}

	lines := make([]models.CartLine, len(v.lines), len(v.lines)+1)
	copy(lines, v.lines)

	if i := v.lineIndex(id); i >= 0 {
		lines[i].Quantity++
	} else {
		lines = append(lines, models.CartLine{Item: v.items[idx], Quantity: 1})
	}

	v.lines = lines
	return v
}

// RemoveItem takes one unit of the item out of the cart, dropping the line
// when its last unit is removed. Items not in the cart are ignored.
func (v View) RemoveItem(id int64) View {
	i := v.lineIndex(id)
	if i < 0 {
		return v
	}

	lines := slices.Clone(v.lines)
	if lines[i].Quantity > 1 {
		lines[i].Quantity--
	} else {
		lines = slices.Delete(lines, i, i+1)
	}

	v.lines = lines
	return v
}

// SetSearchTerm stores the case-insensitive title filter
func (v View) SetSearchTerm(term string) View {
	v.searchTerm = term
	return v
}

// SetSortOption changes the display ordering. Unknown options are ignored.
func (v View) SetSortOption(option models.SortOption) View {
	if !option.Valid() {
		return v
	}
	v.sort = option
	return v
}

// DisplayList returns the catalog filtered by the search term and ordered by
// the sort option. It is recomputed on every call.
func (v View) DisplayList() []models.Item {
	return Sort(Filter(v.items, v.searchTerm), v.sort)
}

// Cart returns a copy of the cart lines in insertion order
func (v View) Cart() []models.CartLine {
	return slices.Clone(v.lines)
}

// Quantity returns how many units of the item are in the cart
func (v View) Quantity(id int64) int {
	if i := v.lineIndex(id); i >= 0 {
		return v.lines[i].Quantity
	}
	return 0
}

func (v View) lineIndex(id int64) int {
	return slices.IndexFunc(v.lines, func(l models.CartLine) bool { return l.Item.ID == id })
}
