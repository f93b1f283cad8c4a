package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSortOption = errors.New("invalid sort option")
)

// SortOption selects the ordering of the display list
type SortOption string

const (
	SortByTitle SortOption = "title"
	SortByPrice SortOption = "price"
)

// DefaultSortOption is used by a freshly mounted view
const DefaultSortOption = SortByTitle

// SortOptions lists the options in the order a select control shows them
var SortOptions = []SortOption{SortByTitle, SortByPrice}

// Valid reports whether o is one of the known options
func (o SortOption) Valid() bool {
	return o == SortByTitle || o == SortByPrice
}

// Label is the human readable name shown next to the option
func (o SortOption) Label() string {
	switch o {
	case SortByTitle:
		return "Ordenar por Título"
	case SortByPrice:
		return "Ordenar por Preço"
	default:
		return string(o)
	}
}

// ParseSortOption parses "title" or "price" (case-insensitive, surrounding spaces ignored)
func ParseSortOption(s string) (SortOption, error) {
	o := SortOption(strings.ToLower(strings.TrimSpace(s)))
	if !o.Valid() {
		return "", fmt.Errorf("%w: %q (must be title or price)", ErrInvalidSortOption, s)
	}
	return o, nil
}
