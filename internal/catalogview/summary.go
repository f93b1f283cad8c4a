package catalogview

import "github.com/Lixing-Zhang/course-catalog/internal/models"

// CartLineView is one rendered cart row
type CartLineView struct {
	ItemID    int64        `json:"itemId"`
	Title     string       `json:"title"`
	UnitPrice models.Money `json:"unitPrice"`
	Quantity  int          `json:"quantity"`
	LineTotal models.Money `json:"lineTotal"`
}

// CartSummary is the read-only data a cart renderer needs
type CartSummary struct {
	Lines         []CartLineView `json:"lines"`
	TotalQuantity int            `json:"totalQuantity"`
	Total         models.Money   `json:"total"`
}

// Empty reports whether the cart has no lines
func (s CartSummary) Empty() bool {
	return len(s.Lines) == 0
}

// CartSummary computes per-line totals and the grand total
func (v View) CartSummary() CartSummary {
	summary := CartSummary{
		Lines: make([]CartLineView, 0, len(v.lines)),
	}

	for _, l := range v.lines {
		lineTotal := l.LineTotal()
		summary.Lines = append(summary.Lines, CartLineView{
			ItemID:    l.Item.ID,
			Title:     l.Item.Title,
			UnitPrice: l.Item.Price,
			Quantity:  l.Quantity,
			LineTotal: lineTotal,
		})
		summary.TotalQuantity += l.Quantity
		summary.Total = summary.Total.Add(lineTotal)
	}

	return summary
}
