package models

// Item represents a course available in the catalog
type Item struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Price Money  `json:"price"`
}

// CartLine associates an item with the quantity held in the cart.
// Quantity is always at least 1 for a line present in a cart.
type CartLine struct {
	Item     Item `json:"item"`
	Quantity int  `json:"quantity"`
}

// LineTotal returns quantity x unit price
func (l CartLine) LineTotal() Money {
	return l.Item.Price.Mul(l.Quantity)
}
