package domain

// Item is a stock-bearing product within one event. AvailableStockKg is
// the only shared mutable quantity in the system: it must never go
// negative after a committed operation, and it is only mutated through
// the item repository's stock operations.
type Item struct {
	ID               string  `json:"id"`
	EventID          string  `json:"event_id"`
	Name             string  `json:"name"`
	AvailableStockKg float64 `json:"available_stock_kg"`
	CreatedOn        string  `json:"created_on"`
}

// HasStock reports whether the item can cover the requested quantity.
// Advisory only: the authoritative check happens as a conditional
// update at decrement time.
func (i *Item) HasStock(quantityKg float64) bool {
	return i.AvailableStockKg >= quantityKg
}
