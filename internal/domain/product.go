package domain

// Product is one catalog row as read from the product sheet.
// A Product is never modified after the feed is ingested.
type Product struct {
	ID          string  `json:"id" csv:"id"`
	Name        string  `json:"name" csv:"name"`
	Price       float64 `json:"price" csv:"price"` // price in main currency units
	Category    string  `json:"category" csv:"category"`
	Description string  `json:"description" csv:"description"`
	Image       string  `json:"image" csv:"image"` // URL to product image (optional)
}

// Uncategorized reports whether the product has no category label.
func (p Product) Uncategorized() bool {
	return p.Category == ""
}
