package catalog

import (
	"fmt"
	"strconv"

	"github.com/talkincode/sheetshop/internal/domain"
)

// Item is a product prepared for display.
type Item struct {
	domain.Product
	DisplayImage string `json:"display_image"`
	PriceText    string `json:"price_text"`
}

// View is everything the presentation needs to draw the product grid.
type View struct {
	Query      Query    `json:"query"`
	Items      []Item   `json:"items"`
	Count      int      `json:"count"`
	CountText  string   `json:"count_text"`
	Categories []string `json:"categories"`
	Empty      bool     `json:"empty"`
}

// Renderer holds the presentation settings that are deployment specific.
type Renderer struct {
	Currency         string
	PlaceholderImage string
}

// FormatPrice prints an amount the way the shop shows it, e.g. "₹250".
func FormatPrice(currency string, amount float64) string {
	return currency + strconv.FormatFloat(amount, 'f', -1, 64)
}

// Render filters products with q and builds the view. Categories always
// come from the full list so the selector does not shrink while filtering.
func (r Renderer) Render(products []domain.Product, q Query) View {
	q = q.Normalize()
	visible := Filter(products, q)
	items := make([]Item, 0, len(visible))
	for _, p := range visible {
		img := p.Image
		if img == "" {
			img = r.PlaceholderImage
		}
		items = append(items, Item{
			Product:      p,
			DisplayImage: img,
			PriceText:    FormatPrice(r.Currency, p.Price),
		})
	}
	return View{
		Query:      q,
		Items:      items,
		Count:      len(items),
		CountText:  fmt.Sprintf("%d items", len(items)),
		Categories: Categories(products),
		Empty:      len(items) == 0,
	}
}
