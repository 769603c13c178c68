package catalog

import (
	"github.com/montanaflynn/stats"
	"github.com/talkincode/sheetshop/internal/domain"
)

// CategoryCount is the number of products carrying a category label.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Summary describes the price spread of a product list.
type Summary struct {
	Count      int             `json:"count"`
	MinPrice   float64         `json:"min_price"`
	MaxPrice   float64         `json:"max_price"`
	MeanPrice  float64         `json:"mean_price"`
	Median     float64         `json:"median_price"`
	Categories []CategoryCount `json:"categories"`
}

// Stats summarizes products. An empty list yields a zero Summary.
func Stats(products []domain.Product) Summary {
	s := Summary{Count: len(products), Categories: []CategoryCount{}}
	if len(products) == 0 {
		return s
	}

	prices := make(stats.Float64Data, 0, len(products))
	counts := make(map[string]int)
	for _, p := range products {
		prices = append(prices, p.Price)
		counts[p.Category]++
	}

	s.MinPrice, _ = prices.Min()
	s.MaxPrice, _ = prices.Max()
	if mean, err := prices.Mean(); err == nil {
		s.MeanPrice, _ = stats.Round(mean, 2)
	}
	s.Median, _ = prices.Median()

	for _, cat := range Categories(products)[1:] {
		s.Categories = append(s.Categories, CategoryCount{Category: cat, Count: counts[cat]})
	}
	if n := counts[""]; n > 0 {
		s.Categories = append(s.Categories, CategoryCount{Category: "", Count: n})
	}
	return s
}
