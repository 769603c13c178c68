package catalog

import (
	"sync"
	"time"

	"github.com/talkincode/sheetshop/internal/domain"
)

// AllCategories is the category filter value that matches every product.
const AllCategories = "All"

// Catalog owns the product list of the current load. Readers always see a
// complete list; Replace swaps the whole list at once.
type Catalog struct {
	mu       sync.RWMutex
	products []domain.Product
	index    map[string]int
	loadedAt time.Time
	version  uint64
}

func New(products []domain.Product) *Catalog {
	c := &Catalog{}
	c.Replace(products)
	return c
}

// Replace installs a new product list. The slice is copied.
func (c *Catalog) Replace(products []domain.Product) {
	list := make([]domain.Product, len(products))
	copy(list, products)
	index := make(map[string]int, len(list))
	for i, p := range list {
		// first row wins when ids repeat
		if _, exists := index[p.ID]; !exists {
			index[p.ID] = i
		}
	}

	c.mu.Lock()
	c.products = list
	c.index = index
	c.loadedAt = time.Now()
	c.version++
	c.mu.Unlock()
}

// Products returns the current list. Callers must not modify it.
func (c *Catalog) Products() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.products
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

func (c *Catalog) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}

// Version increases with every Replace.
func (c *Catalog) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Find resolves a product by id.
func (c *Catalog) Find(id string) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Categories returns the filter options of the current list.
func (c *Catalog) Categories() []string {
	return Categories(c.Products())
}

// Categories returns "All" followed by the distinct non-empty categories
// in the order they first appear. A category literally named "All" is
// left out since the option already means every product.
func Categories(products []domain.Product) []string {
	seen := make(map[string]struct{})
	out := []string{AllCategories}
	for _, p := range products {
		if p.Uncategorized() || p.Category == AllCategories {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
