package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/sheetshop/internal/domain"
)

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Photo Frame", Price: 499, Category: "Gifts", Description: "Wooden frame"},
		{ID: "2", Name: "Teddy", Price: 350, Category: "Toys", Description: "Soft toy bear"},
		{ID: "3", Name: "Mug", Price: 250, Category: "Gifts", Description: "Ceramic MUG"},
		{ID: "4", Name: "Gift Card", Price: 1000, Category: "", Description: "Any amount"},
		{ID: "5", Name: "Puzzle", Price: 199, Category: "Toys", Description: "500 pieces"},
	}
}

func TestCategoriesFirstSeenOrder(t *testing.T) {
	products := sampleProducts()
	cats := Categories(products)
	assert.Equal(t, []string{"All", "Gifts", "Toys"}, cats)
	// deriving again gives the same list
	assert.Equal(t, cats, Categories(products))
	assert.Equal(t, []string{"All"}, Categories(nil))
}

func TestCategoriesSkipsAllLabel(t *testing.T) {
	products := []domain.Product{
		{ID: "1", Name: "Mug", Category: "All"},
		{ID: "2", Name: "Mat", Category: "Home"},
		{ID: "3", Name: "Pen"},
	}
	assert.Equal(t, []string{"All", "Home"}, Categories(products))
	assert.True(t, products[2].Uncategorized())
	// the "All" option still lists the row
	assert.Len(t, Filter(products, Query{Category: AllCategories}), 3)
}

func TestCatalogFindAndReplace(t *testing.T) {
	c := New(sampleProducts())
	require.Equal(t, 5, c.Len())

	p, ok := c.Find("3")
	require.True(t, ok)
	assert.Equal(t, "Mug", p.Name)

	_, ok = c.Find("missing")
	assert.False(t, ok)

	c.Replace([]domain.Product{{ID: "9", Name: "Kite", Category: "Outdoor"}})
	assert.Equal(t, 1, c.Len())
	_, ok = c.Find("3")
	assert.False(t, ok)
	assert.Equal(t, []string{"All", "Outdoor"}, c.Categories())
	assert.False(t, c.LoadedAt().IsZero())
}

func TestCatalogDuplicateIDsResolveToFirstRow(t *testing.T) {
	c := New([]domain.Product{
		{ID: "", Name: "First"},
		{ID: "", Name: "Second"},
	})
	p, ok := c.Find("")
	require.True(t, ok)
	assert.Equal(t, "First", p.Name)
}

func TestCatalogReplaceCopiesInput(t *testing.T) {
	in := sampleProducts()
	c := New(in)
	in[0].Name = "changed"
	assert.Equal(t, "Photo Frame", c.Products()[0].Name)
}
