package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := Renderer{Currency: "₹", PlaceholderImage: "placeholder.jpg"}
	products := sampleProducts()
	products[0].Image = "frame.jpg"

	view := r.Render(products, Query{Category: "Gifts"})
	require.Equal(t, 2, view.Count)
	assert.Equal(t, "2 items", view.CountText)
	assert.False(t, view.Empty)
	assert.Equal(t, "frame.jpg", view.Items[0].DisplayImage)
	assert.Equal(t, "placeholder.jpg", view.Items[1].DisplayImage)
	assert.Equal(t, "₹499", view.Items[0].PriceText)
	assert.Equal(t, []string{"All", "Gifts", "Toys"}, view.Categories)

	empty := r.Render(nil, Query{})
	assert.True(t, empty.Empty)
	assert.Equal(t, "0 items", empty.CountText)
	assert.Equal(t, AllCategories, empty.Query.Category)
	assert.NotNil(t, empty.Items)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "₹12.5", FormatPrice("₹", 12.5))
	assert.Equal(t, "$0", FormatPrice("$", 0))
}

func TestStats(t *testing.T) {
	s := Stats(sampleProducts())
	assert.Equal(t, 5, s.Count)
	assert.Equal(t, 199.0, s.MinPrice)
	assert.Equal(t, 1000.0, s.MaxPrice)
	assert.Equal(t, 459.6, s.MeanPrice)
	assert.Equal(t, 350.0, s.Median)
	assert.Equal(t, []CategoryCount{
		{Category: "Gifts", Count: 2},
		{Category: "Toys", Count: 2},
		{Category: "", Count: 1},
	}, s.Categories)

	assert.Equal(t, Summary{Categories: []CategoryCount{}}, Stats(nil))
}

func TestThrottle(t *testing.T) {
	th := NewThrottle(50 * time.Millisecond)
	calls := 0
	inc := func() { calls++ }

	assert.True(t, th.Do(inc))
	assert.False(t, th.Do(inc))
	assert.False(t, th.Do(inc))
	assert.Equal(t, 1, calls)

	time.Sleep(70 * time.Millisecond)
	assert.True(t, th.Do(inc))
	assert.Equal(t, 2, calls)
}
