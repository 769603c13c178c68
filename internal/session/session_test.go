package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/sheetshop/internal/catalog"
	"github.com/talkincode/sheetshop/internal/domain"
	"github.com/talkincode/sheetshop/internal/whatsapp"
)

type capturePublisher struct {
	events []SubmittedEvent
}

func (p *capturePublisher) PublishOrder(evt SubmittedEvent) {
	p.events = append(p.events, evt)
}

func newTestManager(t *testing.T, throttle time.Duration) (*Manager, *capturePublisher) {
	t.Helper()
	pub := &capturePublisher{}
	cat := catalog.New([]domain.Product{
		{ID: "a", Name: "A", Category: "Gifts", Price: 100},
		{ID: "b", Name: "B", Category: "Toys", Price: 50},
	})
	m, err := NewManager(Options{
		Catalog:        cat,
		Renderer:       catalog.Renderer{Currency: "₹", PlaceholderImage: "ph.jpg"},
		Dispatcher:     whatsapp.New(whatsapp.NewLinkBuilder("", "15550001111")),
		Currency:       "₹",
		SearchThrottle: throttle,
		Publisher:      pub,
		NodeID:         1,
	})
	require.NoError(t, err)
	return m, pub
}

func itemNames(v catalog.View) []string {
	out := []string{}
	for _, it := range v.Items {
		out = append(out, it.Name)
	}
	return out
}

func TestManagerLifecycle(t *testing.T) {
	m, _ := newTestManager(t, time.Millisecond)
	v := m.New()
	require.NotEmpty(t, v.ID())

	got, ok := m.Get(v.ID())
	require.True(t, ok)
	assert.Same(t, v, got)
	assert.Same(t, v, m.GetOrNew(v.ID()))

	other := m.GetOrNew("unknown")
	assert.NotEqual(t, v.ID(), other.ID())
	assert.Equal(t, 2, m.Len())

	_, ok = m.Get("")
	assert.False(t, ok)

	assert.Equal(t, 0, m.Sweep(time.Hour))
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 2, m.Sweep(time.Millisecond))
	assert.Equal(t, 0, m.Len())
}

func TestNewManagerRequiresCatalog(t *testing.T) {
	_, err := NewManager(Options{})
	assert.Error(t, err)
}

func TestVisitorFilterScenario(t *testing.T) {
	m, _ := newTestManager(t, time.Millisecond)
	v := m.New()

	assert.Equal(t, []string{"A", "B"}, itemNames(v.View()))
	assert.Equal(t, []string{"A"}, itemNames(v.SetSearch("a")))

	time.Sleep(5 * time.Millisecond)
	v.SetSearch("")
	view := v.SetCategory("Toys")
	assert.Equal(t, []string{"B"}, itemNames(view))
	assert.Equal(t, "1 items", view.CountText)
}

func TestVisitorSearchThrottle(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)
	v := m.New()

	assert.Equal(t, []string{"A"}, itemNames(v.SetSearch("a")))
	// within the throttle window the new text is not applied yet
	assert.Equal(t, []string{"A"}, itemNames(v.SetSearch("b")))
	// a category change applies immediately, with the latest text
	assert.Equal(t, []string{"B"}, itemNames(v.SetCategory(catalog.AllCategories)))
}

func TestVisitorAppliesLastSearchAfterWindow(t *testing.T) {
	m, _ := newTestManager(t, 20*time.Millisecond)
	v := m.New()

	assert.Equal(t, []string{"A"}, itemNames(v.SetSearch("a")))
	assert.Equal(t, []string{"A"}, itemNames(v.SetSearch("b")))

	time.Sleep(60 * time.Millisecond)
	view := v.View()
	assert.Equal(t, []string{"B"}, itemNames(view))
	assert.Equal(t, "b", view.Query.Search)
	assert.Equal(t, "b", v.Query().Search)
}

func TestVisitorViewFollowsReload(t *testing.T) {
	m, _ := newTestManager(t, time.Millisecond)
	v := m.New()
	require.Len(t, v.View().Items, 2)

	m.Catalog().Replace([]domain.Product{{ID: "c", Name: "C"}})
	assert.Equal(t, []string{"C"}, itemNames(v.View()))
}

func TestVisitorOrderFlow(t *testing.T) {
	m, pub := newTestManager(t, time.Millisecond)
	v := m.New()

	_, ok := v.Select("missing")
	assert.False(t, ok)
	_, ok = v.Draft()
	assert.False(t, ok)

	draft, ok := v.Select("a")
	require.True(t, ok)
	assert.Equal(t, 1, draft.Quantity)
	assert.Equal(t, "A", draft.Product.Name)

	v.Increment()
	v.Increment()
	draft, _ = v.Decrement()
	assert.Equal(t, 2, draft.Quantity)

	draft, _ = v.SetBuyer("Asha", "12 Lane")
	assert.Equal(t, "Asha", draft.BuyerName)

	// unknown id keeps the current draft
	_, ok = v.Select("missing")
	assert.False(t, ok)
	draft, ok = v.Draft()
	require.True(t, ok)
	assert.Equal(t, 2, draft.Quantity)

	sub, ok, err := v.Submit(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "200", sub.Total)
	assert.Contains(t, sub.Link, "https://wa.me/15550001111?text=")
	require.Len(t, pub.events, 1)
	assert.Equal(t, v.ID(), pub.events[0].VisitorID)

	v.Close()
	_, ok, err = v.Submit(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, pub.events, 1)
}
