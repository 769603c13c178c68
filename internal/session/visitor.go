package session

import (
	"context"
	"sync"
	"time"

	"github.com/talkincode/sheetshop/internal/catalog"
	"github.com/talkincode/sheetshop/internal/order"
)

// Visitor is one browsing session: the filter inputs and the order
// composer. Each method runs to completion under the visitor lock.
type Visitor struct {
	m  *Manager
	id string

	mu       sync.Mutex
	typed    string        // latest search text received
	query    catalog.Query // query the current view was derived from
	throttle *catalog.Throttle
	composer *order.Composer
	lastSeen time.Time

	view     catalog.View
	viewFrom uint64 // catalog version the cached view was derived from
	hasView  bool
}

func newVisitor(m *Manager, id string) *Visitor {
	return &Visitor{
		m:        m,
		id:       id,
		query:    catalog.Query{Category: catalog.AllCategories},
		throttle: catalog.NewThrottle(m.opts.SearchThrottle),
		composer: order.NewComposer(m.opts.Dispatcher, m.opts.Currency),
		lastSeen: time.Now(),
	}
}

func (v *Visitor) ID() string {
	return v.id
}

func (v *Visitor) LastSeen() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen
}

func (v *Visitor) touch() {
	v.lastSeen = time.Now()
}

// refresh re-derives the view from the catalog.
func (v *Visitor) refresh() catalog.View {
	c := v.m.opts.Catalog
	v.viewFrom = c.Version()
	v.view = v.m.opts.Renderer.Render(c.Products(), v.query)
	v.hasView = true
	return v.view
}

// current returns the cached view unless the catalog was reloaded since.
// Search text held back by the throttle is applied once the window allows.
func (v *Visitor) current() catalog.View {
	if v.typed != v.query.Search && v.throttle.Do(func() { v.query.Search = v.typed }) {
		return v.refresh()
	}
	if !v.hasView || v.viewFrom != v.m.opts.Catalog.Version() {
		return v.refresh()
	}
	return v.view
}

// Query returns the query the current view is derived from.
func (v *Visitor) Query() catalog.Query {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query
}

// View returns the catalog as filtered by the current query.
func (v *Visitor) View() catalog.View {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.touch()
	return v.current()
}

// SetSearch records new search text. The view is re-filtered only if the
// search throttle allows it; otherwise the previous view is returned and
// the text is applied by the next call after the window.
func (v *Visitor) SetSearch(text string) catalog.View {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.touch()
	v.typed = text
	return v.current()
}

// SetCategory applies a category immediately, together with the latest
// search text.
func (v *Visitor) SetCategory(category string) catalog.View {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.touch()
	v.query.Category = category
	v.query.Search = v.typed
	return v.refresh()
}

// Select opens the composer for the product with id. Unknown ids leave the
// composer untouched and return false.
func (v *Visitor) Select(id string) (order.Draft, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.touch()
	p, ok := v.m.opts.Catalog.Find(id)
	if !ok {
		return order.Draft{}, false
	}
	v.composer.Open(p)
	return v.composer.Draft()
}

// Draft returns the open draft, if any.
func (v *Visitor) Draft() (order.Draft, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.touch()
	return v.composer.Draft()
}

func (v *Visitor) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.touch()
	v.composer.Close()
}

func (v *Visitor) Increment() (order.Draft, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.touch()
	v.composer.Increment()
	return v.composer.Draft()
}

func (v *Visitor) Decrement() (order.Draft, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.touch()
	v.composer.Decrement()
	return v.composer.Draft()
}

func (v *Visitor) SetBuyer(name, address string) (order.Draft, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.touch()
	v.composer.SetBuyer(name, address)
	return v.composer.Draft()
}

// Submit dispatches the open draft and publishes the submission.
func (v *Visitor) Submit(ctx context.Context) (order.Submission, bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.touch()
	sub, ok, err := v.composer.Submit(ctx)
	if !ok || err != nil {
		return sub, ok, err
	}
	if pub := v.m.opts.Publisher; pub != nil {
		pub.PublishOrder(SubmittedEvent{VisitorID: v.id, Submission: sub, At: time.Now()})
	}
	return sub, true, nil
}
