package session

import (
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
	"github.com/talkincode/sheetshop/internal/catalog"
	"github.com/talkincode/sheetshop/internal/order"
	"go.uber.org/zap"
)

// Publisher receives every successful order submission.
type Publisher interface {
	PublishOrder(evt SubmittedEvent)
}

// SubmittedEvent is published after an order message was dispatched.
type SubmittedEvent struct {
	VisitorID  string
	Submission order.Submission
	At         time.Time
}

type Options struct {
	Catalog        *catalog.Catalog
	Renderer       catalog.Renderer
	Dispatcher     order.Dispatcher
	Currency       string
	SearchThrottle time.Duration
	Publisher      Publisher // optional
	NodeID         int64     // snowflake node, 0..1023
}

// Manager tracks visitors by id.
type Manager struct {
	opts     Options
	node     *snowflake.Node
	mu       sync.RWMutex
	visitors map[string]*Visitor
}

func NewManager(opts Options) (*Manager, error) {
	if opts.Catalog == nil {
		return nil, errors.New("session: catalog is required")
	}
	node, err := snowflake.NewNode(opts.NodeID)
	if err != nil {
		return nil, errors.Wrap(err, "session: create id node")
	}
	return &Manager{
		opts:     opts,
		node:     node,
		visitors: make(map[string]*Visitor),
	}, nil
}

func (m *Manager) Catalog() *catalog.Catalog {
	return m.opts.Catalog
}

// New registers a visitor with a fresh id.
func (m *Manager) New() *Visitor {
	v := newVisitor(m, m.node.Generate().String())
	m.mu.Lock()
	m.visitors[v.id] = v
	m.mu.Unlock()
	return v
}

// Get returns a known visitor.
func (m *Manager) Get(id string) (*Visitor, bool) {
	if id == "" {
		return nil, false
	}
	m.mu.RLock()
	v, ok := m.visitors[id]
	m.mu.RUnlock()
	return v, ok
}

// GetOrNew returns the visitor for id, or a new one when id is unknown
// (expired cookie, restarted server).
func (m *Manager) GetOrNew(id string) *Visitor {
	if v, ok := m.Get(id); ok {
		return v
	}
	return m.New()
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.visitors)
}

// Sweep forgets visitors idle for longer than maxIdle and reports how many
// were removed.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, v := range m.visitors {
		if v.LastSeen().Before(cutoff) {
			delete(m.visitors, id)
			removed++
		}
	}
	if removed > 0 {
		zap.L().Debug("session: swept idle visitors",
			zap.String("namespace", "session"),
			zap.Int("removed", removed),
			zap.Int("remaining", len(m.visitors)),
		)
	}
	return removed
}
