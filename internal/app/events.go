package app

import (
	"sync"

	EventBus "github.com/asaskevich/EventBus"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"github.com/talkincode/sheetshop/internal/session"
	"go.uber.org/zap"
)

const TopicOrderSubmitted = "order:submitted"

// OrderEvents fans submitted orders out to subscribers. Subscribers run on
// the worker pool, so a slow mail server never blocks a visitor.
type OrderEvents struct {
	bus  EventBus.Bus
	pool *ants.Pool
	wg   sync.WaitGroup
}

func NewOrderEvents(pool *ants.Pool) *OrderEvents {
	return &OrderEvents{bus: EventBus.New(), pool: pool}
}

// PublishOrder implements session.Publisher.
func (e *OrderEvents) PublishOrder(evt session.SubmittedEvent) {
	e.bus.Publish(TopicOrderSubmitted, evt)
}

// Subscribe registers fn under name; its errors are logged, not returned.
func (e *OrderEvents) Subscribe(name string, fn func(session.SubmittedEvent) error) error {
	err := e.bus.Subscribe(TopicOrderSubmitted, func(evt session.SubmittedEvent) {
		e.wg.Add(1)
		task := func() {
			defer e.wg.Done()
			if err := fn(evt); err != nil {
				zap.L().Error("order subscriber failed",
					zap.String("namespace", "events"),
					zap.String("subscriber", name),
					zap.String("visitor", evt.VisitorID),
					zap.Error(err),
				)
			}
		}
		if err := e.pool.Submit(task); err != nil {
			e.wg.Done()
			zap.L().Warn("order subscriber dropped",
				zap.String("namespace", "events"),
				zap.String("subscriber", name),
				zap.Error(err),
			)
		}
	})
	if err != nil {
		return errors.Wrapf(err, "subscribe %s", name)
	}
	return nil
}

// Wait blocks until all submitted subscriber tasks have finished.
func (e *OrderEvents) Wait() {
	e.wg.Wait()
}
