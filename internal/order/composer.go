package order

import (
	"context"

	"github.com/talkincode/sheetshop/internal/domain"
)

// State of a Composer.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Draft is the order being composed for one product.
type Draft struct {
	Product      domain.Product `json:"product"`
	Quantity     int            `json:"quantity"`
	BuyerName    string         `json:"buyer_name"`
	BuyerAddress string         `json:"buyer_address"`
}

// Dispatcher hands a finished order message to the messaging channel and
// returns the link (or reference) it was sent through.
type Dispatcher interface {
	Dispatch(ctx context.Context, text string) (string, error)
}

// Submission is the result of a successful Submit.
type Submission struct {
	Draft   Draft  `json:"draft"`
	Total   string `json:"total"`
	Message string `json:"message"`
	Link    string `json:"link"`
}

// Composer holds at most one Draft. Every operation that needs a Draft is a
// no-op while the composer is closed. A Composer is not safe for concurrent
// use; callers serialize access.
type Composer struct {
	state      State
	draft      Draft
	currency   string
	dispatcher Dispatcher
}

func NewComposer(dispatcher Dispatcher, currency string) *Composer {
	return &Composer{dispatcher: dispatcher, currency: currency}
}

func (c *Composer) State() State {
	return c.state
}

func (c *Composer) IsOpen() bool {
	return c.state == Open
}

// Draft returns the active draft, if any.
func (c *Composer) Draft() (Draft, bool) {
	if c.state != Open {
		return Draft{}, false
	}
	return c.draft, true
}

// Open starts a fresh draft for p, discarding any unsent one.
func (c *Composer) Open(p domain.Product) {
	c.draft = Draft{Product: p, Quantity: 1}
	c.state = Open
}

// Close discards the draft.
func (c *Composer) Close() {
	c.draft = Draft{}
	c.state = Closed
}

func (c *Composer) Increment() {
	if c.state != Open {
		return
	}
	c.draft.Quantity++
}

// Decrement lowers the quantity by one, never below one.
func (c *Composer) Decrement() {
	if c.state != Open || c.draft.Quantity <= 1 {
		return
	}
	c.draft.Quantity--
}

func (c *Composer) SetBuyer(name, address string) {
	if c.state != Open {
		return
	}
	c.draft.BuyerName = name
	c.draft.BuyerAddress = address
}

// Submit formats the draft as an order message and dispatches it. The
// composer stays open, so the same draft can be sent again. ok is false
// when there is no draft.
func (c *Composer) Submit(ctx context.Context) (sub Submission, ok bool, err error) {
	if c.state != Open {
		return Submission{}, false, nil
	}
	total := Total(c.draft.Product.Price, c.draft.Quantity)
	sub = Submission{
		Draft:   c.draft,
		Total:   total.String(),
		Message: FormatMessage(c.draft, c.currency),
	}
	if c.dispatcher == nil {
		return sub, true, nil
	}
	link, err := c.dispatcher.Dispatch(ctx, sub.Message)
	if err != nil {
		return sub, true, err
	}
	sub.Link = link
	return sub, true, nil
}
