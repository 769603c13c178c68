package whatsapp

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// QuickLink is a pre-filled greeting shown next to the catalog.
type QuickLink struct {
	Name string `json:"name"`
	Text string `json:"text"`
	Link string `json:"link"`
}

// Service hands order messages to WhatsApp by building wa.me links. The
// link is opened by the visitor's browser; nothing is sent from here.
type Service struct {
	links LinkBuilder
	quick []QuickLink
}

// New creates the service. greetings maps a quick-link name to its text
// and is kept in the given order.
func New(links LinkBuilder, greetings ...QuickLink) *Service {
	quick := make([]QuickLink, 0, len(greetings))
	for _, g := range greetings {
		if g.Text == "" {
			continue
		}
		g.Link = links.Link(g.Text)
		quick = append(quick, g)
	}
	return &Service{links: links, quick: quick}
}

// Dispatch returns the link that opens a chat with text pre-filled.
func (s *Service) Dispatch(ctx context.Context, text string) (string, error) {
	if s == nil {
		return "", errors.New("whatsapp service not initialized")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.links.Recipient == "" {
		return "", errors.New("whatsapp: no recipient number configured")
	}
	link := s.links.Link(text)
	zap.L().Info("whatsapp: order link built",
		zap.String("namespace", "whatsapp"),
		zap.String("recipient", s.links.Recipient),
		zap.Int("text_len", len(text)),
	)
	return link, nil
}

// QuickLinks returns the configured greeting links.
func (s *Service) QuickLinks() []QuickLink {
	out := make([]QuickLink, len(s.quick))
	copy(out, s.quick)
	return out
}
