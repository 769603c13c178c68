package whatsapp

import (
	"net/url"
	"strings"
)

const DefaultBase = "https://wa.me"

// LinkBuilder builds click-to-chat links for a fixed recipient.
type LinkBuilder struct {
	Base      string // e.g. https://wa.me
	Recipient string // phone number in international format, digits only
}

func NewLinkBuilder(base, recipient string) LinkBuilder {
	if base == "" {
		base = DefaultBase
	}
	return LinkBuilder{
		Base:      strings.TrimRight(base, "/"),
		Recipient: NormalizeNumber(recipient),
	}
}

// Link returns <base>/<recipient>?text=<encoded text>.
func (b LinkBuilder) Link(text string) string {
	return b.Base + "/" + b.Recipient + "?text=" + EncodeComponent(text)
}

// componentUnescape undoes the QueryEscape escapes that encodeURIComponent
// leaves alone, and turns '+' back into %20.
var componentUnescape = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes s the way encodeURIComponent does: only
// A-Z a-z 0-9 - _ . ! ~ * ' ( ) are left as is.
func EncodeComponent(s string) string {
	return componentUnescape.Replace(url.QueryEscape(s))
}

// NormalizeNumber strips everything but digits, so "+91 73817-49483"
// becomes "917381749483".
func NormalizeNumber(n string) string {
	var b strings.Builder
	for _, r := range n {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
