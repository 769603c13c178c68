package order

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	NamePlaceholder    = "<Your name>"
	AddressPlaceholder = "<Delivery address>"
)

// Total is unit price times quantity, without float rounding noise.
func Total(price float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

// FormatMessage renders the text sent to the shop for d.
func FormatMessage(d Draft, currency string) string {
	var b strings.Builder
	b.WriteString("Hello! I'd like to order:\n\n")
	b.WriteString("Product: " + d.Product.Name + "\n")
	b.WriteString("Qty: " + strconv.Itoa(d.Quantity) + "\n")
	b.WriteString("Price (each): " + currency + decimal.NewFromFloat(d.Product.Price).String() + "\n")
	b.WriteString("Total: " + currency + Total(d.Product.Price, d.Quantity).String() + "\n\n")
	b.WriteString("Name: " + orPlaceholder(d.BuyerName, NamePlaceholder) + "\n")
	b.WriteString("Address: " + orPlaceholder(d.BuyerAddress, AddressPlaceholder) + "\n\n")
	b.WriteString("Please confirm availability and delivery time.")
	return b.String()
}
