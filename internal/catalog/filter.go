package catalog

import (
	"strings"

	"github.com/talkincode/sheetshop/internal/domain"
	"golang.org/x/text/cases"
)

// Query is the visitor's current filter input.
type Query struct {
	Search   string `json:"q"`
	Category string `json:"category"`
}

// Normalize trims the search text and maps an empty category to All.
func (q Query) Normalize() Query {
	q.Search = strings.TrimSpace(q.Search)
	if q.Category == "" {
		q.Category = AllCategories
	}
	return q
}

func fold(s string) string {
	return cases.Fold().String(s)
}

type matcher struct {
	needle   string
	category string
}

func newMatcher(q Query) matcher {
	q = q.Normalize()
	return matcher{needle: fold(q.Search), category: q.Category}
}

func (m matcher) match(p domain.Product) bool {
	if m.category != AllCategories && m.category != p.Category {
		return false
	}
	if m.needle == "" {
		return true
	}
	return strings.Contains(fold(p.Name+" "+p.Description+" "+p.Category), m.needle)
}

// Matches reports whether p passes the query. Category comparison is exact;
// the search text is a case-insensitive substring of name, description and
// category joined by spaces.
func Matches(p domain.Product, q Query) bool {
	return newMatcher(q).match(p)
}

// Filter returns the products that match q, in their original order.
func Filter(products []domain.Product, q Query) []domain.Product {
	m := newMatcher(q)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if m.match(p) {
			out = append(out, p)
		}
	}
	return out
}
