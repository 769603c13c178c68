package feed

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/talkincode/sheetshop/internal/domain"
)

var (
	// ErrNoJSON means the payload has no {...} object embedded in it.
	ErrNoJSON = errors.New("feed: payload contains no json object")
	// ErrNoTable means the decoded object has no table member.
	ErrNoTable = errors.New("feed: payload has no table")
	// ErrQuery means the sheet endpoint answered with status "error".
	ErrQuery = errors.New("feed: sheet query failed")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Column positions in a sheet row.
const (
	colID = iota
	colName
	colPrice
	colCategory
	colDescription
	colImage
)

type gvizResponse struct {
	Status string      `json:"status"`
	Errors []gvizError `json:"errors"`
	Table  *gvizTable  `json:"table"`
}

type gvizError struct {
	Reason          string `json:"reason"`
	Message         string `json:"message"`
	DetailedMessage string `json:"detailed_message"`
}

type gvizTable struct {
	Rows []gvizRow `json:"rows"`
}

type gvizRow struct {
	C []*gvizCell `json:"c"`
}

// gvizCell is one typed cell; V is string, float64, bool or nil.
type gvizCell struct {
	V interface{} `json:"v"`
	F string      `json:"f,omitempty"`
}

// URL returns the public GViz JSON endpoint for a published sheet tab.
func URL(sheetID, sheetName string) string {
	q := url.Values{}
	q.Set("tqx", "out:json")
	if sheetName != "" {
		q.Set("sheet", sheetName)
	}
	return "https://docs.google.com/spreadsheets/d/" + url.PathEscape(sheetID) + "/gviz/tq?" + q.Encode()
}

// extractObject returns the text from the first '{' to the last '}' inclusive.
func extractObject(payload string) (string, error) {
	start := strings.IndexByte(payload, '{')
	end := strings.LastIndexByte(payload, '}')
	if start < 0 || end < start {
		return "", ErrNoJSON
	}
	return payload[start : end+1], nil
}

// Parse turns a sheet payload into products. Wrapper text around the
// embedded object is ignored. Rows without a name are dropped; the
// remaining rows keep their sheet order.
func Parse(payload string) ([]domain.Product, error) {
	obj, err := extractObject(payload)
	if err != nil {
		return nil, err
	}

	var resp gvizResponse
	if err := json.UnmarshalFromString(obj, &resp); err != nil {
		return nil, errors.Wrap(err, "feed: decode payload")
	}
	if strings.EqualFold(resp.Status, "error") {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msg := e.DetailedMessage
			if msg == "" {
				msg = e.Message
			}
			msgs = append(msgs, msg)
		}
		return nil, errors.Wrap(ErrQuery, strings.Join(msgs, "; "))
	}
	if resp.Table == nil {
		return nil, ErrNoTable
	}

	products := make([]domain.Product, 0, len(resp.Table.Rows))
	for _, row := range resp.Table.Rows {
		p := domain.Product{
			ID:          cellText(row.C, colID),
			Name:        cellText(row.C, colName),
			Price:       cellPrice(row.C, colPrice),
			Category:    cellText(row.C, colCategory),
			Description: cellText(row.C, colDescription),
			Image:       cellText(row.C, colImage),
		}
		if p.Name == "" {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

func cellValue(cells []*gvizCell, idx int) interface{} {
	if idx >= len(cells) || cells[idx] == nil {
		return nil
	}
	return cells[idx].V
}

// cellText reads a text column. Falsy cell values (null, false, 0, NaN)
// count as empty, so a 0 in the name column drops the row.
func cellText(cells []*gvizCell, idx int) string {
	switch v := cellValue(cells, idx).(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == 0 || math.IsNaN(v) {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if !v {
			return ""
		}
		return "true"
	default:
		s, err := cast.ToStringE(v)
		if err != nil {
			return ""
		}
		return s
	}
}

// cellPrice coerces the price cell; anything malformed or negative is 0.
func cellPrice(cells []*gvizCell, idx int) float64 {
	var price float64
	switch v := cellValue(cells, idx).(type) {
	case nil, bool:
		return 0
	case string:
		f, err := cast.ToFloat64E(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		price = f
	default:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return 0
		}
		price = f
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0
	}
	return price
}
