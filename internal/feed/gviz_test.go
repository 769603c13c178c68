package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/sheetshop/internal/domain"
)

const sheetObject = `{"version":"0.6","reqId":"0","status":"ok","sig":"1","table":{"cols":[],"rows":[
{"c":[{"v":"p1"},{"v":"Mug"},{"v":250},{"v":"Kitchen"},{"v":"Ceramic mug"},{"v":"https://img/mug.jpg"}]},
{"c":[{"v":"p2"},null,{"v":10},{"v":"Kitchen"}]},
{"c":[{"v":3},{"v":"Card"},{"v":"12.5"},null,{"v":""}]},
{"c":[{"v":"p4"},{"v":"Pen"},{"v":"abc"},{"v":"Office"}]},
{"c":[null,{"v":"Sticker"}]},
{"c":[{"v":"p6"},{"v":""},{"v":1}]},
{"c":[{"v":"p7"},{"v":"Refund"},{"v":-5}]}
]}}`

func TestParseMapsCellsPositionally(t *testing.T) {
	products, err := Parse(sheetObject)
	require.NoError(t, err)

	expected := []domain.Product{
		{ID: "p1", Name: "Mug", Price: 250, Category: "Kitchen", Description: "Ceramic mug", Image: "https://img/mug.jpg"},
		{ID: "3", Name: "Card", Price: 12.5},
		{ID: "p4", Name: "Pen", Price: 0, Category: "Office"},
		{ID: "", Name: "Sticker"},
		{ID: "p7", Name: "Refund", Price: 0},
	}
	assert.Equal(t, expected, products)
}

func TestParseTreatsZeroAsEmptyText(t *testing.T) {
	products, err := Parse(`{"table":{"rows":[
{"c":[{"v":0},{"v":"Mug"},{"v":0},{"v":0},{"v":false}]},
{"c":[{"v":"p2"},{"v":0},{"v":5}]},
{"c":[{"v":1.5},{"v":true}]}
]}}`)
	require.NoError(t, err)
	assert.Equal(t, []domain.Product{
		{ID: "", Name: "Mug"},
		{ID: "1.5", Name: "true"},
	}, products)
}

func TestParseIgnoresWrapperText(t *testing.T) {
	bare, err := Parse(sheetObject)
	require.NoError(t, err)

	wrapped := "/*O_o*/\ngoogle.visualization.Query.setResponse(" + sheetObject + ");"
	got, err := Parse(wrapped)
	require.NoError(t, err)
	assert.Equal(t, bare, got)
}

func TestParseFailures(t *testing.T) {
	cases := map[string]struct {
		payload string
		target  error
	}{
		"no object":      {payload: "<html>not found</html>", target: ErrNoJSON},
		"reversed brace": {payload: "} nothing {", target: ErrNoJSON},
		"missing table":  {payload: `{"status":"ok"}`, target: ErrNoTable},
		"query error": {
			payload: `{"status":"error","errors":[{"reason":"invalid_query","detailed_message":"Invalid sheet Sheet9"}]}`,
			target:  ErrQuery,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			products, err := Parse(tc.payload)
			assert.ErrorIs(t, err, tc.target)
			assert.Empty(t, products)
		})
	}

	_, err := Parse(`{"table": {"rows": [ broken }`)
	assert.Error(t, err)
}

func TestParseNullRows(t *testing.T) {
	products, err := Parse(`{"table":{"rows":null}}`)
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestURL(t *testing.T) {
	assert.Equal(t,
		"https://docs.google.com/spreadsheets/d/1R6pp/gviz/tq?sheet=Sheet2&tqx=out%3Ajson",
		URL("1R6pp", "Sheet2"),
	)
}
