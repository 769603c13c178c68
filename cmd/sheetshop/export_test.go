package main

import (
	"bytes"
	"testing"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/sheetshop/internal/catalog"
	"github.com/talkincode/sheetshop/internal/domain"
)

var products = []domain.Product{
	{ID: "1", Name: "Photo Frame", Price: 250, Category: "Gifts", Description: "Wooden frame"},
	{ID: "2", Name: "Teddy", Price: 400, Category: "Toys", Image: "http://img/teddy.png"},
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, products, "₹"))
	out := buf.String()
	assert.Contains(t, out, "Photo Frame")
	assert.Contains(t, out, "₹400")
	assert.Contains(t, out, "2 items")
}

func TestWriteCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, products))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("id,name,price,category,description,image")))

	var back []domain.Product
	require.NoError(t, gocsv.UnmarshalBytes(buf.Bytes(), &back))
	assert.Equal(t, products, back)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeXLSX(&buf, products))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "name", f.GetCellValue(xlsxSheet, "B1"))
	assert.Equal(t, "Teddy", f.GetCellValue(xlsxSheet, "B3"))
	assert.Equal(t, "http://img/teddy.png", f.GetCellValue(xlsxSheet, "F3"))
}

func TestWriteStats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeStats(&buf, catalog.Stats(products), "$"))
	out := buf.String()
	assert.Contains(t, out, "$250")
	assert.Contains(t, out, "$325")
	assert.Contains(t, out, "Toys")
}

func TestSelectExporter(t *testing.T) {
	_, err := selectExporter("pdf", false, true)
	assert.EqualError(t, err, `unknown format "pdf"`)
	_, err = selectExporter("pdf", true, false)
	assert.Error(t, err)

	_, err = selectExporter("xlsx", false, false)
	assert.Error(t, err)

	// stats are text, so xlsx without --out is fine
	export, err := selectExporter("xlsx", true, false)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, export(&buf, products, "$"))
	assert.Contains(t, buf.String(), "products")

	export, err = selectExporter("csv", false, false)
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, export(&buf, products, "$"))
	assert.Contains(t, buf.String(), "Photo Frame")
}

func TestCellName(t *testing.T) {
	assert.Equal(t, "A1", cellName(0, 1))
	assert.Equal(t, "F12", cellName(5, 12))
}
