package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/talkincode/sheetshop/internal/catalog"
	"github.com/talkincode/sheetshop/internal/domain"
)

const xlsxSheet = "Sheet1"

var xlsxHeader = []string{"id", "name", "price", "category", "description", "image"}

type exporter func(w io.Writer, products []domain.Product, currency string) error

// selectExporter checks the fetch flags before anything is downloaded or
// created. Stats are plain text whatever the format.
func selectExporter(format string, stats, toFile bool) (exporter, error) {
	var export exporter
	switch format {
	case "table":
		export = writeTable
	case "csv":
		export = func(w io.Writer, products []domain.Product, _ string) error {
			return writeCSV(w, products)
		}
	case "xlsx":
		if !stats && !toFile {
			return nil, errors.New("--out is required for xlsx")
		}
		export = func(w io.Writer, products []domain.Product, _ string) error {
			return writeXLSX(w, products)
		}
	default:
		return nil, errors.Errorf("unknown format %q", format)
	}
	if stats {
		export = func(w io.Writer, products []domain.Product, currency string) error {
			return writeStats(w, catalog.Stats(products), currency)
		}
	}
	return export, nil
}

func writeTable(w io.Writer, products []domain.Product, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tCATEGORY")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, catalog.FormatPrice(currency, p.Price), p.Category)
	}
	fmt.Fprintf(tw, "\n%d items\n", len(products))
	return tw.Flush()
}

func writeCSV(w io.Writer, products []domain.Product) error {
	if err := gocsv.Marshal(products, w); err != nil {
		return errors.Wrap(err, "write csv")
	}
	return nil
}

func writeXLSX(w io.Writer, products []domain.Product) error {
	f := excelize.NewFile()
	for i, h := range xlsxHeader {
		f.SetCellValue(xlsxSheet, cellName(i, 1), h)
	}
	for r, p := range products {
		row := r + 2
		values := []interface{}{p.ID, p.Name, p.Price, p.Category, p.Description, p.Image}
		for i, v := range values {
			f.SetCellValue(xlsxSheet, cellName(i, row), v)
		}
	}
	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "write xlsx")
	}
	return nil
}

// cellName maps a zero based column and one based row to an A1 reference.
// Only the six product columns are ever written.
func cellName(col, row int) string {
	return string(rune('A'+col)) + strconv.Itoa(row)
}

func writeStats(w io.Writer, s catalog.Summary, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "products\t%d\n", s.Count)
	fmt.Fprintf(tw, "min\t%s\n", catalog.FormatPrice(currency, s.MinPrice))
	fmt.Fprintf(tw, "max\t%s\n", catalog.FormatPrice(currency, s.MaxPrice))
	fmt.Fprintf(tw, "mean\t%s\n", catalog.FormatPrice(currency, s.MeanPrice))
	fmt.Fprintf(tw, "median\t%s\n", catalog.FormatPrice(currency, s.Median))
	for _, c := range s.Categories {
		name := c.Category
		if name == "" {
			name = "(none)"
		}
		fmt.Fprintf(tw, "  %s\t%d\n", name, c.Count)
	}
	return tw.Flush()
}
