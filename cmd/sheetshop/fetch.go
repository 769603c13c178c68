package main

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/talkincode/sheetshop/internal/app"
	"github.com/talkincode/sheetshop/internal/catalog"
	"github.com/talkincode/sheetshop/internal/feed"
)

var fetchOpts struct {
	format   string
	out      string
	search   string
	category string
	stats    bool
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the product sheet and print or export it",
	RunE:  runFetch,
}

func init() {
	f := fetchCmd.Flags()
	f.StringVar(&fetchOpts.format, "format", "table", "output format: table, csv or xlsx")
	f.StringVarP(&fetchOpts.out, "out", "o", "", "output file (default stdout, required for xlsx)")
	f.StringVar(&fetchOpts.search, "q", "", "search text")
	f.StringVar(&fetchOpts.category, "category", catalog.AllCategories, "category filter")
	f.BoolVar(&fetchOpts.stats, "stats", false, "print a price summary instead of products")
}

func runFetch(cmd *cobra.Command, _ []string) (err error) {
	export, err := selectExporter(fetchOpts.format, fetchOpts.stats, fetchOpts.out != "")
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	url := app.FeedURL(cfg.Feed)
	if url == "" {
		return errors.New("feed.url or feed.sheet_id must be configured")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Feed.Timeout+time.Second)
	defer cancel()
	products, err := feed.NewLoader(url, cfg.Feed.Timeout).Fetch(ctx)
	if err != nil {
		return err
	}
	products = catalog.Filter(products, catalog.Query{Search: fetchOpts.search, Category: fetchOpts.category})

	if fetchOpts.out == "" {
		return export(cmd.OutOrStdout(), products, cfg.Shop.Currency)
	}
	fh, err := os.Create(fetchOpts.out)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	defer func() {
		if cerr := fh.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close output")
		}
	}()
	return export(fh, products, cfg.Shop.Currency)
}
