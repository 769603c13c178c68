package feed

import (
	"context"
	"net/http"
	"time"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"
	"github.com/talkincode/sheetshop/internal/domain"
	"go.uber.org/zap"
)

const DefaultTimeout = 15 * time.Second

// Loader fetches the product sheet over HTTP.
type Loader struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

// NewLoader creates a loader for url. A zero timeout uses DefaultTimeout.
func NewLoader(url string, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Loader{url: url, timeout: timeout, client: http.DefaultClient}
}

// WithClient replaces the http client used for fetching.
func (l *Loader) WithClient(c *http.Client) *Loader {
	l.client = c
	return l
}

func (l *Loader) URL() string {
	return l.url
}

// Fetch downloads and parses the sheet, returning any failure to the caller.
func (l *Loader) Fetch(ctx context.Context) ([]domain.Product, error) {
	if l.url == "" {
		return nil, errors.New("feed: no sheet url configured")
	}
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	var (
		body string
		code int
	)
	err := gout.New(l.client).
		GET(l.url).
		WithContext(ctx).
		BindBody(&body).
		Code(&code).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "feed: fetch sheet")
	}
	if code < 200 || code > 299 {
		return nil, errors.Errorf("feed: fetch sheet: unexpected status %d", code)
	}
	return Parse(body)
}

// Load never fails: any fetch or parse problem is logged and an empty
// catalog is returned.
func (l *Loader) Load(ctx context.Context) []domain.Product {
	start := time.Now()
	products, err := l.Fetch(ctx)
	if err != nil {
		zap.L().Error("feed: load products failed",
			zap.String("namespace", "feed"),
			zap.String("url", l.URL()),
			zap.Error(err),
		)
		return []domain.Product{}
	}
	zap.L().Info("feed: products loaded",
		zap.String("namespace", "feed"),
		zap.Int("count", len(products)),
		zap.Duration("cost", time.Since(start)),
	)
	return products
}
