package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSheetServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoaderLoad(t *testing.T) {
	srv := newSheetServer(t, http.StatusOK, "google.visualization.Query.setResponse("+sheetObject+");")

	l := NewLoader(srv.URL, time.Second).WithClient(srv.Client())
	assert.Equal(t, srv.URL, l.URL())
	products := l.Load(context.Background())
	require.Len(t, products, 5)
	assert.Equal(t, "Mug", products[0].Name)
}

func TestLoaderClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(sheetObject))
	}))
	t.Cleanup(srv.Close)

	l := NewLoader(srv.URL, time.Minute).WithClient(&http.Client{Timeout: 20 * time.Millisecond})
	_, err := l.Fetch(context.Background())
	assert.Error(t, err)
}

func TestLoaderLoadFailuresYieldEmpty(t *testing.T) {
	t.Run("bad status", func(t *testing.T) {
		srv := newSheetServer(t, http.StatusNotFound, sheetObject)
		l := NewLoader(srv.URL, time.Second)
		_, err := l.Fetch(context.Background())
		assert.Error(t, err)
		products := l.Load(context.Background())
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("malformed", func(t *testing.T) {
		srv := newSheetServer(t, http.StatusOK, "{not json}")
		products := NewLoader(srv.URL, time.Second).Load(context.Background())
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := newSheetServer(t, http.StatusOK, sheetObject)
		url := srv.URL
		srv.Close()
		products := NewLoader(url, time.Second).Load(context.Background())
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("no url", func(t *testing.T) {
		products := NewLoader("", 0).Load(context.Background())
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})
}
