package services

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	pdf := bytes.Repeat([]byte("%PDF"), 256)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.pdf":
			w.Write(pdf)
		case "/throttled":
			w.WriteHeader(http.StatusTooManyRequests)
		case "/broken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	fetcher := NewHTTPFetcher(srv.Client(), 0)

	t.Run("ok", func(t *testing.T) {
		data, err := fetcher.Fetch(context.Background(), srv.URL+"/ok.pdf")
		require.NoError(t, err)
		assert.Equal(t, pdf, data)
	})

	t.Run("not found is permanent", func(t *testing.T) {
		_, err := fetcher.Fetch(context.Background(), srv.URL+"/missing.pdf")
		require.Error(t, err)
		assert.True(t, isPermanent(err))
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("throttled is retryable", func(t *testing.T) {
		_, err := fetcher.Fetch(context.Background(), srv.URL+"/throttled")
		require.Error(t, err)
		assert.False(t, isPermanent(err))
	})

	t.Run("server error is retryable", func(t *testing.T) {
		_, err := fetcher.Fetch(context.Background(), srv.URL+"/broken")
		require.Error(t, err)
		assert.False(t, isPermanent(err))
	})

	t.Run("bad url is permanent", func(t *testing.T) {
		_, err := fetcher.Fetch(context.Background(), "://nope")
		require.Error(t, err)
		assert.True(t, isPermanent(err))
	})
}

func TestHTTPFetcher_SizeLimit(t *testing.T) {
	body := bytes.Repeat([]byte("x"), 2048)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	data, err := NewHTTPFetcher(srv.Client(), 2048).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, data, 2048)

	_, err = NewHTTPFetcher(srv.Client(), 1024).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, isPermanent(err))
	assert.Contains(t, err.Error(), "exceeds 1024 bytes")
}

func TestHTTPFetcher_NilClient(t *testing.T) {
	f := NewHTTPFetcher(nil, 0).(*httpFetcher)
	assert.Equal(t, http.DefaultClient, f.client)
}
