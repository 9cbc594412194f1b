package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// BlobFetcher downloads the bytes behind a StoredBlob URL.
type BlobFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type httpFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPFetcher returns a fetcher that refuses bodies larger than maxBytes.
// Deadlines come from the caller's context.
func NewHTTPFetcher(client *http.Client, maxBytes int64) BlobFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpFetcher{
		client:   client,
		maxBytes: maxBytes,
	}
}

// Fetch implements BlobFetcher. Client errors (4xx) are permanent.
func (f *httpFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, Permanent(fmt.Errorf("failed to build fetch request: %w", err))
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blob: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("failed to fetch blob: unexpected status %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, Permanent(err)
		}
		return nil, err
	}

	var reader io.Reader = resp.Body
	if f.maxBytes > 0 {
		reader = io.LimitReader(resp.Body, f.maxBytes+1)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}
	if f.maxBytes > 0 && int64(len(body)) > f.maxBytes {
		return nil, Permanent(fmt.Errorf("blob exceeds %d bytes", f.maxBytes))
	}

	return body, nil
}
