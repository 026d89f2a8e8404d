package country

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

// Source provides the raw country document.
type Source interface {
	// FetchRaw returns the undecoded document.
	FetchRaw(ctx context.Context) ([]byte, error)
	// Origin identifies where the document comes from, for errors and logs.
	Origin() string
}

// Fetcher downloads the country list over HTTP. It performs a single request:
// no retries, pagination or caching.
type Fetcher struct {
	url        string
	httpClient *http.Client
}

// NewFetcher creates a fetcher for cfg.URL.
func NewFetcher(cfg SourceConfig) *Fetcher {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return &Fetcher{
		url: cfg.URL,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

// Origin implements Source.
func (f *Fetcher) Origin() string {
	return f.url
}

// FetchRaw implements Source.
func (f *Fetcher) FetchRaw(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &FetchError{
			URL:        f.url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", body),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

// Fetch downloads and decodes the country list.
func (f *Fetcher) Fetch(ctx context.Context) ([]gjson.Result, error) {
	body, err := f.FetchRaw(ctx)
	if err != nil {
		return nil, err
	}
	return Decode(f.url, body)
}

// Decode splits a JSON array document into its elements.
func Decode(origin string, body []byte) ([]gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return nil, &DecodeError{URL: origin, Err: ErrInvalidJSON}
	}

	doc := gjson.ParseBytes(body)
	if !doc.IsArray() {
		return nil, &DecodeError{URL: origin, Err: ErrNotArray}
	}
	return doc.Array(), nil
}
