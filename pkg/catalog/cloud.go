package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/racklabs/rackplan/pkg/httputil"
)

const cloudTimeout = 10 * time.Second

// CloudOptions configure a CloudSource.
type CloudOptions struct {
	BaseURL string            // service root, e.g. https://catalog.example.com
	Cache   *httputil.Cache   // response cache; nil disables caching
	Headers map[string]string // applied to every request (e.g. Authorization)
	Refresh bool              // bypass cached responses
}

// CloudSource resolves specs from a hosted catalog service over HTTP.
// It expects the rackplan API surface: GET /api/v1/catalog/specs with
// brand and model query parameters, returning a Spec as JSON or 404.
//
// Responses are cached and requests retried with backoff on network
// failures and 5xx responses.
type CloudSource struct {
	http    *http.Client
	cache   *httputil.Cache
	baseURL string
	headers map[string]string
	refresh bool
}

// NewCloudSource creates a CloudSource for the given service.
func NewCloudSource(opts CloudOptions) *CloudSource {
	return &CloudSource{
		http:    &http.Client{Timeout: cloudTimeout},
		cache:   opts.Cache,
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		headers: opts.Headers,
		refresh: opts.Refresh,
	}
}

// Name identifies the source as "cloud".
func (s *CloudSource) Name() string { return "cloud" }

// Lookup fetches the spec for q from the catalog service.
//
// Returns [ErrNotFound] if the service does not know the product and
// [ErrNetwork] for HTTP failures that survive retrying.
func (s *CloudSource) Lookup(ctx context.Context, q Query) (*Spec, error) {
	key := normalizeKey(q.Brand) + "/" + normalizeKey(q.Model)

	var spec Spec
	err := s.cached(ctx, key, &spec, func() error {
		return s.fetch(ctx, q, &spec)
	})
	if err != nil {
		return nil, err
	}
	spec.Source = "cloud"
	return &spec, nil
}

// cached retrieves a value from cache or executes fetch and caches the
// result. When the source was created with Refresh, the cache is
// bypassed and fetch always runs.
func (s *CloudSource) cached(ctx context.Context, key string, v any, fetch func() error) error {
	if s.cache != nil && !s.refresh {
		if ok, _ := s.cache.Get(key, v); ok {
			return nil
		}
	}
	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Set(key, v)
	}
	return nil
}

func (s *CloudSource) fetch(ctx context.Context, q Query, spec *Spec) error {
	params := url.Values{}
	params.Set("brand", q.Brand)
	params.Set("model", q.Model)

	body, err := s.doRequest(ctx, fmt.Sprintf("%s/api/v1/catalog/specs?%s", s.baseURL, params.Encode()))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: %s %s", err, q.Brand, q.Model)
		}
		return err
	}
	defer body.Close()
	return json.NewDecoder(body).Decode(spec)
}

func (s *CloudSource) doRequest(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

var _ Source = (*CloudSource)(nil)
