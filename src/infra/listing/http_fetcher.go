package listing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/contre95/playdir/src/features/metrics"
	"github.com/contre95/playdir/src/media"
)

// HTTPFetcher implements media.Fetcher against a static file server.
type HTTPFetcher struct {
	base           *url.URL
	client         *http.Client
	userAgent      string
	tolerateStatus bool
}

// Options configures an HTTPFetcher.
type Options struct {
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	TolerateStatus bool
}

// NewHTTPFetcher creates a fetcher resolving relative targets against opts.BaseURL.
func NewHTTPFetcher(opts Options) (*HTTPFetcher, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid listing base url %q: %w", opts.BaseURL, err)
	}
	return &HTTPFetcher{
		base:           base,
		client:         &http.Client{Timeout: opts.Timeout},
		userAgent:      opts.UserAgent,
		tolerateStatus: opts.TolerateStatus,
	}, nil
}

// Resolve turns a path into an absolute URL against the base URL. Targets
// that are not valid URL references, such as an unescaped "100%.mp3", are
// taken as a literal path and escaped.
func (f *HTTPFetcher) Resolve(target string) (string, error) {
	ref, err := url.Parse(target)
	if err != nil {
		slog.Debug("Escaping literal listing path", "target", target, "error", err)
		ref = &url.URL{Path: target}
	}
	return f.base.ResolveReference(ref).String(), nil
}

// Fetch issues a GET for target and returns its Content-Type and body.
func (f *HTTPFetcher) Fetch(ctx context.Context, target string) (media.Listing, error) {
	start := time.Now()
	listing, err := f.fetch(ctx, target)
	metrics.ObserveFetch(listing.Kind(), err, time.Since(start))
	return listing, err
}

func (f *HTTPFetcher) fetch(ctx context.Context, target string) (media.Listing, error) {
	fullURL, err := f.Resolve(target)
	if err != nil {
		return media.Listing{}, fmt.Errorf("%w: invalid target %q: %v", media.ErrFetch, target, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return media.Listing{}, fmt.Errorf("%w: failed to create request: %v", media.ErrFetch, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	slog.Debug("Fetching listing", "target", target, "url", fullURL)
	resp, err := f.client.Do(req)
	if err != nil {
		return media.Listing{}, fmt.Errorf("%w: failed to make request: %w", media.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest && !f.tolerateStatus {
		return media.Listing{}, &media.StatusError{URL: fullURL, StatusCode: resp.StatusCode}
	}

	var body strings.Builder
	if _, err := io.Copy(&body, resp.Body); err != nil {
		return media.Listing{}, fmt.Errorf("%w: failed to read body: %w", media.ErrFetch, err)
	}

	return media.Listing{
		URL:         fullURL,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body.String(),
	}, nil
}
