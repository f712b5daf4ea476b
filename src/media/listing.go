package media

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrFetch is wrapped by every error a Fetcher returns.
var ErrFetch = errors.New("listing fetch failed")

// ContentKind classifies a listing by its declared content type.
type ContentKind string

const (
	ContentManifest ContentKind = "manifest"
	ContentIndex    ContentKind = "index"
	ContentUnknown  ContentKind = "unknown"
)

// Listing is the raw result of fetching a path. It is never mutated after the fetch.
type Listing struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        string
}

// Kind classifies the listing by its Content-Type header.
func (l Listing) Kind() ContentKind {
	return ClassifyContentType(l.ContentType)
}

// ClassifyContentType maps a Content-Type header value to a ContentKind.
// Parameters such as charset are ignored.
func ClassifyContentType(contentType string) ContentKind {
	switch {
	case strings.Contains(contentType, "text/plain"):
		return ContentManifest
	case strings.Contains(contentType, "text/html"):
		return ContentIndex
	default:
		return ContentUnknown
	}
}

// StatusError is returned when a listing answers with an HTTP error status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("listing %s answered with status %d", e.URL, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrFetch }

// Fetcher retrieves a listing (manifest or index page) by path.
type Fetcher interface {
	Fetch(ctx context.Context, target string) (Listing, error)
}

// LinkExtractor pulls the ordered hyperlink targets out of an index page.
type LinkExtractor interface {
	ExtractLinks(body string) ([]string, error)
}
