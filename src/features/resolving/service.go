package resolving

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/contre95/playdir/src/features/config"
	"github.com/contre95/playdir/src/features/metrics"
	"github.com/contre95/playdir/src/media"
	"golang.org/x/sync/errgroup"
)

// ErrResolve wraps every failed resolution.
var ErrResolve = errors.New("failed to resolve playlist")

// Options tune a single resolution.
type Options struct {
	Shuffle bool
}

// Service turns a manifest or index path into a flat list of playable entries.
type Service struct {
	fetcher       media.Fetcher
	extractor     media.LinkExtractor
	configManager *config.Manager
	shuffle       func([]media.Entry)
}

// NewService creates a new resolving service
func NewService(fetcher media.Fetcher, extractor media.LinkExtractor, configManager *config.Manager) *Service {
	return &Service{
		fetcher:       fetcher,
		extractor:     extractor,
		configManager: configManager,
		shuffle:       fisherYates,
	}
}

// Resolve fetches path and expands it into playable entries. Any failed fetch
// aborts the whole resolution; no partial result is returned.
func (s *Service) Resolve(ctx context.Context, path string, opts Options) ([]media.Entry, error) {
	start := time.Now()
	path = strings.TrimSpace(path)

	entries, err := s.resolve(ctx, path, opts)
	metrics.ObserveResolution(len(entries), err, time.Since(start))
	if err != nil {
		slog.Error("Playlist resolution failed", "path", path, "error", err)
		return nil, fmt.Errorf("%w %q: %w", ErrResolve, path, err)
	}

	slog.Info("Playlist resolved", "path", path, "entries", len(entries), "shuffle", opts.Shuffle, "duration", time.Since(start).String())
	return entries, nil
}

func (s *Service) resolve(ctx context.Context, path string, opts Options) ([]media.Entry, error) {
	listing, err := s.fetcher.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}

	var entries []media.Entry
	switch kind := listing.Kind(); kind {
	case media.ContentManifest:
		entries, err = s.expandManifest(ctx, listing.Body)
	case media.ContentIndex:
		entries, err = s.expandIndex(path, listing.Body)
	default:
		slog.Warn("Unsupported listing content type, nothing to resolve", "path", path, "contentType", listing.ContentType)
	}
	if err != nil {
		return nil, err
	}

	entries = media.FilterPlayable(entries)
	if opts.Shuffle {
		s.shuffle(entries)
	}
	return entries, nil
}

// expandIndex prefixes every link of an index page with the page path.
func (s *Service) expandIndex(path, body string) ([]media.Entry, error) {
	links, err := s.extractor.ExtractLinks(body)
	if err != nil {
		return nil, err
	}
	entries := make([]media.Entry, 0, len(links))
	for _, link := range links {
		entries = append(entries, media.Entry(media.JoinPath(path, link)))
	}
	return entries, nil
}

// expandManifest expands every line against its directory index. Lines may be
// fetched concurrently but their results keep manifest order.
func (s *Service) expandManifest(ctx context.Context, body string) ([]media.Entry, error) {
	lines := ParseManifest(body)
	mode := ParsePatternMode(s.configManager.Get().Resolver.PatternMode)

	results := make([][]media.Entry, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.configManager.Get().Resolver.Concurrency))
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entries, err := s.expandLine(gctx, line, mode)
			if err != nil {
				return fmt.Errorf("manifest line %q: %w", line.Raw, err)
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var entries []media.Entry
	for _, r := range results {
		entries = append(entries, r...)
	}
	return entries, nil
}

func (s *Service) expandLine(ctx context.Context, line ManifestLine, mode PatternMode) ([]media.Entry, error) {
	match, err := NewMatcher(mode, line.Pattern)
	if err != nil {
		return nil, err
	}

	listing, err := s.fetcher.Fetch(ctx, line.Dir)
	if err != nil {
		return nil, err
	}
	links, err := s.extractor.ExtractLinks(listing.Body)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", line.Dir, err)
	}

	if exactMatch(links, line.Pattern) {
		return []media.Entry{media.Entry(media.JoinPath(line.Dir, line.Pattern))}, nil
	}

	var entries []media.Entry
	for _, link := range links {
		if match(link) {
			entries = append(entries, media.Entry(media.JoinPath(line.Dir, link)))
		}
	}
	slog.Debug("Manifest line expanded", "dir", line.Dir, "pattern", line.Pattern, "links", len(links), "matches", len(entries))
	return entries, nil
}

// fisherYates shuffles entries in place with a uniform permutation.
func fisherYates(entries []media.Entry) {
	rand.Shuffle(len(entries), func(i, j int) {
		entries[i], entries[j] = entries[j], entries[i]
	})
}
