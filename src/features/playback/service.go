package playback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/contre95/playdir/src/features/metrics"
	"github.com/contre95/playdir/src/features/resolving"
	"github.com/contre95/playdir/src/media"
	"github.com/google/uuid"
	"github.com/gosimple/unidecode"
)

var (
	ErrPathRequired    = errors.New("path is required")
	ErrSessionNotFound = errors.New("session not found")
	ErrTrackNotFound   = errors.New("track not found")
)

// Resolver expands a path into playable entries.
type Resolver interface {
	Resolve(ctx context.Context, path string, opts resolving.Options) ([]media.Entry, error)
}

// Preferences is the part of the persisted player settings a load depends on.
type Preferences interface {
	Shuffle(ctx context.Context) bool
	SetRecent(ctx context.Context, path string) error
}

// URLResolver turns an entry into the URL the browser should play.
type URLResolver interface {
	Resolve(target string) (string, error)
}

// SessionStore keeps live sessions by id.
type SessionStore interface {
	Add(session *Session) error
	Get(id string) (*Session, error)
	Remove(id string) error
	Count() int
}

// TrackTags are the embedded tags read from a remote media file.
type TrackTags struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	Genre    string `json:"genre"`
	Year     int    `json:"year"`
	Track    int    `json:"track"`
	Format   string `json:"format"`
	FileType string `json:"fileType"`
}

// TagReader reads embedded tags from a media URL.
type TagReader interface {
	ReadTags(ctx context.Context, url string) (*TrackTags, error)
}

// Service builds playback sessions from resolved playlists.
type Service struct {
	resolver    Resolver
	preferences Preferences
	urls        URLResolver
	sessions    SessionStore
	tags        TagReader
}

// NewService creates a new playback service
func NewService(resolver Resolver, preferences Preferences, urls URLResolver, sessions SessionStore, tags TagReader) *Service {
	return &Service{
		resolver:    resolver,
		preferences: preferences,
		urls:        urls,
		sessions:    sessions,
		tags:        tags,
	}
}

// Load resolves path into a fresh session. When previousID names a live
// session it is discarded once the new one is ready. Concurrent loads each
// get their own session.
func (s *Service) Load(ctx context.Context, path, previousID string) (*Session, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrPathRequired
	}

	if err := s.preferences.SetRecent(ctx, path); err != nil {
		slog.Warn("Failed to remember recent path", "path", path, "error", err)
	}

	entries, err := s.resolver.Resolve(ctx, path, resolving.Options{Shuffle: s.preferences.Shuffle(ctx)})
	if err != nil {
		return nil, err
	}

	sources := make([]string, len(entries))
	for i, e := range entries {
		src, err := s.urls.Resolve(string(e))
		if err != nil {
			slog.Warn("Keeping entry unresolved", "entry", e, "error", err)
			src = string(e)
		}
		sources[i] = src
	}

	session := NewSession(uuid.New().String(), path, entries, sources)
	if err := s.sessions.Add(session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	if previousID != "" && previousID != session.ID {
		if err := s.sessions.Remove(previousID); err == nil {
			slog.Debug("Previous session discarded", "id", previousID)
		}
	}
	metrics.SessionsActive.Set(float64(s.sessions.Count()))

	if session.Len() == 0 {
		slog.Info("Nothing to play", "path", path, "session", session.ID)
	} else {
		slog.Info("Playback session created", "path", path, "session", session.ID, "tracks", session.Len())
	}
	return session, nil
}

// Get returns the live session with id.
func (s *Service) Get(id string) (*Session, error) {
	session, err := s.sessions.Get(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return session, nil
}

// Close discards the session with id.
func (s *Service) Close(id string) error {
	if err := s.sessions.Remove(id); err != nil {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	metrics.SessionsActive.Set(float64(s.sessions.Count()))
	return nil
}

// Set moves session id to index.
func (s *Service) Set(id string, index int) (*Session, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !session.Set(index) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrTrackNotFound, index, session.Len())
	}
	return session, nil
}

// Next advances session id, looping to the first track after the last.
func (s *Service) Next(id string) (*Session, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	session.Next()
	return session, nil
}

// Prev steps session id back; it stays on the first track.
func (s *Service) Prev(id string) (*Session, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	session.Prev()
	return session, nil
}

// Search returns the tracks whose unescaped entry contains query, ignoring
// case and diacritics.
func (s *Service) Search(id, query string) ([]Track, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	needle := fold(query)
	var found []Track
	for _, t := range session.Tracks() {
		if strings.Contains(fold(t.Display), needle) {
			found = append(found, t)
		}
	}
	return found, nil
}

// Tags reads the embedded tags of track index in session id.
func (s *Service) Tags(ctx context.Context, id string, index int) (*TrackTags, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	track, ok := session.Track(index)
	if !ok {
		return nil, fmt.Errorf("%w: index %d of %d", ErrTrackNotFound, index, session.Len())
	}
	return s.tags.ReadTags(ctx, track.Source)
}

func fold(s string) string {
	return strings.ToLower(unidecode.Unidecode(s))
}
