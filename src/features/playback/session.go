package playback

import (
	"fmt"
	"sync"
	"time"

	"github.com/contre95/playdir/src/media"
)

// Track is one row of a session playlist.
type Track struct {
	Index   int         `json:"index"`
	Entry   media.Entry `json:"entry"`
	Display string      `json:"display"`
	Source  string      `json:"source"`
}

// Session is the playback state built from one resolution. Its entries never
// change; only the current index moves.
type Session struct {
	ID        string
	Path      string
	CreatedAt time.Time

	tracks []Track

	mu    sync.RWMutex
	index int
}

// NewSession creates a session positioned on the first track. sources holds the
// browser-facing URL of each entry and must be as long as entries.
func NewSession(id, path string, entries []media.Entry, sources []string) *Session {
	tracks := make([]Track, len(entries))
	for i, e := range entries {
		tracks[i] = Track{Index: i, Entry: e, Display: e.Display(), Source: sources[i]}
	}
	return &Session{
		ID:        id,
		Path:      path,
		CreatedAt: time.Now(),
		tracks:    tracks,
	}
}

// Len returns the number of tracks.
func (s *Session) Len() int {
	return len(s.tracks)
}

// Set moves to index i. Out of range indexes leave the session untouched.
func (s *Session) Set(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set(i)
}

// Next moves forward, wrapping from the last track to the first.
func (s *Session) Next() bool {
	return s.move(1)
}

// Prev moves backward. On the first track there is nothing before it and the
// session does not move.
func (s *Session) Prev() bool {
	return s.move(-1)
}

func (s *Session) move(delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.tracks) == 0 {
		return false
	}
	return s.set((s.index + delta) % len(s.tracks))
}

func (s *Session) set(i int) bool {
	if i < 0 || i >= len(s.tracks) {
		return false
	}
	s.index = i
	return true
}

// Index returns the current position.
func (s *Session) Index() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Current returns the current track, false when the session is empty.
func (s *Session) Current() (Track, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.tracks) == 0 {
		return Track{}, false
	}
	return s.tracks[s.index], true
}

// Track returns the track at i.
func (s *Session) Track(i int) (Track, bool) {
	if i < 0 || i >= len(s.tracks) {
		return Track{}, false
	}
	return s.tracks[i], true
}

// Tracks returns a copy of the playlist.
func (s *Session) Tracks() []Track {
	out := make([]Track, len(s.tracks))
	copy(out, s.tracks)
	return out
}

// Position renders the one-based "current/total" label.
func (s *Session) Position() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.position()
}

func (s *Session) position() string {
	if len(s.tracks) == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d", s.index+1, len(s.tracks))
}

// View is the JSON shape of a session.
type View struct {
	ID       string  `json:"id"`
	Path     string  `json:"path"`
	Index    int     `json:"index"`
	Position string  `json:"position"`
	Empty    bool    `json:"empty"`
	Current  *Track  `json:"current,omitempty"`
	Tracks   []Track `json:"tracks"`
}

// View snapshots the session. Index, position and current track are read
// together so they always agree.
func (s *Session) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := View{
		ID:       s.ID,
		Path:     s.Path,
		Index:    s.index,
		Position: s.position(),
		Empty:    len(s.tracks) == 0,
		Tracks:   s.Tracks(),
	}
	if len(s.tracks) > 0 {
		current := s.tracks[s.index]
		v.Current = &current
	}
	return v
}
