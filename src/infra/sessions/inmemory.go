package sessions

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/contre95/playdir/src/features/playback"
)

// DefaultCapacity is the number of live sessions kept when none is configured.
const DefaultCapacity = 64

var (
	ErrAlreadyExists = errors.New("session already exists")
	ErrNotFound      = errors.New("session not found")
)

// InMemoryStore is an in-memory implementation of the playback.SessionStore interface.
// Once capacity is reached the oldest session is evicted.
type InMemoryStore struct {
	mu       sync.Mutex
	items    map[string]*playback.Session
	order    []string
	capacity int
}

// NewInMemoryStore creates a new in-memory session store
func NewInMemoryStore(capacity int) *InMemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &InMemoryStore{
		items:    make(map[string]*playback.Session),
		capacity: capacity,
	}
}

// Add adds a new session to the store
func (s *InMemoryStore) Add(session *playback.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[session.ID]; exists {
		return ErrAlreadyExists
	}
	for len(s.order) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.items, oldest)
		slog.Debug("Evicted oldest playback session", "id", oldest)
	}
	s.items[session.ID] = session
	s.order = append(s.order, session.ID)
	return nil
}

// Get returns a specific session by ID
func (s *InMemoryStore) Get(id string) (*playback.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.items[id]; ok {
		return session, nil
	}
	return nil, ErrNotFound
}

// Remove removes a session from the store by ID
func (s *InMemoryStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of live sessions
func (s *InMemoryStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
