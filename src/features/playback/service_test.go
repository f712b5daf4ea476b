package playback

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/contre95/playdir/src/features/config"
	"github.com/contre95/playdir/src/features/resolving"
	"github.com/contre95/playdir/src/infra/autoindex"
	"github.com/contre95/playdir/src/infra/listing"
	"github.com/contre95/playdir/src/media"
	"github.com/gofiber/fiber/v2"
)

// MockResolver returns canned entries per path
type MockResolver struct {
	entries  map[string][]media.Entry
	err      error
	lastOpts resolving.Options
}

func (m *MockResolver) Resolve(ctx context.Context, path string, opts resolving.Options) ([]media.Entry, error) {
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.entries[path], nil
}

// MockPreferences records the recent path
type MockPreferences struct {
	shuffle bool
	recent  string
}

func (m *MockPreferences) Shuffle(ctx context.Context) bool { return m.shuffle }

func (m *MockPreferences) SetRecent(ctx context.Context, path string) error {
	m.recent = path
	return nil
}

// MockURLs prefixes entries with a host
type MockURLs struct{}

func (MockURLs) Resolve(target string) (string, error) { return "http://media.local" + target, nil }

// MockStore is a map backed SessionStore
type MockStore struct {
	mu    sync.Mutex
	items map[string]*Session
}

func NewMockStore() *MockStore {
	return &MockStore{items: make(map[string]*Session)}
}

func (m *MockStore) Add(session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[session.ID] = session
	return nil
}

func (m *MockStore) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.items[id]; ok {
		return s, nil
	}
	return nil, errors.New("item not found")
}

func (m *MockStore) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return errors.New("item not found")
	}
	delete(m.items, id)
	return nil
}

func (m *MockStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// MockTags returns fixed tags
type MockTags struct {
	lastURL string
}

func (m *MockTags) ReadTags(ctx context.Context, url string) (*TrackTags, error) {
	m.lastURL = url
	return &TrackTags{Title: "Track One", Artist: "Someone"}, nil
}

func newTestService() (*Service, *MockResolver, *MockPreferences, *MockStore, *MockTags) {
	resolver := &MockResolver{entries: map[string][]media.Entry{
		"/music/list.txt": {"/music/track1.mp3", "/music/Beyonc%C3%A9%20-%20Halo.mp3", "/music/track2.mp3"},
	}}
	prefs := &MockPreferences{}
	store := NewMockStore()
	tags := &MockTags{}
	return NewService(resolver, prefs, MockURLs{}, store, tags), resolver, prefs, store, tags
}

func TestLoad_CreatesSession(t *testing.T) {
	service, resolver, prefs, store, _ := newTestService()
	prefs.shuffle = true

	session, err := service.Load(context.Background(), "  /music/list.txt ", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session.Len() != 3 {
		t.Errorf("expected 3 tracks, got %d", session.Len())
	}
	if session.Path != "/music/list.txt" {
		t.Errorf("expected trimmed path, got %q", session.Path)
	}
	if prefs.recent != "/music/list.txt" {
		t.Errorf("expected recent path to be stored, got %q", prefs.recent)
	}
	if !resolver.lastOpts.Shuffle {
		t.Error("expected shuffle preference to reach the resolver")
	}
	if store.Count() != 1 {
		t.Errorf("expected 1 stored session, got %d", store.Count())
	}
	current, _ := session.Current()
	if current.Source != "http://media.local/music/track1.mp3" {
		t.Errorf("unexpected source %s", current.Source)
	}
}

func TestLoad_ReplacesPreviousSession(t *testing.T) {
	service, _, _, store, _ := newTestService()

	first, err := service.Load(context.Background(), "/music/list.txt", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := service.Load(context.Background(), "/music/list.txt", first.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if first.ID == second.ID {
		t.Error("expected a new session id")
	}
	if _, err := service.Get(first.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected previous session to be discarded, got %v", err)
	}
	if store.Count() != 1 {
		t.Errorf("expected a single live session, got %d", store.Count())
	}
}

func TestLoad_EmptyPlaylist(t *testing.T) {
	service, _, _, _, _ := newTestService()

	session, err := service.Load(context.Background(), "/nothing", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := session.Current(); ok {
		t.Error("expected an empty session")
	}
	if _, err := service.Next(session.ID); err != nil {
		t.Errorf("expected Next on an empty session to be harmless, got %v", err)
	}
	if _, err := service.Set(session.ID, 0); !errors.Is(err, ErrTrackNotFound) {
		t.Errorf("expected ErrTrackNotFound, got %v", err)
	}
}

func TestLoad_ResolveError(t *testing.T) {
	service, resolver, _, store, _ := newTestService()
	resolver.err = resolving.ErrResolve

	if _, err := service.Load(context.Background(), "/broken", ""); !errors.Is(err, resolving.ErrResolve) {
		t.Errorf("expected ErrResolve, got %v", err)
	}
	if store.Count() != 0 {
		t.Errorf("expected no session, got %d", store.Count())
	}
}

func TestLoad_PathRequired(t *testing.T) {
	service, _, _, _, _ := newTestService()
	if _, err := service.Load(context.Background(), "   ", ""); !errors.Is(err, ErrPathRequired) {
		t.Errorf("expected ErrPathRequired, got %v", err)
	}
}

func TestNavigation(t *testing.T) {
	service, _, _, _, _ := newTestService()
	session, _ := service.Load(context.Background(), "/music/list.txt", "")

	if _, err := service.Prev(session.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session.Index() != 0 {
		t.Errorf("expected Prev at start to stay at 0, got %d", session.Index())
	}
	service.Next(session.ID)
	service.Next(session.ID)
	service.Next(session.ID)
	if session.Index() != 0 {
		t.Errorf("expected Next to loop back to 0, got %d", session.Index())
	}
	if _, err := service.Set(session.ID, 2); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if _, err := service.Next("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSearch_FoldsDiacritics(t *testing.T) {
	service, _, _, _, _ := newTestService()
	session, _ := service.Load(context.Background(), "/music/list.txt", "")

	found, err := service.Search(session.ID, "beyonce")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(found) != 1 || found[0].Index != 1 {
		t.Errorf("expected the Beyoncé track, got %+v", found)
	}

	found, _ = service.Search(session.ID, "TRACK")
	if len(found) != 2 {
		t.Errorf("expected 2 case-insensitive matches, got %d", len(found))
	}
}

func TestTags(t *testing.T) {
	service, _, _, _, tags := newTestService()
	session, _ := service.Load(context.Background(), "/music/list.txt", "")

	got, err := service.Tags(context.Background(), session.ID, 2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Title != "Track One" {
		t.Errorf("unexpected tags %+v", got)
	}
	if tags.lastURL != "http://media.local/music/track2.mp3" {
		t.Errorf("expected tags to be read from the track source, got %s", tags.lastURL)
	}
	if _, err := service.Tags(context.Background(), session.ID, 9); !errors.Is(err, ErrTrackNotFound) {
		t.Errorf("expected ErrTrackNotFound, got %v", err)
	}
}

func TestHandlers_SessionLifecycle(t *testing.T) {
	service, _, _, _, _ := newTestService()
	app := fiber.New()
	RegisterRoutes(app, NewHandler(service))

	req := httptest.NewRequest("POST", "/playback/sessions", strings.NewReader("path=/music/list.txt"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, body)
	}

	// Find the session through the service, the handler returned its view
	var id string
	for k := range service.sessions.(*MockStore).items {
		id = k
	}

	resp, _ = app.Test(httptest.NewRequest("POST", "/playback/sessions/"+id+"/next", nil))
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200 on next, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"position":"2/3"`) {
		t.Errorf("expected position 2/3, got %s", body)
	}

	resp, _ = app.Test(httptest.NewRequest("POST", "/playback/sessions/"+id+"/set/7", nil))
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("expected 404 for out of range index, got %d", resp.StatusCode)
	}

	resp, _ = app.Test(httptest.NewRequest("POST", "/playback/sessions/"+id+"/set/abc", nil))
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 for invalid index, got %d", resp.StatusCode)
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/playback/sessions/unknown", nil))
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("expected 404 for unknown session, got %d", resp.StatusCode)
	}

	resp, _ = app.Test(httptest.NewRequest("POST", "/playback/sessions", nil))
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 without path, got %d", resp.StatusCode)
	}
}

func TestLoad_SourcesPointAtListingServer(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/list.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("music/100%.mp3\nmusic/My Song.mp3\n"))
	})
	mux.HandleFunc("/music/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><h1>Index of /music/</h1><hr><pre><a href="../">../</a>
<a href="100%25.mp3">100%.mp3</a>
<a href="My%20Song.mp3">My Song.mp3</a>
</pre><hr></body></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	fetcher, err := listing.NewHTTPFetcher(listing.Options{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	cfg := config.NewManager(&config.Config{Resolver: config.Resolver{PatternMode: "literal", Concurrency: 1}})
	resolver := resolving.NewService(fetcher, autoindex.NewExtractor(), cfg)
	service := NewService(resolver, &MockPreferences{}, fetcher, NewMockStore(), &MockTags{})

	session, err := service.Load(context.Background(), "/list.txt", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	tracks := session.Tracks()
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %+v", tracks)
	}

	expected := []string{server.URL + "/music/100%25.mp3", server.URL + "/music/My%20Song.mp3"}
	for i, track := range tracks {
		if track.Source != expected[i] {
			t.Errorf("track %d (%s): expected source %s, got %s", i, track.Entry, expected[i], track.Source)
		}
	}
}
