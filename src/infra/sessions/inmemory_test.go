package sessions

import (
	"errors"
	"fmt"
	"testing"

	"github.com/contre95/playdir/src/features/playback"
)

func newSession(id string) *playback.Session {
	return playback.NewSession(id, "/music", nil, nil)
}

func TestAddGetRemove(t *testing.T) {
	store := NewInMemoryStore(4)

	if err := store.Add(newSession("a")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := store.Add(newSession("a")); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}

	got, err := store.Get("a")
	if err != nil || got.ID != "a" {
		t.Fatalf("expected session a, got %v (%v)", got, err)
	}

	if err := store.Remove("a"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := store.Get("a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after remove, got %v", err)
	}
	if err := store.Remove("a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second remove, got %v", err)
	}
	if store.Count() != 0 {
		t.Errorf("expected empty store, got %d", store.Count())
	}
}

func TestEvictsOldest(t *testing.T) {
	store := NewInMemoryStore(3)
	for i := 0; i < 5; i++ {
		if err := store.Add(newSession(fmt.Sprintf("s%d", i))); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}

	if store.Count() != 3 {
		t.Fatalf("expected 3 sessions, got %d", store.Count())
	}
	for _, evicted := range []string{"s0", "s1"} {
		if _, err := store.Get(evicted); err == nil {
			t.Errorf("expected %s to be evicted", evicted)
		}
	}
	for _, kept := range []string{"s2", "s3", "s4"} {
		if _, err := store.Get(kept); err != nil {
			t.Errorf("expected %s to be kept, got %v", kept, err)
		}
	}
}

func TestRemoveKeepsEvictionOrder(t *testing.T) {
	store := NewInMemoryStore(2)
	store.Add(newSession("a"))
	store.Add(newSession("b"))
	store.Remove("a")
	store.Add(newSession("c"))
	store.Add(newSession("d"))

	if _, err := store.Get("b"); err == nil {
		t.Error("expected b to be evicted")
	}
	if _, err := store.Get("c"); err != nil {
		t.Errorf("expected c to be kept, got %v", err)
	}
}
