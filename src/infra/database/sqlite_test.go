package database

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SqliteStore {
	t.Helper()
	store, err := NewSqliteStore(filepath.Join(t.TempDir(), "playdir.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGetPreference_Missing(t *testing.T) {
	store := newTestStore(t)

	value, ok, err := store.GetPreference(context.Background(), "volume")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ok || value != "" {
		t.Errorf("expected missing preference, got %q (ok=%v)", value, ok)
	}
}

func TestSetPreference_Replaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SetPreference(ctx, "recent", "/music"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := store.SetPreference(ctx, "recent", "/videos"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	value, ok, err := store.GetPreference(ctx, "recent")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !ok || value != "/videos" {
		t.Errorf("expected /videos, got %q (ok=%v)", value, ok)
	}

	all, err := store.ListPreferences(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected a single stored preference, got %v", all)
	}
}

func TestPreferencesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playdir.db")
	store, err := NewSqliteStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := store.SetPreference(context.Background(), "shuffle", "true"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	store.Close()

	reopened, err := NewSqliteStore(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer reopened.Close()

	value, ok, err := reopened.GetPreference(context.Background(), "shuffle")
	if err != nil || !ok || value != "true" {
		t.Errorf("expected persisted shuffle=true, got %q ok=%v err=%v", value, ok, err)
	}
}
