package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/contre95/playdir/src/features/preferences"
	_ "github.com/mattn/go-sqlite3"
)

// SqliteStore is a SQLite implementation of the preferences.Store interface.
type SqliteStore struct {
	db *sql.DB
}

// NewSqliteStore creates a new SqliteStore.
func NewSqliteStore(path string) (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	slog.Info("Preference database ready", "path", path)
	return &SqliteStore{db: db}, nil
}

var _ preferences.Store = (*SqliteStore)(nil)

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT
		);
	`)
	return err
}

// GetPreference returns the stored value for key and whether it exists.
func (d *SqliteStore) GetPreference(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := d.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// SetPreference stores value under key, replacing any previous value.
func (d *SqliteStore) SetPreference(ctx context.Context, key, value string) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO preferences (key, value, updated_at)
		VALUES (?, ?, datetime('now'))
	`, key, value)
	return err
}

// ListPreferences returns every stored preference.
func (d *SqliteStore) ListPreferences(ctx context.Context) (map[string]string, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT key, value FROM preferences`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prefs := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		prefs[key] = value
	}
	return prefs, rows.Err()
}

// Close closes the underlying database.
func (d *SqliteStore) Close() error {
	return d.db.Close()
}
