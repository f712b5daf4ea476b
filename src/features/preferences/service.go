package preferences

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
)

const (
	KeyVolume  = "volume"
	KeyShuffle = "shuffle"
	KeyRecent  = "recent"
)

// Store persists preferences as independent string scalars.
type Store interface {
	GetPreference(ctx context.Context, key string) (string, bool, error)
	SetPreference(ctx context.Context, key, value string) error
	ListPreferences(ctx context.Context) (map[string]string, error)
}

// Preferences are the player settings kept between page loads.
type Preferences struct {
	Volume  float64 `json:"volume"`
	Shuffle bool    `json:"shuffle"`
	Recent  string  `json:"recent"`
}

// Defaults returns the preferences used when nothing is stored.
func Defaults() Preferences {
	return Preferences{Volume: 1, Shuffle: false, Recent: ""}
}

// Service reads and writes player preferences.
type Service struct {
	store Store
}

// NewService creates a new preferences service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Load returns the stored preferences, falling back to defaults for missing or
// malformed values.
func (s *Service) Load(ctx context.Context) (Preferences, error) {
	prefs := Defaults()
	stored, err := s.store.ListPreferences(ctx)
	if err != nil {
		return prefs, fmt.Errorf("failed to load preferences: %w", err)
	}

	if v, ok := stored[KeyVolume]; ok {
		if volume, err := strconv.ParseFloat(v, 64); err == nil {
			prefs.Volume = clampVolume(volume)
		} else {
			slog.Warn("Ignoring malformed volume preference", "value", v)
		}
	}
	if v, ok := stored[KeyShuffle]; ok {
		if shuffle, err := strconv.ParseBool(v); err == nil {
			prefs.Shuffle = shuffle
		} else {
			slog.Warn("Ignoring malformed shuffle preference", "value", v)
		}
	}
	prefs.Recent = stored[KeyRecent]
	return prefs, nil
}

// Shuffle reports whether shuffle is enabled. Read errors count as disabled.
func (s *Service) Shuffle(ctx context.Context) bool {
	v, ok, err := s.store.GetPreference(ctx, KeyShuffle)
	if err != nil {
		slog.Error("Failed to read shuffle preference", "error", err)
		return false
	}
	if !ok {
		return false
	}
	shuffle, _ := strconv.ParseBool(v)
	return shuffle
}

// SetVolume stores volume clamped to [0, 1] and returns the stored value.
func (s *Service) SetVolume(ctx context.Context, volume float64) (float64, error) {
	volume = clampVolume(volume)
	if err := s.store.SetPreference(ctx, KeyVolume, strconv.FormatFloat(volume, 'f', -1, 64)); err != nil {
		return 0, fmt.Errorf("failed to store volume: %w", err)
	}
	return volume, nil
}

func (s *Service) SetShuffle(ctx context.Context, shuffle bool) error {
	if err := s.store.SetPreference(ctx, KeyShuffle, strconv.FormatBool(shuffle)); err != nil {
		return fmt.Errorf("failed to store shuffle: %w", err)
	}
	return nil
}

// SetRecent remembers path as the most recently loaded one.
func (s *Service) SetRecent(ctx context.Context, path string) error {
	if err := s.store.SetPreference(ctx, KeyRecent, path); err != nil {
		return fmt.Errorf("failed to store recent path: %w", err)
	}
	return nil
}

func clampVolume(v float64) float64 {
	return min(max(v, 0), 1)
}
