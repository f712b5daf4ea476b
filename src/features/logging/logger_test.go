package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/contre95/playdir/src/features/config"
)

func TestSetupLogger_Level(t *testing.T) {
	tests := []struct {
		level     string
		debug     bool
		info      bool
		errorOnly bool
	}{
		{"debug", true, true, false},
		{"info", false, true, false},
		{"", false, true, false},
		{"error", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := config.NewManager(&config.Config{Logger: config.Logger{Enabled: false, Level: tt.level}})
			logger := SetupLogger(cfg)
			ctx := context.Background()
			if got := logger.Enabled(ctx, slog.LevelDebug); got != tt.debug {
				t.Errorf("debug enabled = %v, want %v", got, tt.debug)
			}
			if got := logger.Enabled(ctx, slog.LevelInfo); got != tt.info {
				t.Errorf("info enabled = %v, want %v", got, tt.info)
			}
			if tt.errorOnly && !logger.Enabled(ctx, slog.LevelError) {
				t.Error("expected error level to be enabled")
			}
		})
	}
}

func TestSetupLogger_FollowsReload(t *testing.T) {
	cfg := config.NewManager(&config.Config{Logger: config.Logger{Level: "info"}})
	logger := SetupLogger(cfg)
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug to be disabled at info level")
	}

	cfg.Update(&config.Config{Logger: config.Logger{Level: "debug"}})
	logger = SetupLogger(cfg)
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected a rebuilt logger to pick up the debug level")
	}
}
