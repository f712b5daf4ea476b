package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/contre95/playdir/src/features/config"
	"github.com/contre95/playdir/src/features/hosting"
	"github.com/contre95/playdir/src/features/logging"
	"github.com/contre95/playdir/src/features/playback"
	"github.com/contre95/playdir/src/features/preferences"
	"github.com/contre95/playdir/src/features/resolving"
	"github.com/contre95/playdir/src/features/ui"
	"github.com/contre95/playdir/src/infra/autoindex"
	"github.com/contre95/playdir/src/infra/database"
	"github.com/contre95/playdir/src/infra/listing"
	"github.com/contre95/playdir/src/infra/sessions"
	"github.com/contre95/playdir/src/infra/tag"
	"github.com/contre95/playdir/src/infra/watcher"
)

const configPath = "config.yaml"

func main() {
	// Load configuration
	cfgManager, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Setup default logger with slog
	logger := logging.SetupLogger(cfgManager)
	slog.SetDefault(logger)
	cfgManager.OnReload(func(*config.Config) {
		slog.SetDefault(logging.SetupLogger(cfgManager))
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Listing fetcher and index page parser
	listingCfg := cfgManager.Get().Listing
	fetcher, err := listing.NewHTTPFetcher(listing.Options{
		BaseURL:        listingCfg.BaseURL,
		UserAgent:      listingCfg.UserAgent,
		Timeout:        listingCfg.Timeout,
		TolerateStatus: listingCfg.TolerateStatus,
	})
	if err != nil {
		log.Fatalf("failed to create listing fetcher: %v", err)
	}
	resolvingService := resolving.NewService(fetcher, autoindex.NewExtractor(), cfgManager)

	// Preferences
	db, err := database.NewSqliteStore(cfgManager.Get().Database.Path)
	if err != nil {
		log.Fatalf("failed to open preferences database: %v", err)
	}
	defer db.Close()
	preferencesService := preferences.NewService(db)

	// Playback sessions
	tagReader := tag.NewRemoteTagReader(listingCfg.UserAgent, listingCfg.Timeout)
	sessionStore := sessions.NewInMemoryStore(sessions.DefaultCapacity)
	playbackService := playback.NewService(resolvingService, preferencesService, fetcher, sessionStore, tagReader)

	// Reload the config file on change
	if cfgManager.Get().WatchConfig {
		events := make(chan watcher.FileEvent, 1)
		configWatcher, err := watcher.NewWatcher(events, watcher.DefaultDebounce)
		if err != nil {
			slog.Error("Failed to create config watcher", "error", err)
		} else if err := configWatcher.Start(ctx, configPath); err != nil {
			slog.Error("Failed to start config watcher", "error", err)
		} else {
			defer configWatcher.Stop()
			go func() {
				for {
					select {
					case <-events:
						if err := cfgManager.Reload(configPath); err != nil {
							slog.Error("Keeping previous configuration", "error", err)
						}
					case <-ctx.Done():
						return
					}
				}
			}()
		}
	}

	// Create and start the HTTP server
	server := hosting.NewServer(cfgManager, hosting.Handlers{
		Resolving:   resolving.NewHandler(resolvingService),
		Playback:    playback.NewHandler(playbackService),
		Preferences: preferences.NewHandler(preferencesService),
		UI:          ui.NewHandler(cfgManager, preferencesService),
	})
	go func() {
		if err := server.Start(); err != nil {
			slog.Error("Server stopped", "error", err)
		}
	}()
	slog.Info("Server started. Press Ctrl+C to shut down.", "port", cfgManager.Get().Server.Port, "base_url", listingCfg.BaseURL)

	// Wait for a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	if err := server.Shutdown(); err != nil {
		log.Fatalf("failed to shutdown server: %v", err)
	}
	slog.Info("Server gracefully shut down.")
}
