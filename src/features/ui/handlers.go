package ui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/contre95/playdir/src/features/config"
	"github.com/contre95/playdir/src/features/preferences"
	"github.com/gofiber/fiber/v2"
)

// Preferences loads the stored player settings.
type Preferences interface {
	Load(ctx context.Context) (preferences.Preferences, error)
}

// Handler is the handler for the UI feature.
type Handler struct {
	configManager *config.Manager
	preferences   Preferences
}

// NewHandler creates a new handler for the UI feature.
func NewHandler(configManager *config.Manager, preferences Preferences) *Handler {
	return &Handler{
		configManager: configManager,
		preferences:   preferences,
	}
}

// RenderPlayer renders the player page. The playlist path comes from the path
// query parameter, or the most recently loaded one.
func (h *Handler) RenderPlayer(c *fiber.Ctx) error {
	slog.Debug("RenderPlayer handler called")
	prefs, err := h.preferences.Load(c.UserContext())
	if err != nil {
		slog.Warn("Rendering player with default preferences", "error", err)
	}

	path := strings.TrimSpace(c.Query("path"))
	if path == "" {
		path = prefs.Recent
	}

	return c.Render("player", fiber.Map{
		"Title":   "Playdir",
		"Path":    path,
		"Volume":  prefs.Volume,
		"Shuffle": prefs.Shuffle,
		"BaseURL": h.configManager.Get().Listing.BaseURL,
	})
}
