package preferences

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for player preferences
type Handler struct {
	service *Service
}

// NewHandler creates a new preferences handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetPreferences returns all preferences
func (h *Handler) GetPreferences(c *fiber.Ctx) error {
	slog.Debug("GetPreferences handler called")
	prefs, err := h.service.Load(c.UserContext())
	if err != nil {
		slog.Error("Failed to load preferences", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load preferences",
		})
	}
	return c.JSON(prefs)
}

// UpdateVolume stores the volume form value
func (h *Handler) UpdateVolume(c *fiber.Ctx) error {
	volume, err := strconv.ParseFloat(c.FormValue("volume"), 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "volume must be a number between 0 and 1",
		})
	}

	stored, err := h.service.SetVolume(c.UserContext(), volume)
	if err != nil {
		slog.Error("Failed to update volume", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update volume",
		})
	}
	return c.JSON(fiber.Map{"volume": stored})
}

// UpdateShuffle stores the shuffle form value
func (h *Handler) UpdateShuffle(c *fiber.Ctx) error {
	shuffle, err := strconv.ParseBool(c.FormValue("shuffle"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "shuffle must be true or false",
		})
	}

	if err := h.service.SetShuffle(c.UserContext(), shuffle); err != nil {
		slog.Error("Failed to update shuffle", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update shuffle",
		})
	}
	slog.Info("Shuffle preference updated", "shuffle", shuffle)
	return c.JSON(fiber.Map{"shuffle": shuffle})
}
