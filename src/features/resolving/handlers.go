package resolving

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/contre95/playdir/src/media"
	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for playlist resolution
type Handler struct {
	service *Service
}

// NewHandler creates a new resolving handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Resolve resolves the path query parameter and returns the playable entries.
func (h *Handler) Resolve(c *fiber.Ctx) error {
	path := strings.TrimSpace(c.Query("path"))
	slog.Debug("Resolve handler called", "path", path)
	if path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "path is required",
		})
	}

	entries, err := h.service.Resolve(c.UserContext(), path, Options{Shuffle: c.QueryBool("shuffle", false)})
	if err != nil {
		return c.Status(StatusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"path":    path,
		"entries": entries,
		"count":   len(entries),
	})
}

// StatusFor maps a resolution error to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidPattern):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, media.ErrFetch):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
