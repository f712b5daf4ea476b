package playback

import (
	"errors"
	"log/slog"

	"github.com/contre95/playdir/src/features/resolving"
	"github.com/gofiber/fiber/v2"
)

// Handler handles playback requests
type Handler struct {
	service *Service
}

// NewHandler creates a new playback handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateSession resolves the path form value into a new session
func (h *Handler) CreateSession(c *fiber.Ctx) error {
	path := c.FormValue("path", c.Query("path"))
	previous := c.FormValue("previous", c.Query("previous"))
	slog.Debug("CreateSession handler called", "path", path, "previous", previous)

	if path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "path is required",
		})
	}

	session, err := h.service.Load(c.UserContext(), path, previous)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session.View())
}

// GetSession returns a session
func (h *Handler) GetSession(c *fiber.Ctx) error {
	session, err := h.service.Get(c.Params("id"))
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(session.View())
}

// DeleteSession discards a session
func (h *Handler) DeleteSession(c *fiber.Ctx) error {
	if err := h.service.Close(c.Params("id")); err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// SetTrack moves a session to the index path parameter
func (h *Handler) SetTrack(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "index must be a number",
		})
	}
	session, err := h.service.Set(c.Params("id"), index)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(session.View())
}

// NextTrack advances a session
func (h *Handler) NextTrack(c *fiber.Ctx) error {
	session, err := h.service.Next(c.Params("id"))
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(session.View())
}

// PrevTrack steps a session back
func (h *Handler) PrevTrack(c *fiber.Ctx) error {
	session, err := h.service.Prev(c.Params("id"))
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(session.View())
}

// SearchTracks filters the tracks of a session
func (h *Handler) SearchTracks(c *fiber.Ctx) error {
	tracks, err := h.service.Search(c.Params("id"), c.Query("q"))
	if err != nil {
		return h.renderError(c, err)
	}
	if tracks == nil {
		tracks = []Track{}
	}
	return c.JSON(fiber.Map{
		"tracks": tracks,
		"count":  len(tracks),
	})
}

// GetTrackTags reads the embedded tags of a track
func (h *Handler) GetTrackTags(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "index must be a number",
		})
	}
	tags, err := h.service.Tags(c.UserContext(), c.Params("id"), index)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(tags)
}

func (h *Handler) renderError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrPathRequired):
		status = fiber.StatusBadRequest
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrTrackNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, resolving.ErrResolve):
		status = resolving.StatusFor(err)
	}
	if status >= fiber.StatusInternalServerError {
		slog.Error("Playback request failed", "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
