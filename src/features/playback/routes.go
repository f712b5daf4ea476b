package playback

import "github.com/gofiber/fiber/v2"

// RegisterRoutes registers the playback routes
func RegisterRoutes(app *fiber.App, handler *Handler) {
	sessions := app.Group("/playback/sessions")
	sessions.Post("/", handler.CreateSession)
	sessions.Get("/:id", handler.GetSession)
	sessions.Delete("/:id", handler.DeleteSession)
	sessions.Post("/:id/set/:index", handler.SetTrack)
	sessions.Post("/:id/next", handler.NextTrack)
	sessions.Post("/:id/prev", handler.PrevTrack)
	sessions.Get("/:id/search", handler.SearchTracks)
	sessions.Get("/:id/tracks/:index/tags", handler.GetTrackTags)
}
