package preferences

import "github.com/gofiber/fiber/v2"

// RegisterRoutes registers the preferences routes
func RegisterRoutes(app *fiber.App, handler *Handler) {
	prefs := app.Group("/api/preferences")
	prefs.Get("/", handler.GetPreferences)
	prefs.Put("/volume", handler.UpdateVolume)
	prefs.Put("/shuffle", handler.UpdateShuffle)
}
