package resolving

import "github.com/gofiber/fiber/v2"

// RegisterRoutes registers the resolving routes
func RegisterRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")
	api.Get("/resolve", handler.Resolve)
}
