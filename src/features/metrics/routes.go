package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes exposes the Prometheus registry on path.
func RegisterRoutes(app *fiber.App, path string) {
	if path == "" {
		path = "/metrics"
	}
	app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
}
