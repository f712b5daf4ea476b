package hosting

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/contre95/playdir/src/features/metrics"
	"github.com/gofiber/fiber/v2"
)

// LogAllRequestsMiddleware logs every request, failures at error level
func LogAllRequestsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		if status >= 400 {
			slog.Error("HTTP request",
				"method", c.Method(),
				"path", c.Path(),
				"status", status,
				"duration", duration.String(),
				"error", err,
			)
		} else {
			slog.Debug("HTTP request",
				"method", c.Method(),
				"path", c.Path(),
				"status", status,
				"duration", duration.String(),
			)
		}
		return err
	}
}

// MetricsMiddleware records request counts and latency per route pattern.
// Scrapes of metricsPath are not counted.
func MetricsMiddleware(metricsPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isMetricsPath(c.Path(), metricsPath) {
			return c.Next()
		}
		start := time.Now()

		err := c.Next()

		// Route patterns keep session ids out of the label set
		route := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
