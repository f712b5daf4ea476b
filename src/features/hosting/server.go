package hosting

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/contre95/playdir/src/features/config"
	"github.com/contre95/playdir/src/features/metrics"
	"github.com/contre95/playdir/src/features/playback"
	"github.com/contre95/playdir/src/features/preferences"
	"github.com/contre95/playdir/src/features/resolving"
	"github.com/contre95/playdir/src/features/ui"
	"github.com/contre95/playdir/src/media"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

// Handlers groups the feature handlers mounted by the server.
type Handlers struct {
	Resolving   *resolving.Handler
	Playback    *playback.Handler
	Preferences *preferences.Handler
	UI          *ui.Handler
}

// Server is the HTTP server for the application.
type Server struct {
	app  *fiber.App
	port uint32
}

// NewServer creates a new HTTP server.
func NewServer(cfg *config.Manager, handlers Handlers) *Server {
	return NewServerWithViews(cfg, handlers, "./views")
}

// NewServerWithViews creates a new HTTP server rendering templates from viewsDir.
func NewServerWithViews(cfg *config.Manager, handlers Handlers, viewsDir string) *Server {
	engine := html.New(viewsDir, ".html")
	engine.Debug(cfg.Get().Logger.Level == "debug")
	engine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	engine.AddFunc("display", func(e media.Entry) string {
		return e.Display()
	})
	engine.AddFunc("percent", func(v float64) int {
		return int(v * 100)
	})

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				slog.Error("Internal Server Error", "path", c.Path(), "error", err)
			}
			return c.Status(code).SendString(err.Error())
		},
		AppName:               "Playdir",
		DisableStartupMessage: true,
		EnablePrintRoutes:     cfg.Get().Server.PrintRoutes,
	})

	metricsCfg := cfg.Get().Metrics
	app.Use(LogAllRequestsMiddleware())
	if metricsCfg.Enabled {
		app.Use(MetricsMiddleware(metricsCfg.Path))
	}

	app.Static("/", "./public")
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	ui.RegisterRoutes(app, handlers.UI)
	resolving.RegisterRoutes(app, handlers.Resolving)
	playback.RegisterRoutes(app, handlers.Playback)
	preferences.RegisterRoutes(app, handlers.Preferences)
	config.RegisterRoutes(app, cfg)
	if metricsCfg.Enabled {
		metrics.RegisterRoutes(app, metricsCfg.Path)
	}

	return &Server{app: app, port: cfg.Get().Server.Port}
}

// App exposes the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := ":" + fmt.Sprint(s.port)
	slog.Info("Starting HTTP server", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func isMetricsPath(path, metricsPath string) bool {
	return metricsPath != "" && strings.HasPrefix(path, metricsPath)
}
