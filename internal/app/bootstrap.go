package app

import (
	"context"
	"fmt"
	"strings"

	"skillsift/internal/config"
	"skillsift/internal/delivery/http/handler"
	"skillsift/internal/delivery/http/middleware"
	"skillsift/internal/delivery/http/routes"
	v1 "skillsift/internal/delivery/http/routes/v1"
	"skillsift/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// bodyLimitSlack leaves room for multipart framing and form fields next to
// the largest accepted resume.
const bodyLimitSlack = 1 << 20

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(cfg config.Config, c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:   cfg.App.AppName,
		BodyLimit: int(cfg.Analysis.MaxFileSize) + bodyLimitSlack,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container and starts background workers. The returned
// cleanup stops them and releases connections.
func Bootstrap(ctx context.Context, cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, nil)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(ctx)
	go c.Hub.Run(hubCtx)

	app := New(cfg, c)
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(c.Logger, "/health", "/metrics")
	errMw := middleware.NewErrorMiddleware()
	app.Use(accessMw.Middleware())
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	components := map[string]handler.Pinger{"database": nil, "redis": nil, "broker": nil}
	if c.DB != nil {
		components["database"] = c.DB
	}
	if c.Cache != nil {
		components["redis"] = c.Cache
	}
	if c.Publisher.Enabled() {
		components["broker"] = c.Publisher
	}

	registry := routes.NewRegistry(
		handler.NewHealthHandler(components),
		ws.NewHandler(c.Hub, c.Logger),
		c.Metrics.Handler(),
		v1.Handlers{
			Analysis: handler.NewAnalysisHandler(c.Analysis),
			Core:     handler.NewCoreHandler(c.Analysis),
			Industry: handler.NewIndustryHandler(c.Industry),
			Market:   handler.NewMarketHandler(c.Market),
			Admin:    middleware.NewAdminMiddleware(c.JWT).Middleware(),
		},
	)
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
