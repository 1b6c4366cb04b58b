package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"career-portal/internal/config"
	"career-portal/internal/delivery/http/handler"
	"career-portal/internal/delivery/http/middleware"
	"career-portal/internal/delivery/http/routes"
	"career-portal/internal/pkg/logger"
	"career-portal/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the Fiber app on top of an already wired container.
func New(c *Container) *App {
	cfg := c.Config
	f := fiber.New(fiber.Config{
		AppName:      cfg.App.AppName,
		BodyLimit:    cfg.App.BodyLimit,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	registerGlobalMiddleware(f, cfg, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, starts the websocket hub and returns the app
// with a cleanup func that stops the hub and releases connections.
func Bootstrap(cfg config.Config, log *logger.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return New(c), cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, log *logger.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(log).Middleware())
	app.Use(middleware.NewErrorMiddleware(log).Middleware())
	app.Use(helmet.New())
	app.Use(compress.New())

	corsCfg := cors.Config{
		AllowMethods: []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete, fiber.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
	}
	if len(cfg.App.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.App.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	app.Use(cors.New(corsCfg))
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	checks := map[string]handler.HealthCheck{
		"database": c.DB.Ping,
		"redis":    c.Cache.Ping,
	}

	auth := middleware.NewAuthMiddleware(c.JWT)
	registry := routes.NewRegistry(routes.Handlers{
		Health:   handler.NewHealthHandler(c.Config.App.Environment, checks).Optional("redis"),
		Auth:     handler.NewAuthHandler(c.Auth),
		Users:    handler.NewUserHandler(c.Profile),
		Resume:   handler.NewResumeHandler(c.Resume),
		Jobs:     handler.NewJobsHandler(c.Jobs),
		Courses:  handler.NewCourseHandler(c.Courses),
		Insights: handler.NewInsightsHandler(c.Skills, c.Progress),
		Chat:     handler.NewChatHandler(c.Chat),
		Realtime: ws.NewHandler(c.Hub, c.JWT, c.Config.App.CORSOrigins, c.Logger),
	}, auth)

	registry.Register(app, rateLimiter(c.Config.RateLimit))
}

func rateLimiter(cfg config.RateLimitConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        cfg.Max,
		Expiration: cfg.Window,
		LimitReached: func(c fiber.Ctx) error {
			return middleware.NewAppError(fiber.StatusTooManyRequests, "Too many requests from this IP, please try again later.", nil, nil)
		},
	})
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
