package routes

import (
	"career-portal/internal/delivery/http/handler"
	"career-portal/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// Handlers is every HTTP surface the API mounts. A nil handler is skipped.
type Handlers struct {
	Health   *handler.HealthHandler
	Auth     *handler.AuthHandler
	Users    *handler.UserHandler
	Resume   *handler.ResumeHandler
	Jobs     *handler.JobsHandler
	Courses  *handler.CourseHandler
	Insights *handler.InsightsHandler
	Chat     *handler.ChatHandler
	Realtime RouteRegistrar
}

// RouteRegistrar is implemented by handlers living outside the http package.
type RouteRegistrar interface {
	RegisterRoutes(r fiber.Router)
}

type Registry struct {
	handlers Handlers
	auth     *middleware.AuthMiddleware
}

func NewRegistry(handlers Handlers, auth *middleware.AuthMiddleware) *Registry {
	return &Registry{handlers: handlers, auth: auth}
}

// Register mounts /health, /api/health and the /api/v1 tree. Extra handlers run
// before every /api route (rate limiting, for instance).
func (r *Registry) Register(app *fiber.App, apiMiddleware ...any) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	api := app.Group("/api", apiMiddleware...)
	r.registerHealth(api)
	r.registerV1(api.Group("/v1"))
}

func (r *Registry) registerHealth(router fiber.Router) {
	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(router)
	}
}

func (r *Registry) registerV1(v1 fiber.Router) {
	h := r.handlers
	required := r.auth.Middleware()

	if h.Auth != nil {
		h.Auth.RegisterRoutes(v1.Group("/auth"), r.auth)
	}
	if h.Users != nil {
		h.Users.RegisterRoutes(v1.Group("/users", required))
	}
	if h.Resume != nil {
		h.Resume.RegisterRoutes(v1.Group("/resume", required))
	}
	if h.Jobs != nil {
		h.Jobs.RegisterRoutes(v1.Group("/jobs"), r.auth)
	}
	if h.Courses != nil {
		h.Courses.RegisterRoutes(v1.Group("/courses"), r.auth)
	}
	if h.Insights != nil {
		h.Insights.RegisterSkillRoutes(v1.Group("/skills", required))
		h.Insights.RegisterProgressRoutes(v1.Group("/progress", required))
	}
	if h.Chat != nil {
		h.Chat.RegisterRoutes(v1.Group("/chat", required))
	}
	if h.Realtime != nil {
		h.Realtime.RegisterRoutes(v1)
	}
}
