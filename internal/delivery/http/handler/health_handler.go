package handler

import (
	"context"
	"time"

	"career-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	environment string
	checks      map[string]HealthCheck
	optional    map[string]bool
	now         func() time.Time
}

type healthResponse struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	Environment  string            `json:"environment"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(environment string, checks map[string]HealthCheck) *HealthHandler {
	if checks == nil {
		checks = map[string]HealthCheck{}
	}
	return &HealthHandler{environment: environment, checks: checks, optional: map[string]bool{}, now: time.Now}
}

// Optional marks dependencies whose outage degrades the service without
// failing the health check.
func (h *HealthHandler) Optional(names ...string) *HealthHandler {
	for _, n := range names {
		h.optional[n] = true
	}
	return h
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health answers 503 when a required dependency is down.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthCheckTimeout)
	defer cancel()

	res := healthResponse{
		Status:       "OK",
		Timestamp:    h.now().UTC(),
		Environment:  h.environment,
		Dependencies: make(map[string]string, len(h.checks)),
	}
	status := fiber.StatusOK
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			res.Dependencies[name] = "down"
			if h.optional[name] {
				if status == fiber.StatusOK {
					res.Status = "DEGRADED"
				}
				continue
			}
			res.Status = "ERROR"
			status = fiber.StatusServiceUnavailable
			continue
		}
		res.Dependencies[name] = "up"
	}
	return response.Success(c, status, res.Status, res)
}
