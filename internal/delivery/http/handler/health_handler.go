package handler

import (
	"context"
	"time"

	"skillsift/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const (
	componentUp       = "up"
	componentDown     = "down"
	componentDisabled = "disabled"
)

// Pinger is any dependency that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	components map[string]Pinger
	timeout    time.Duration
}

// NewHealthHandler reports each named component. A nil Pinger is shown as
// disabled and never fails the check.
func NewHealthHandler(components map[string]Pinger) *HealthHandler {
	return &HealthHandler{components: components, timeout: 2 * time.Second}
}

type healthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	out := healthResponse{Status: componentUp, Components: make(map[string]string, len(h.components))}
	for name, p := range h.components {
		switch {
		case p == nil:
			out.Components[name] = componentDisabled
		case p.Ping(ctx) != nil:
			out.Components[name] = componentDown
			out.Status = "degraded"
		default:
			out.Components[name] = componentUp
		}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
