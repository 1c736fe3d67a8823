package v1

import (
	"skillsift/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// Handlers are the API v1 endpoints. Admin guards catalogue writes.
type Handlers struct {
	Analysis *handler.AnalysisHandler
	Core     *handler.CoreHandler
	Industry *handler.IndustryHandler
	Market   *handler.MarketHandler
	Admin    fiber.Handler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	admin := h.Admin
	if admin == nil {
		admin = func(c fiber.Ctx) error {
			return fiber.ErrServiceUnavailable
		}
	}

	if h.Analysis != nil {
		h.Analysis.RegisterRoutes(r, admin)
	}
	if h.Core != nil {
		h.Core.RegisterRoutes(r)
	}
	if h.Industry != nil {
		h.Industry.RegisterRoutes(r, admin)
	}
	if h.Market != nil {
		h.Market.RegisterRoutes(r, admin)
	}
}
