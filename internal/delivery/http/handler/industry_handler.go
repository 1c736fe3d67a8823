package handler

import (
	"context"
	"errors"

	"skillsift/internal/delivery/http/dto"
	"skillsift/internal/delivery/http/middleware"
	domind "skillsift/internal/domain/industry"
	"skillsift/internal/pkg/response"
	industryuc "skillsift/internal/usecase/industry"

	"github.com/gofiber/fiber/v3"
)

type IndustryUsecase interface {
	List(ctx context.Context) ([]domind.SkillSet, error)
	Get(ctx context.Context, name string) (domind.SkillSet, error)
	Create(ctx context.Context, name string, skills []string) (domind.SkillSet, error)
	Update(ctx context.Context, name string, skills []string) (domind.SkillSet, error)
	Delete(ctx context.Context, name string) error
}

type IndustryHandler struct {
	uc IndustryUsecase
}

func NewIndustryHandler(uc IndustryUsecase) *IndustryHandler {
	return &IndustryHandler{uc: uc}
}

// RegisterRoutes mounts reads publicly and writes behind admin.
func (h *IndustryHandler) RegisterRoutes(r fiber.Router, admin fiber.Handler) {
	if r == nil {
		return
	}

	grp := r.Group("/industries")
	grp.Get("", h.List)
	grp.Get("/:name", h.Get)
	grp.Post("", admin, h.Create)
	grp.Put("/:name", admin, h.Update)
	grp.Delete("/:name", admin, h.Delete)
}

func (h *IndustryHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return mapIndustryUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *IndustryHandler) Get(c fiber.Ctx) error {
	it, err := h.uc.Get(c.Context(), c.Params("name"))
	if err != nil {
		return mapIndustryUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, it)
}

func (h *IndustryHandler) Create(c fiber.Ctx) error {
	var req dto.CreateIndustryRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	it, err := h.uc.Create(c.Context(), req.IndustryName, req.Skills)
	if err != nil {
		return mapIndustryUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, it)
}

func (h *IndustryHandler) Update(c fiber.Ctx) error {
	var req dto.UpdateIndustryRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	it, err := h.uc.Update(c.Context(), c.Params("name"), req.Skills)
	if err != nil {
		return mapIndustryUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, it)
}

func (h *IndustryHandler) Delete(c fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("name")); err != nil {
		return mapIndustryUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapIndustryUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, industryuc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid industry", nil, err)
	case errors.Is(err, industryuc.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Industry not found", nil, err)
	case errors.Is(err, industryuc.ErrUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Industry storage unavailable", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
