package handler

import (
	"context"
	"errors"

	"skillsift/internal/delivery/http/dto"
	"skillsift/internal/delivery/http/middleware"
	"skillsift/internal/domain/matching"
	"skillsift/internal/domain/recommendation"
	"skillsift/internal/domain/skill"
	"skillsift/internal/pkg/response"
	analysisuc "skillsift/internal/usecase/analysis"

	"github.com/gofiber/fiber/v3"
)

// CoreUsecase exposes extraction, scoring and recommendations without
// persistence.
type CoreUsecase interface {
	ExtractSkills(text string, maxSkills int) (skill.Extraction, error)
	ExtractRequirements(description string, maxSkills int) ([]string, error)
	Score(ctx context.Context, c matching.Candidate, j matching.Job) (matching.Result, error)
	Recommend(in recommendation.Input) map[string][]string
}

type CoreHandler struct {
	uc CoreUsecase
}

func NewCoreHandler(uc CoreUsecase) *CoreHandler {
	return &CoreHandler{uc: uc}
}

func (h *CoreHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/skills/extract", h.ExtractSkills)
	r.Post("/jobs/requirements", h.ExtractRequirements)
	r.Post("/compatibility/score", h.Score)
	r.Post("/recommendations", h.Recommend)
}

func (h *CoreHandler) ExtractSkills(c fiber.Ctx) error {
	var req dto.ExtractSkillsRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	res, err := h.uc.ExtractSkills(req.Text, req.MaxSkills)
	if err != nil {
		return mapCoreError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ExtractSkillsResponse{
		Extraction: res,
		Names:      res.Names(),
	})
}

func (h *CoreHandler) ExtractRequirements(c fiber.Ctx) error {
	var req dto.ExtractRequirementsRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	res, err := h.uc.ExtractRequirements(req.Description, req.MaxSkills)
	if err != nil {
		return mapCoreError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ExtractRequirementsResponse{RequiredSkills: res})
}

func (h *CoreHandler) Score(c fiber.Ctx) error {
	var req dto.ScoreRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	res, err := h.uc.Score(c.Context(), req.Candidate, req.Job)
	if err != nil {
		return mapCoreError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *CoreHandler) Recommend(c fiber.Ctx) error {
	var req dto.RecommendRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	res := h.uc.Recommend(recommendation.Input{
		SkillGaps:       req.SkillGaps,
		ExperienceScore: req.ExperienceScore,
		EducationScore:  req.EducationScore,
		JobDescription:  req.JobDescription,
	})
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func mapCoreError(err error) error {
	switch {
	case errors.Is(err, analysisuc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, skill.ErrSkillExtraction):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Skill extraction failed", nil, err)
	case errors.Is(err, matching.ErrCompatibilityScoring):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Compatibility scoring failed", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
