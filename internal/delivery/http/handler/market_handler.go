package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"skillsift/internal/delivery/http/dto"
	"skillsift/internal/delivery/http/middleware"
	"skillsift/internal/domain/market"
	"skillsift/internal/pkg/response"
	marketuc "skillsift/internal/usecase/market"

	"github.com/gofiber/fiber/v3"
)

type MarketUsecase interface {
	CreateSalaryRange(ctx context.Context, in market.SalaryRange) (market.SalaryRange, error)
	ListSalaryRanges(ctx context.Context, title, industryName string) ([]market.SalaryRange, error)
	CreateDemand(ctx context.Context, in market.Demand) (market.Demand, error)
	ListDemand(ctx context.Context, title, industryName string) ([]market.Demand, error)
	CreateCareerPath(ctx context.Context, in market.CareerPath) (market.CareerPath, error)
	ListCareerPaths(ctx context.Context, role, industryName string) ([]market.CareerPath, error)
	CreateTrend(ctx context.Context, in market.Trend) (market.Trend, error)
	ListTrends(ctx context.Context, industryName string, limit int) ([]market.Trend, error)
	SimilarJobTitles(ctx context.Context, title string, limit int) ([]string, error)
	Analyze(ctx context.Context, in marketuc.AnalyzeInput) (market.Competitiveness, error)
}

type MarketHandler struct {
	uc MarketUsecase
}

func NewMarketHandler(uc MarketUsecase) *MarketHandler {
	return &MarketHandler{uc: uc}
}

func (h *MarketHandler) RegisterRoutes(r fiber.Router, admin fiber.Handler) {
	if r == nil {
		return
	}

	grp := r.Group("/market")
	grp.Get("/salaries", h.ListSalaryRanges)
	grp.Post("/salaries", admin, h.CreateSalaryRange)
	grp.Get("/demand", h.ListDemand)
	grp.Post("/demand", admin, h.CreateDemand)
	grp.Get("/career-paths", h.ListCareerPaths)
	grp.Post("/career-paths", admin, h.CreateCareerPath)
	grp.Get("/trends/:industry", h.ListTrends)
	grp.Post("/trends", admin, h.CreateTrend)
	grp.Get("/similar-titles", h.SimilarJobTitles)
	grp.Post("/analyze", h.Analyze)
}

func (h *MarketHandler) ListSalaryRanges(c fiber.Ctx) error {
	items, err := h.uc.ListSalaryRanges(c.Context(), c.Query("job_title"), c.Query("industry"))
	if err != nil {
		return mapMarketUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *MarketHandler) CreateSalaryRange(c fiber.Ctx) error {
	var req dto.SalaryRangeRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	it, err := h.uc.CreateSalaryRange(c.Context(), market.SalaryRange{
		JobTitle:        req.JobTitle,
		IndustryName:    req.IndustryName,
		Location:        req.Location,
		MinSalary:       req.MinSalary,
		MaxSalary:       req.MaxSalary,
		MedianSalary:    req.MedianSalary,
		Currency:        strings.ToUpper(req.Currency),
		ExperienceLevel: market.ExperienceLevel(req.ExperienceLevel),
		Source:          req.Source,
	})
	if err != nil {
		return mapMarketUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, it)
}

func (h *MarketHandler) ListDemand(c fiber.Ctx) error {
	items, err := h.uc.ListDemand(c.Context(), c.Query("job_title"), c.Query("industry"))
	if err != nil {
		return mapMarketUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *MarketHandler) CreateDemand(c fiber.Ctx) error {
	var req dto.DemandRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	it, err := h.uc.CreateDemand(c.Context(), market.Demand{
		JobTitle:     req.JobTitle,
		IndustryName: req.IndustryName,
		Location:     req.Location,
		DemandScore:  req.DemandScore,
		GrowthRate:   req.GrowthRate,
		NumOpenings:  req.NumOpenings,
		TimePeriod:   req.TimePeriod,
		Source:       req.Source,
	})
	if err != nil {
		return mapMarketUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, it)
}

func (h *MarketHandler) ListCareerPaths(c fiber.Ctx) error {
	items, err := h.uc.ListCareerPaths(c.Context(), c.Query("role"), c.Query("industry"))
	if err != nil {
		return mapMarketUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *MarketHandler) CreateCareerPath(c fiber.Ctx) error {
	var req dto.CareerPathRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	it, err := h.uc.CreateCareerPath(c.Context(), market.CareerPath{
		StartingRole:      req.StartingRole,
		IndustryName:      req.IndustryName,
		PathSteps:         req.PathSteps,
		AvgTransitionTime: req.AvgTransitionTime,
		SkillRequirements: req.SkillRequirements,
	})
	if err != nil {
		return mapMarketUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, it)
}

func (h *MarketHandler) ListTrends(c fiber.Ctx) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	items, err := h.uc.ListTrends(c.Context(), c.Params("industry"), limit)
	if err != nil {
		return mapMarketUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *MarketHandler) CreateTrend(c fiber.Ctx) error {
	var req dto.TrendRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	it, err := h.uc.CreateTrend(c.Context(), market.Trend{
		IndustryName:   req.IndustryName,
		TrendName:      req.TrendName,
		Description:    req.Description,
		RelevanceScore: req.RelevanceScore,
		Source:         req.Source,
	})
	if err != nil {
		return mapMarketUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, it)
}

func (h *MarketHandler) SimilarJobTitles(c fiber.Ctx) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	title := c.Query("job_title")

	items, err := h.uc.SimilarJobTitles(c.Context(), title, limit)
	if err != nil {
		return mapMarketUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SimilarTitlesResponse{
		JobTitle:      title,
		SimilarTitles: items,
	})
}

func (h *MarketHandler) Analyze(c fiber.Ctx) error {
	var req dto.MarketAnalyzeRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	res, err := h.uc.Analyze(c.Context(), marketuc.AnalyzeInput{
		CandidateSkills:   req.CandidateSkills,
		YearsOfExperience: req.YearsOfExperience,
		JobTitle:          req.JobTitle,
		IndustryName:      req.IndustryName,
	})
	if err != nil {
		return mapMarketUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func queryInt(c fiber.Ctx, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", map[string]string{key: "number"}, err)
	}
	return v, nil
}

func mapMarketUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, marketuc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, marketuc.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Market data not found", nil, err)
	case errors.Is(err, marketuc.ErrUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Market storage unavailable", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
