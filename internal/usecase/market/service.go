package market

import (
	"context"
	"errors"
	"log"
	"strings"

	"skillsift/internal/domain/market"
	"skillsift/internal/repository"
	"skillsift/internal/search"
	"skillsift/internal/usecase"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("market data not found")
	ErrUnavailable  = errors.New("market storage unavailable")
	ErrInternal     = errors.New("internal error")
)

const (
	defaultTrendLimit   = 5
	maxTrendLimit       = 50
	defaultSimilarLimit = 5
	maxTitleVariants    = 4
)

// FailureRecorder counts lookups that failed and were reported as absence.
type FailureRecorder interface {
	EnrichmentFailed(lookup string)
}

type Service struct {
	repo     repository.MarketDataRepository
	cache    usecase.JSONCache
	failures FailureRecorder
	logger   *log.Logger
}

func NewService(repo repository.MarketDataRepository, c usecase.JSONCache, failures FailureRecorder, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{repo: repo, cache: c, failures: failures, logger: logger}
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (s *Service) internal(op string, err error) error {
	s.logger.Printf("[Market] %s failed | err=%v", op, err)
	return ErrInternal
}

func (s *Service) CreateSalaryRange(ctx context.Context, in market.SalaryRange) (market.SalaryRange, error) {
	if s.repo == nil {
		return market.SalaryRange{}, ErrUnavailable
	}
	in.JobTitle = clean(in.JobTitle)
	in.IndustryName = clean(in.IndustryName)
	if in.JobTitle == "" || in.IndustryName == "" || in.MinSalary < 0 || in.MaxSalary < in.MinSalary {
		return market.SalaryRange{}, ErrInvalidInput
	}
	if in.MedianSalary == 0 {
		in.MedianSalary = (in.MinSalary + in.MaxSalary) / 2
	}
	if in.MedianSalary < in.MinSalary || in.MedianSalary > in.MaxSalary {
		return market.SalaryRange{}, ErrInvalidInput
	}
	switch in.ExperienceLevel {
	case "", market.LevelEntry, market.LevelMid, market.LevelSenior:
	default:
		return market.SalaryRange{}, ErrInvalidInput
	}
	if in.Currency == "" {
		in.Currency = "USD"
	}
	out, err := s.repo.CreateSalaryRange(ctx, in)
	if err != nil {
		return market.SalaryRange{}, s.internal("create salary range", err)
	}
	s.invalidate(ctx, out.IndustryName)
	return out, nil
}

func (s *Service) ListSalaryRanges(ctx context.Context, title, industryName string) ([]market.SalaryRange, error) {
	if s.repo == nil {
		return nil, ErrUnavailable
	}
	title = clean(title)
	if title == "" {
		return nil, ErrInvalidInput
	}
	out, err := s.repo.ListSalaryRanges(ctx, title, clean(industryName))
	if err != nil {
		return nil, s.internal("list salary ranges", err)
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

func (s *Service) CreateDemand(ctx context.Context, in market.Demand) (market.Demand, error) {
	if s.repo == nil {
		return market.Demand{}, ErrUnavailable
	}
	in.JobTitle = clean(in.JobTitle)
	in.IndustryName = clean(in.IndustryName)
	if in.JobTitle == "" || in.IndustryName == "" || in.DemandScore < 0 || in.DemandScore > 1 {
		return market.Demand{}, ErrInvalidInput
	}
	if in.NumOpenings != nil && *in.NumOpenings < 0 {
		return market.Demand{}, ErrInvalidInput
	}
	out, err := s.repo.CreateDemand(ctx, in)
	if err != nil {
		return market.Demand{}, s.internal("create demand", err)
	}
	s.invalidate(ctx, out.IndustryName)
	return out, nil
}

func (s *Service) ListDemand(ctx context.Context, title, industryName string) ([]market.Demand, error) {
	if s.repo == nil {
		return nil, ErrUnavailable
	}
	title = clean(title)
	if title == "" {
		return nil, ErrInvalidInput
	}
	out, err := s.repo.ListDemand(ctx, title, clean(industryName))
	if err != nil {
		return nil, s.internal("list demand", err)
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

func (s *Service) CreateCareerPath(ctx context.Context, in market.CareerPath) (market.CareerPath, error) {
	if s.repo == nil {
		return market.CareerPath{}, ErrUnavailable
	}
	in.StartingRole = clean(in.StartingRole)
	in.IndustryName = clean(in.IndustryName)
	if in.StartingRole == "" || in.IndustryName == "" || len(in.PathSteps) == 0 {
		return market.CareerPath{}, ErrInvalidInput
	}
	for _, st := range in.PathSteps {
		if clean(st.Role) == "" {
			return market.CareerPath{}, ErrInvalidInput
		}
	}
	out, err := s.repo.CreateCareerPath(ctx, in)
	if err != nil {
		return market.CareerPath{}, s.internal("create career path", err)
	}
	s.invalidate(ctx, out.IndustryName)
	return out, nil
}

func (s *Service) ListCareerPaths(ctx context.Context, role, industryName string) ([]market.CareerPath, error) {
	if s.repo == nil {
		return nil, ErrUnavailable
	}
	role = clean(role)
	if role == "" {
		return nil, ErrInvalidInput
	}
	out, err := s.repo.ListCareerPaths(ctx, role, clean(industryName))
	if err != nil {
		return nil, s.internal("list career paths", err)
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

func (s *Service) CreateTrend(ctx context.Context, in market.Trend) (market.Trend, error) {
	if s.repo == nil {
		return market.Trend{}, ErrUnavailable
	}
	in.IndustryName = clean(in.IndustryName)
	in.TrendName = clean(in.TrendName)
	if in.IndustryName == "" || in.TrendName == "" || in.RelevanceScore < 0 || in.RelevanceScore > 1 {
		return market.Trend{}, ErrInvalidInput
	}
	out, err := s.repo.UpsertTrend(ctx, in)
	if err != nil {
		return market.Trend{}, s.internal("upsert trend", err)
	}
	s.invalidate(ctx, out.IndustryName)
	return out, nil
}

func (s *Service) ListTrends(ctx context.Context, industryName string, limit int) ([]market.Trend, error) {
	if s.repo == nil {
		return nil, ErrUnavailable
	}
	industryName = clean(industryName)
	if industryName == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultTrendLimit
	}
	if limit > maxTrendLimit {
		limit = maxTrendLimit
	}
	out, err := s.repo.ListTrends(ctx, industryName, limit)
	if err != nil {
		return nil, s.internal("list trends", err)
	}
	return out, nil
}

// SimilarJobTitles searches stored titles for the query and its expansions
// (synonyms, seniority stripped) and returns them most relevant first.
func (s *Service) SimilarJobTitles(ctx context.Context, title string, limit int) ([]string, error) {
	if s.repo == nil {
		return nil, ErrUnavailable
	}
	q := search.ProcessQuery(title)
	if q.Normalized == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultSimilarLimit
	}

	variants := q.Variants
	if len(variants) > maxTitleVariants {
		variants = variants[:maxTitleVariants]
	}
	found := make([]string, 0, limit)
	for _, v := range variants {
		titles, err := s.repo.SimilarJobTitles(ctx, v, limit)
		if err != nil {
			return nil, s.internal("similar job titles", err)
		}
		found = append(found, titles...)
	}

	out := search.RankTitles(found, q)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type AnalyzeInput struct {
	CandidateSkills   []string
	YearsOfExperience float64
	JobTitle          string
	IndustryName      string
}

// Analyze scores how competitive a candidate is in the market for a role.
func (s *Service) Analyze(ctx context.Context, in AnalyzeInput) (market.Competitiveness, error) {
	if s.repo == nil {
		return market.Competitiveness{}, ErrUnavailable
	}
	in.JobTitle = clean(in.JobTitle)
	in.IndustryName = clean(in.IndustryName)
	if in.JobTitle == "" || in.IndustryName == "" || in.YearsOfExperience < 0 {
		return market.Competitiveness{}, ErrInvalidInput
	}

	inputs := market.Inputs{CandidateSkills: in.CandidateSkills}
	if v, ok := s.SalaryRange(ctx, in.JobTitle, in.IndustryName, market.LevelForYears(in.YearsOfExperience)); ok {
		inputs.Salary = &v
	}
	if v, ok := s.JobMarketDemand(ctx, in.JobTitle, in.IndustryName); ok {
		inputs.Demand = &v
	}
	if v, ok := s.CareerPath(ctx, in.JobTitle, in.IndustryName); ok {
		inputs.Path = &v
	}
	inputs.Trends = s.IndustryTrends(ctx, in.IndustryName, 3)

	return market.Compete(inputs), nil
}
