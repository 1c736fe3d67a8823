package market

import (
	"context"
	"errors"
	"strconv"

	"skillsift/internal/domain/market"
	"skillsift/internal/infrastructure/cache"
	"skillsift/internal/repository"
)

// The lookups below satisfy matching.MarketDataProvider. Every failure is
// logged and reported as absence.

func (s *Service) SalaryRange(ctx context.Context, jobTitle, industryName string, level market.ExperienceLevel) (market.SalaryRange, bool) {
	return lookup(ctx, s, "salary_range", cache.MarketKey("salary", industryName, jobTitle, string(level)), func() (market.SalaryRange, error) {
		return s.repo.FindSalaryRange(ctx, clean(jobTitle), clean(industryName), level)
	})
}

func (s *Service) JobMarketDemand(ctx context.Context, jobTitle, industryName string) (market.Demand, bool) {
	return lookup(ctx, s, "job_market_demand", cache.MarketKey("demand", industryName, jobTitle), func() (market.Demand, error) {
		return s.repo.FindDemand(ctx, clean(jobTitle), clean(industryName))
	})
}

func (s *Service) CareerPath(ctx context.Context, role, industryName string) (market.CareerPath, bool) {
	return lookup(ctx, s, "career_path", cache.MarketKey("career", industryName, role), func() (market.CareerPath, error) {
		return s.repo.FindCareerPath(ctx, clean(role), clean(industryName))
	})
}

func (s *Service) IndustryTrends(ctx context.Context, industryName string, limit int) []market.Trend {
	if limit <= 0 {
		limit = defaultTrendLimit
	}
	trends, ok := lookup(ctx, s, "industry_trends", cache.MarketKey("trends", industryName, strconv.Itoa(limit)), func() ([]market.Trend, error) {
		return s.repo.ListTrends(ctx, clean(industryName), limit)
	})
	if !ok {
		return nil
	}
	return trends
}

func lookup[T any](ctx context.Context, s *Service, name, key string, load func() (T, error)) (T, bool) {
	var zero T
	if s == nil || s.repo == nil {
		return zero, false
	}

	if s.cache != nil {
		var cached T
		if found, err := s.cache.GetJSON(ctx, key, &cached); err == nil && found {
			return cached, true
		}
	}

	v, err := load()
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Printf("[Market] lookup failed | lookup=%s err=%v", name, err)
			if s.failures != nil {
				s.failures.EnrichmentFailed(name)
			}
		}
		return zero, false
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, v, 0)
	}
	return v, true
}

func (s *Service) invalidate(ctx context.Context, industryName string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateIndustry(ctx, industryName); err != nil {
		s.logger.Printf("[Cache] invalidate failed | industry=%s err=%v", industryName, err)
	}
}
