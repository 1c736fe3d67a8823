package matching

import (
	"context"

	"skillsift/internal/domain/market"
)

// IndustrySkillProvider returns the canonical skill set of an industry.
// The boolean is false when no set is available, including on lookup
// failure.
type IndustrySkillProvider interface {
	IndustrySkills(ctx context.Context, industry string) ([]string, bool)
}

// MarketDataProvider supplies optional market records. Implementations
// report failures as absence and never return errors to the scorer.
type MarketDataProvider interface {
	SalaryRange(ctx context.Context, jobTitle, industry string, level market.ExperienceLevel) (market.SalaryRange, bool)
	JobMarketDemand(ctx context.Context, jobTitle, industry string) (market.Demand, bool)
	CareerPath(ctx context.Context, role, industry string) (market.CareerPath, bool)
	IndustryTrends(ctx context.Context, industry string, limit int) []market.Trend
}
