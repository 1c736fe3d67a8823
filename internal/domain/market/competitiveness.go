package market

import (
	"math"
	"strings"
)

const (
	demandWeight      = 40.0
	marketSkillWeight = 60.0
	maxMarketScore    = 100
	nextStepsLimit    = 3
)

type SalarySummary struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Median   int    `json:"median"`
	Currency string `json:"currency"`
}

type DemandSummary struct {
	DemandScore float64  `json:"demand_score"`
	GrowthRate  *float64 `json:"growth_rate,omitempty"`
	Openings    *int     `json:"openings,omitempty"`
	TimePeriod  string   `json:"time_period,omitempty"`
}

type Insight struct {
	Trend       string `json:"trend"`
	Description string `json:"description"`
}

type Competitiveness struct {
	MarketScore     int            `json:"market_score"`
	SalaryRange     *SalarySummary `json:"salary_range"`
	DemandInfo      *DemandSummary `json:"demand_info"`
	NextCareerSteps []CareerStep   `json:"next_career_steps"`
	MarketInsights  []Insight      `json:"market_insights"`
}

// Inputs gathers whatever market records were found for a candidate and
// job. Absent records are nil.
type Inputs struct {
	CandidateSkills []string
	Salary          *SalaryRange
	Demand          *Demand
	Path            *CareerPath
	Trends          []Trend
}

// Compete scores market competitiveness: demand contributes up to 40 points
// and coverage of the career path's required skills up to 60, capped at 100.
func Compete(in Inputs) Competitiveness {
	out := Competitiveness{
		NextCareerSteps: []CareerStep{},
		MarketInsights:  []Insight{},
	}

	score := 0.0
	if in.Salary != nil {
		out.SalaryRange = &SalarySummary{
			Min:      in.Salary.MinSalary,
			Max:      in.Salary.MaxSalary,
			Median:   in.Salary.MedianSalary,
			Currency: in.Salary.Currency,
		}
	}
	if in.Demand != nil {
		out.DemandInfo = &DemandSummary{
			DemandScore: in.Demand.DemandScore,
			GrowthRate:  in.Demand.GrowthRate,
			Openings:    in.Demand.NumOpenings,
			TimePeriod:  in.Demand.TimePeriod,
		}
		score += in.Demand.DemandScore * demandWeight
	}
	if in.Path != nil {
		if steps := in.Path.NextSteps(nextStepsLimit); len(steps) > 0 {
			out.NextCareerSteps = steps
		}
		score += skillCoverage(in.CandidateSkills, in.Path.SkillRequirements["required"]) * marketSkillWeight
	}
	for _, t := range in.Trends {
		out.MarketInsights = append(out.MarketInsights, Insight{Trend: t.TrendName, Description: t.Description})
	}

	out.MarketScore = clampScore(int(math.Round(score)))
	return out
}

func skillCoverage(candidate, required []string) float64 {
	if len(required) == 0 {
		return 0
	}
	have := make(map[string]struct{}, len(candidate))
	for _, s := range candidate {
		have[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	matched := 0
	for _, r := range required {
		if _, ok := have[strings.ToLower(strings.TrimSpace(r))]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(required))
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > maxMarketScore {
		return maxMarketScore
	}
	return v
}
