package market

import (
	"time"

	"github.com/google/uuid"
)

type ExperienceLevel string

const (
	LevelEntry  ExperienceLevel = "entry"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
)

// LevelForYears buckets total years of experience: entry below 2, mid below
// 5, senior from 5.
func LevelForYears(years float64) ExperienceLevel {
	switch {
	case years >= 5:
		return LevelSenior
	case years >= 2:
		return LevelMid
	default:
		return LevelEntry
	}
}

type SalaryRange struct {
	ID              uuid.UUID       `json:"id"`
	JobTitle        string          `json:"job_title"`
	IndustryName    string          `json:"industry_name"`
	Location        string          `json:"location,omitempty"`
	MinSalary       int             `json:"min_salary"`
	MaxSalary       int             `json:"max_salary"`
	MedianSalary    int             `json:"median_salary"`
	Currency        string          `json:"currency"`
	ExperienceLevel ExperienceLevel `json:"experience_level,omitempty"`
	Source          string          `json:"source,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type Demand struct {
	ID           uuid.UUID `json:"id"`
	JobTitle     string    `json:"job_title"`
	IndustryName string    `json:"industry_name"`
	Location     string    `json:"location,omitempty"`
	DemandScore  float64   `json:"demand_score"`
	GrowthRate   *float64  `json:"growth_rate,omitempty"`
	NumOpenings  *int      `json:"num_openings,omitempty"`
	TimePeriod   string    `json:"time_period,omitempty"`
	Source       string    `json:"source,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CareerStep struct {
	Role               string         `json:"role"`
	Description        string         `json:"description,omitempty"`
	RequiredSkills     []string       `json:"required_skills,omitempty"`
	AvgYearsExperience *float64       `json:"avg_years_experience,omitempty"`
	TypicalSalaryRange map[string]int `json:"typical_salary_range,omitempty"`
}

type CareerPath struct {
	ID                uuid.UUID           `json:"id"`
	StartingRole      string              `json:"starting_role"`
	IndustryName      string              `json:"industry_name"`
	PathSteps         []CareerStep        `json:"path_steps"`
	AvgTransitionTime map[string]int      `json:"avg_transition_time,omitempty"`
	SkillRequirements map[string][]string `json:"skill_requirements,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// NextSteps returns at most n leading steps of the path.
func (p CareerPath) NextSteps(n int) []CareerStep {
	if n <= 0 || len(p.PathSteps) == 0 {
		return nil
	}
	if len(p.PathSteps) < n {
		n = len(p.PathSteps)
	}
	return append([]CareerStep(nil), p.PathSteps[:n]...)
}

type Trend struct {
	ID             uuid.UUID `json:"id"`
	IndustryName   string    `json:"industry_name"`
	TrendName      string    `json:"trend_name"`
	Description    string    `json:"description"`
	RelevanceScore float64   `json:"relevance_score"`
	Source         string    `json:"source,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
