package dto

import "skillsift/internal/domain/market"

type SalaryRangeRequest struct {
	JobTitle        string `json:"job_title" validate:"required,max=200"`
	IndustryName    string `json:"industry_name" validate:"required,max=100"`
	Location        string `json:"location" validate:"max=200"`
	MinSalary       int    `json:"min_salary" validate:"gte=0"`
	MaxSalary       int    `json:"max_salary" validate:"gtefield=MinSalary"`
	MedianSalary    int    `json:"median_salary" validate:"gte=0"`
	Currency        string `json:"currency" validate:"omitempty,len=3"`
	ExperienceLevel string `json:"experience_level" validate:"omitempty,oneof=entry mid senior"`
	Source          string `json:"source" validate:"max=200"`
}

type DemandRequest struct {
	JobTitle     string   `json:"job_title" validate:"required,max=200"`
	IndustryName string   `json:"industry_name" validate:"required,max=100"`
	Location     string   `json:"location" validate:"max=200"`
	DemandScore  float64  `json:"demand_score" validate:"gte=0,lte=1"`
	GrowthRate   *float64 `json:"growth_rate"`
	NumOpenings  *int     `json:"num_openings" validate:"omitempty,gte=0"`
	TimePeriod   string   `json:"time_period" validate:"max=50"`
	Source       string   `json:"source" validate:"max=200"`
}

type CareerPathRequest struct {
	StartingRole      string              `json:"starting_role" validate:"required,max=200"`
	IndustryName      string              `json:"industry_name" validate:"required,max=100"`
	PathSteps         []market.CareerStep `json:"path_steps" validate:"required,min=1,max=20"`
	AvgTransitionTime map[string]int      `json:"avg_transition_time"`
	SkillRequirements map[string][]string `json:"skill_requirements"`
}

type TrendRequest struct {
	IndustryName   string  `json:"industry_name" validate:"required,max=100"`
	TrendName      string  `json:"trend_name" validate:"required,max=200"`
	Description    string  `json:"description" validate:"max=2000"`
	RelevanceScore float64 `json:"relevance_score" validate:"gte=0,lte=1"`
	Source         string  `json:"source" validate:"max=200"`
}

type MarketAnalyzeRequest struct {
	CandidateSkills   []string `json:"candidate_skills" validate:"max=200,dive,max=100"`
	YearsOfExperience float64  `json:"years_of_experience" validate:"gte=0,lte=80"`
	JobTitle          string   `json:"job_title" validate:"required,max=200"`
	IndustryName      string   `json:"industry_name" validate:"required,max=100"`
}

type SimilarTitlesResponse struct {
	JobTitle      string   `json:"job_title"`
	SimilarTitles []string `json:"similar_titles"`
}
