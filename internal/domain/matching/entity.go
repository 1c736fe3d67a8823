package matching

import (
	"encoding/json"
	"errors"

	"skillsift/internal/domain/market"
)

type experienceKind int

const (
	experienceNone experienceKind = iota
	experienceYears
	experienceEntries
)

type ExperienceEntry struct {
	Title    string `json:"title,omitempty"`
	Company  string `json:"company,omitempty"`
	Duration string `json:"duration"`
}

// Experience is either a pre-aggregated number of years or a list of
// entries whose durations are summed. The zero value means no experience
// was supplied.
type Experience struct {
	kind    experienceKind
	years   float64
	entries []ExperienceEntry
}

func YearsOfExperience(years float64) Experience {
	return Experience{kind: experienceYears, years: years}
}

func ExperienceFromEntries(entries []ExperienceEntry) Experience {
	return Experience{kind: experienceEntries, entries: append([]ExperienceEntry(nil), entries...)}
}

func (e Experience) Supplied() bool {
	return e.kind != experienceNone
}

func (e Experience) Entries() []ExperienceEntry {
	if e.kind != experienceEntries {
		return nil
	}
	return append([]ExperienceEntry(nil), e.entries...)
}

// MarshalJSON renders years as a number and entries as a list.
func (e Experience) MarshalJSON() ([]byte, error) {
	switch e.kind {
	case experienceYears:
		return json.Marshal(e.years)
	case experienceEntries:
		return json.Marshal(e.entries)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a number of years, a list of entries or null.
func (e *Experience) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*e = Experience{}
		return nil
	}
	var years float64
	if err := json.Unmarshal(b, &years); err == nil {
		*e = YearsOfExperience(years)
		return nil
	}
	var entries []ExperienceEntry
	if err := json.Unmarshal(b, &entries); err == nil {
		*e = ExperienceFromEntries(entries)
		return nil
	}
	return errors.New("experience must be a number of years or a list of entries")
}

type Education struct {
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	Institution string `json:"institution,omitempty"`
}

type Candidate struct {
	Skills     []string    `json:"skills"`
	Experience Experience  `json:"experience"`
	Education  []Education `json:"education"`
}

type Job struct {
	RequiredSkills []string `json:"required_skills"`
	RequiredYears  float64  `json:"required_years"`
	EducationLevel string   `json:"education_level"`
	Title          string   `json:"title"`
	Industry       string   `json:"industry"`
}

// Components are the unrounded per-dimension scores in [0,1].
type Components struct {
	Skill      float64 `json:"skill"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
}

type MarketData struct {
	SalaryRange     *market.SalaryRange `json:"salary_range,omitempty"`
	JobMarketDemand *market.Demand      `json:"job_market_demand,omitempty"`
	CareerPath      []market.CareerStep `json:"career_path,omitempty"`
	IndustryTrends  []market.Trend      `json:"industry_trends,omitempty"`
}

func (m MarketData) Empty() bool {
	return m.SalaryRange == nil && m.JobMarketDemand == nil && len(m.CareerPath) == 0 && len(m.IndustryTrends) == 0
}

type Result struct {
	OverallScore            int        `json:"overall_score"`
	SkillScore              int        `json:"skill_score"`
	ExperienceScore         int        `json:"experience_score"`
	EducationScore          int        `json:"education_score"`
	MatchedSkills           []string   `json:"matched_skills"`
	SkillGaps               []string   `json:"skill_gaps"`
	IndustryRecommendations []string   `json:"industry_recommendations"`
	Recommendations         []string   `json:"recommendations"`
	MarketData              MarketData `json:"market_data"`
	Components              Components `json:"components"`
}
