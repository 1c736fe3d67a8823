package dto

import (
	"skillsift/internal/domain/matching"
	"skillsift/internal/domain/skill"
)

type ExtractSkillsRequest struct {
	Text      string `json:"text" validate:"required,max=200000"`
	MaxSkills int    `json:"max_skills" validate:"gte=0,lte=200"`
}

type ExtractSkillsResponse struct {
	skill.Extraction
	Names []string `json:"names"`
}

type ExtractRequirementsRequest struct {
	Description string `json:"description" validate:"required,max=50000"`
	MaxSkills   int    `json:"max_skills" validate:"gte=0,lte=200"`
}

type ExtractRequirementsResponse struct {
	RequiredSkills []string `json:"required_skills"`
}

type ScoreRequest struct {
	Candidate matching.Candidate `json:"candidate"`
	Job       matching.Job       `json:"job"`
}

type RecommendRequest struct {
	SkillGaps       []string `json:"skill_gaps" validate:"max=100,dive,max=100"`
	ExperienceScore *float64 `json:"experience_score" validate:"omitempty,gte=0,lte=1"`
	EducationScore  *float64 `json:"education_score" validate:"omitempty,gte=0,lte=1"`
	JobDescription  string   `json:"job_description" validate:"max=50000"`
}
