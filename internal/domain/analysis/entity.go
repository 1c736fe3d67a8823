package analysis

import (
	"time"

	"skillsift/internal/domain/matching"
	"skillsift/internal/domain/skill"

	"github.com/google/uuid"
)

type Kind string

const (
	KindText   Kind = "text"
	KindUpload Kind = "upload"
	KindRank   Kind = "rank"
)

// Analysis is one resume scored against one job description.
type Analysis struct {
	ID              uuid.UUID           `json:"id"`
	Kind            Kind                `json:"kind"`
	ResumeFilename  string              `json:"resume_filename,omitempty"`
	JobTitle        string              `json:"job_title,omitempty"`
	IndustryName    string              `json:"industry_name,omitempty"`
	JobURL          string              `json:"job_url,omitempty"`
	ResumeSkills    skill.Extraction    `json:"resume_skills"`
	JobRequirements []string            `json:"job_requirements"`
	Compatibility   matching.Result     `json:"compatibility"`
	Recommendations map[string][]string `json:"recommendations"`
	CreatedAt       time.Time           `json:"created_at"`
}
