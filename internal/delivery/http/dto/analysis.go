package dto

import (
	"time"

	domanalysis "skillsift/internal/domain/analysis"
	"skillsift/internal/domain/matching"
)

type EducationRequest struct {
	Degree      string `json:"degree" validate:"required,max=200"`
	Field       string `json:"field" validate:"max=200"`
	Institution string `json:"institution" validate:"max=200"`
}

type JobRequest struct {
	Description    string   `json:"description" validate:"max=50000"`
	URL            string   `json:"url" validate:"omitempty,url,max=2048"`
	RequiredSkills []string `json:"required_skills" validate:"max=100,dive,required,max=100"`
	RequiredYears  float64  `json:"required_years" validate:"gte=0,lte=60"`
	EducationLevel string   `json:"education_level" validate:"max=100"`
	Title          string   `json:"title" validate:"max=200"`
	Industry       string   `json:"industry" validate:"max=100"`
}

type AnalyzeRequest struct {
	ResumeText string              `json:"resume_text" validate:"required,max=200000"`
	Experience matching.Experience `json:"experience"`
	Education  []EducationRequest  `json:"education" validate:"max=20,dive"`
	Job        JobRequest          `json:"job"`
}

type RankRequest struct {
	ResumeText string              `json:"resume_text" validate:"required,max=200000"`
	Experience matching.Experience `json:"experience"`
	Education  []EducationRequest  `json:"education" validate:"max=20,dive"`
	Jobs       []JobRequest        `json:"jobs" validate:"required,min=1,max=50,dive"`
	MinScore   int                 `json:"min_score" validate:"gte=0,lte=100"`
}

// UploadForm holds the multipart fields sent next to the resume file.
// RequiredSkills is comma separated.
type UploadForm struct {
	JobDescription string   `form:"job_description" validate:"max=50000"`
	JobURL         string   `form:"job_url" validate:"omitempty,url,max=2048"`
	RequiredSkills string   `form:"required_skills" validate:"max=5000"`
	RequiredYears  float64  `form:"required_years" validate:"gte=0,lte=60"`
	EducationLevel string   `form:"education_level" validate:"max=100"`
	JobTitle       string   `form:"job_title" validate:"max=200"`
	Industry       string   `form:"industry" validate:"max=100"`
	YearsOfExp     *float64 `form:"years_of_experience" validate:"omitempty,gte=0,lte=80"`
	Degree         string   `form:"degree" validate:"max=200"`
}

type AnalysisExportResponse struct {
	Count      int                    `json:"count"`
	ExportedAt time.Time              `json:"exported_at"`
	Analyses   []domanalysis.Analysis `json:"analyses"`
}
