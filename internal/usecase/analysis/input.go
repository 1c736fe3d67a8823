package analysis

import (
	"strings"

	"skillsift/internal/domain/matching"
	"skillsift/internal/domain/skill"
)

const maxRankJobs = 50

type ResumeInput struct {
	Text       string
	Filename   string
	Experience matching.Experience
	Education  []matching.Education
}

// JobInput describes a posting by free text, by URL or by an explicit skill
// list. RequiredSkills wins over the description when both are set.
type JobInput struct {
	Description    string
	URL            string
	RequiredSkills []string
	RequiredYears  float64
	EducationLevel string
	Title          string
	Industry       string
}

type AnalyzeInput struct {
	Resume ResumeInput
	Job    JobInput
}

type RankInput struct {
	Resume   ResumeInput
	Jobs     []JobInput
	MinScore int
}

type Ranked struct {
	Index           int             `json:"index"`
	Title           string          `json:"title,omitempty"`
	URL             string          `json:"url,omitempty"`
	Industry        string          `json:"industry,omitempty"`
	JobRequirements []string        `json:"job_requirements"`
	Compatibility   matching.Result `json:"compatibility"`
}

type RankFailure struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type RankResult struct {
	ResumeSkills skill.Extraction `json:"resume_skills"`
	Results      []Ranked         `json:"results"`
	Failures     []RankFailure    `json:"failures"`
}

// resolvedJob is a JobInput after the URL has been fetched.
type resolvedJob struct {
	JobInput
}

func (j JobInput) hasContent() bool {
	return strings.TrimSpace(j.Description) != "" || strings.TrimSpace(j.URL) != "" || len(j.RequiredSkills) > 0
}
