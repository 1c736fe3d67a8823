package recommendation

import (
	"fmt"
	"strings"
)

const (
	CategorySkillDevelopment     = "skill_development"
	CategoryContentOptimization  = "content_optimization"
	CategoryKeywordEnhancement   = "keyword_enhancement"
	CategoryFormattingSuggestion = "formatting_suggestions"

	skillGapLimit = 3
	keywordLimit  = 3
)

var Categories = []string{
	CategorySkillDevelopment,
	CategoryContentOptimization,
	CategoryKeywordEnhancement,
	CategoryFormattingSuggestion,
}

var defaultKeywords = []string{
	"manage", "lead", "develop", "design", "implement",
	"analyze", "create", "build", "maintain", "improve",
}

var contentAdvice = []string{
	"Quantify achievements with metrics where possible",
	"Use action verbs to describe experiences",
	"Ensure experiences demonstrate impact and results",
}

var formattingAdvice = []string{
	"Use consistent formatting throughout",
	"Ensure sections are clearly separated",
	"Keep resume length appropriate for experience level",
}

// Input carries score states in [0,1]; nil means the dimension was not
// scored.
type Input struct {
	SkillGaps       []string
	ExperienceScore *float64
	EducationScore  *float64
	JobDescription  string
}

type Engine struct {
	keywords []string
}

func NewEngine() *Engine {
	return &Engine{keywords: defaultKeywords}
}

// Generate groups advice by category. Categories without entries are left
// out; content and formatting advice is always present.
func (e *Engine) Generate(in Input) map[string][]string {
	out := map[string][]string{}

	gaps := in.SkillGaps
	if len(gaps) > skillGapLimit {
		gaps = gaps[:skillGapLimit]
	}
	for _, g := range gaps {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		out[CategorySkillDevelopment] = append(out[CategorySkillDevelopment], fmt.Sprintf("Consider developing proficiency in %s", g))
	}

	content := append([]string(nil), contentAdvice...)
	if in.ExperienceScore != nil && *in.ExperienceScore < 1 {
		content = append(content, "Emphasize the scope and duration of relevant roles to address the experience requirement")
	}
	if in.EducationScore != nil && *in.EducationScore < 1 {
		content = append(content, "Highlight certifications, coursework or training that offset the education requirement")
	}
	out[CategoryContentOptimization] = content

	if kws := e.Keywords(in.JobDescription); len(kws) > 0 {
		if len(kws) > keywordLimit {
			kws = kws[:keywordLimit]
		}
		out[CategoryKeywordEnhancement] = []string{
			fmt.Sprintf("Consider incorporating relevant keywords like: %s", strings.Join(kws, ", ")),
			"Align skills section with job requirements",
		}
	}

	out[CategoryFormattingSuggestion] = append([]string(nil), formattingAdvice...)

	return out
}

// Keywords returns the vocabulary words present in the description.
func (e *Engine) Keywords(description string) []string {
	description = strings.ToLower(description)
	if strings.TrimSpace(description) == "" {
		return nil
	}
	out := make([]string, 0, len(e.keywords))
	for _, k := range e.keywords {
		if strings.Contains(description, k) {
			out = append(out, k)
		}
	}
	return out
}
