package analysis

import (
	"io"
	"sort"
	"strings"
	"text/template"
	"time"
)

// ReportContentType is the media type RenderReport writes.
const ReportContentType = "text/markdown; charset=utf-8"

var reportFuncs = template.FuncMap{
	"join": func(items []string) string {
		if len(items) == 0 {
			return "none"
		}
		return strings.Join(items, ", ")
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "unknown"
		}
		return t.UTC().Format("2006-01-02 15:04 MST")
	},
	"pct": func(f float64) int {
		return int(f*100 + 0.5)
	},
}

var reportTemplate = template.Must(template.New("report").Funcs(reportFuncs).Parse(`# Resume Analysis Report

- Analysis: {{.ID}}
- Created: {{date .CreatedAt}}
{{- if .JobTitle}}
- Job title: {{.JobTitle}}
{{- end}}
{{- if .IndustryName}}
- Industry: {{.IndustryName}}
{{- end}}
{{- if .ResumeFilename}}
- Resume file: {{.ResumeFilename}}
{{- end}}

## Compatibility

| Component | Score |
|-----------|-------|
| Overall | {{.Compatibility.OverallScore}} |
| Skills | {{.Compatibility.SkillScore}} |
| Experience | {{.Compatibility.ExperienceScore}} |
| Education | {{.Compatibility.EducationScore}} |

## Skills

- Extracted: {{join .ResumeSkillNames}}
- Matched: {{join .Compatibility.MatchedSkills}}
- Gaps: {{join .Compatibility.SkillGaps}}
{{- if .Compatibility.IndustryRecommendations}}
- Industry suggestions: {{join .Compatibility.IndustryRecommendations}}
{{- end}}
{{- if .Compatibility.Recommendations}}

## Recommendations
{{range .Compatibility.Recommendations}}
- {{.}}
{{- end}}
{{- end}}
{{- with .Compatibility.MarketData}}
{{- if not .Empty}}

## Market
{{with .SalaryRange}}
- Salary ({{.ExperienceLevel}}): {{.MinSalary}} to {{.MaxSalary}} {{.Currency}}, median {{.MedianSalary}}
{{- end}}
{{- with .JobMarketDemand}}
- Demand score: {{pct .DemandScore}}%
{{- end}}
{{- if .CareerPath}}
- Career path: {{range $i, $s := .CareerPath}}{{if $i}} > {{end}}{{$s.Role}}{{end}}
{{- end}}
{{- range .IndustryTrends}}
- Trend: {{.TrendName}} ({{pct .RelevanceScore}}%)
{{- end}}
{{- end}}
{{- end}}
{{- if .Categories}}

## Focus Areas
{{range .Categories}}
- {{.Name}}: {{join .Items}}
{{- end}}
{{- end}}
`))

type reportCategory struct {
	Name  string
	Items []string
}

type reportView struct {
	Analysis
	ResumeSkillNames []string
	Categories       []reportCategory
}

// RenderReport writes a human readable Markdown summary of a stored analysis.
func RenderReport(w io.Writer, a Analysis) error {
	view := reportView{Analysis: a, ResumeSkillNames: a.ResumeSkills.Names()}

	names := make([]string, 0, len(a.Recommendations))
	for k, v := range a.Recommendations {
		if len(v) > 0 {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	for _, n := range names {
		view.Categories = append(view.Categories, reportCategory{Name: n, Items: a.Recommendations[n]})
	}
	return reportTemplate.Execute(w, view)
}
