package matching

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"skillsift/internal/domain/market"
)

const (
	gapsVerbatimLimit  = 3
	gapsConsiderLimit  = 5
	industryRecsLimit  = 3
	trendMentionsLimit = 3

	WellMatchedMessage = "Your profile is well-matched to this position's requirements."
)

type recommendationInput struct {
	gaps          []string
	industryRecs  []string
	industry      string
	totalYears    float64
	requiredYears float64
	candidateEdu  EducationLevel
	requiredEdu   EducationLevel
	trends        []market.Trend
}

func buildRecommendations(in recommendationInput) []string {
	out := make([]string, 0, 5)

	switch {
	case len(in.gaps) == 0:
	case len(in.gaps) <= gapsVerbatimLimit:
		out = append(out, fmt.Sprintf("Develop skills in %s to meet the job requirements.", strings.Join(in.gaps, ", ")))
	default:
		top := in.gaps
		if len(top) > gapsConsiderLimit {
			top = top[:gapsConsiderLimit]
		}
		out = append(out, fmt.Sprintf("Consider developing these key skills: %s.", strings.Join(top, ", ")))
	}

	if len(in.industryRecs) > 0 {
		recs := in.industryRecs
		if len(recs) > industryRecsLimit {
			recs = recs[:industryRecsLimit]
		}
		out = append(out, fmt.Sprintf("Skills valued in the %s industry worth adding: %s.", in.industry, strings.Join(recs, ", ")))
	}

	if in.requiredYears > 0 && in.totalYears < in.requiredYears {
		missing := math.Round((in.requiredYears-in.totalYears)*10) / 10
		out = append(out, fmt.Sprintf("Gain %s more years of relevant experience to meet the %s-year requirement.",
			formatYears(missing), formatYears(in.requiredYears)))
	}

	if in.candidateEdu.Weight() < in.requiredEdu.Weight() {
		out = append(out, fmt.Sprintf("The role asks for a %s degree while your highest listed education is %s; consider further study or equivalent certifications.",
			in.requiredEdu.Label(), in.candidateEdu.Label()))
	}

	if len(in.trends) > 0 {
		names := make([]string, 0, trendMentionsLimit)
		for _, t := range in.trends {
			if len(names) >= trendMentionsLimit {
				break
			}
			if n := strings.TrimSpace(t.TrendName); n != "" {
				names = append(names, n)
			}
		}
		if len(names) > 0 {
			out = append(out, fmt.Sprintf("Stay current with %s industry trends: %s.", in.industry, strings.Join(names, ", ")))
		}
	}

	if len(out) == 0 {
		out = append(out, WellMatchedMessage)
	}
	return out
}

func formatYears(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
