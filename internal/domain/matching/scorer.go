package matching

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"skillsift/internal/domain/market"

	"golang.org/x/sync/errgroup"
)

const (
	skillWeight         = 0.6
	experienceWeight    = 0.25
	educationWeight     = 0.15
	industryBonusWeight = 0.2

	careerStepsLimit = 3
	trendsLimit      = 3
)

// Scorer computes compatibility between a candidate and a job. Industry and
// market providers are optional.
type Scorer struct {
	industry IndustrySkillProvider
	market   MarketDataProvider
	logger   *log.Logger

	onLookupFailure func(lookup string)
	canonical       func(name string) string
}

func NewScorer(industry IndustrySkillProvider, marketData MarketDataProvider, logger *log.Logger) *Scorer {
	if logger == nil {
		logger = log.Default()
	}
	return &Scorer{industry: industry, market: marketData, logger: logger}
}

// OnLookupFailure registers a callback invoked after a provider lookup panics.
func (s *Scorer) OnLookupFailure(fn func(lookup string)) *Scorer {
	s.onLookupFailure = fn
	return s
}

// Canonicalize sets the mapping applied to every skill name before matching,
// typically the alias table of the skill catalog.
func (s *Scorer) Canonicalize(fn func(name string) string) *Scorer {
	s.canonical = fn
	return s
}

func (s *Scorer) Score(ctx context.Context, c Candidate, j Job) (res Result, err error) {
	if s == nil {
		return Result{}, &ScoringError{Stage: "init", Cause: errors.New("nil scorer")}
	}
	if math.IsNaN(j.RequiredYears) || math.IsInf(j.RequiredYears, 0) {
		return Result{}, &ScoringError{Stage: "job", Cause: errors.New("required years must be finite")}
	}

	totalYears, err := c.Experience.TotalYears()
	if err != nil {
		return Result{}, &ScoringError{Stage: "experience", Cause: err}
	}

	industrySkills := s.industrySkills(ctx, j.Industry)

	defer func() {
		if r := recover(); r != nil {
			res = Result{}
			err = &ScoringError{Stage: "aggregate", Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	sk := scoreSkills(s.normalizer(), c.Skills, j.RequiredSkills, industrySkills)
	candEdu := HighestEducation(c.Education)
	reqEdu := RequiredEducation(j.EducationLevel)

	comp := Components{
		Skill:      sk.ratio,
		Experience: experienceScore(totalYears, j.RequiredYears),
		Education:  educationScore(candEdu, reqEdu),
	}

	res = Result{
		OverallScore:            percent(comp.Skill*skillWeight + comp.Experience*experienceWeight + comp.Education*educationWeight),
		SkillScore:              percent(comp.Skill),
		ExperienceScore:         percent(comp.Experience),
		EducationScore:          percent(comp.Education),
		MatchedSkills:           sk.matched,
		SkillGaps:               sk.gaps,
		IndustryRecommendations: sk.industryRecs,
		Components:              comp,
	}

	res.MarketData = s.enrich(ctx, j, totalYears)
	res.Recommendations = buildRecommendations(recommendationInput{
		gaps:          sk.gaps,
		industryRecs:  sk.industryRecs,
		industry:      j.Industry,
		totalYears:    totalYears,
		requiredYears: j.RequiredYears,
		candidateEdu:  candEdu,
		requiredEdu:   reqEdu,
		trends:        res.MarketData.IndustryTrends,
	})

	return res, nil
}

func percent(v float64) int {
	return clampInt(int(math.Round(v*100)), 0, 100)
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

type skillOutcome struct {
	ratio        float64
	matched      []string
	gaps         []string
	industryRecs []string
}

func (s *Scorer) normalizer() func(string) string {
	if s.canonical == nil {
		return normalizeSkill
	}
	return func(name string) string {
		if n := normalizeSkill(name); n != "" {
			return normalizeSkill(s.canonical(n))
		}
		return ""
	}
}

func normalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func skillSet(skills []string) map[string]struct{} {
	out := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		out[s] = struct{}{}
	}
	return out
}

func uniqueSkills(normalize func(string) string, skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		n := normalize(s)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func scoreSkills(normalize func(string) string, candidate, required, industry []string) skillOutcome {
	cand := uniqueSkills(normalize, candidate)
	req := uniqueSkills(normalize, required)
	ind := uniqueSkills(normalize, industry)
	candSet := skillSet(cand)
	reqSet := skillSet(req)
	indSet := skillSet(ind)

	out := skillOutcome{
		matched:      make([]string, 0, len(cand)),
		gaps:         make([]string, 0, len(req)),
		industryRecs: make([]string, 0),
	}
	for _, s := range cand {
		if _, ok := reqSet[s]; ok {
			out.matched = append(out.matched, s)
		}
	}
	for _, s := range req {
		if _, ok := candSet[s]; !ok {
			out.gaps = append(out.gaps, s)
		}
	}
	for _, s := range ind {
		_, inCand := candSet[s]
		_, inReq := reqSet[s]
		if !inCand && !inReq {
			out.industryRecs = append(out.industryRecs, s)
		}
	}
	if len(req) == 0 {
		return out
	}

	out.ratio = float64(len(out.matched)) / float64(len(req))
	if industry != nil {
		industryMatched := 0
		for _, s := range out.matched {
			if _, ok := indSet[s]; ok {
				industryMatched++
			}
		}
		out.ratio = math.Min(out.ratio+float64(industryMatched)/float64(len(req))*industryBonusWeight, 1.0)
	}
	return out
}

func (s *Scorer) industrySkills(ctx context.Context, industry string) []string {
	if s.industry == nil || strings.TrimSpace(industry) == "" {
		return nil
	}
	var skills []string
	s.guard("industry_skills", func() {
		if v, ok := s.industry.IndustrySkills(ctx, industry); ok {
			skills = v
			if skills == nil {
				skills = []string{}
			}
		}
	})
	return skills
}

// enrich runs the market lookups concurrently. Every lookup is optional and
// a failing one only leaves its field empty.
func (s *Scorer) enrich(ctx context.Context, j Job, totalYears float64) MarketData {
	var md MarketData
	if s.market == nil || strings.TrimSpace(j.Title) == "" || strings.TrimSpace(j.Industry) == "" {
		return md
	}

	level := market.LevelForYears(totalYears)

	var g errgroup.Group
	g.Go(func() error {
		s.guard("salary_range", func() {
			if v, ok := s.market.SalaryRange(ctx, j.Title, j.Industry, level); ok {
				md.SalaryRange = &v
			}
		})
		return nil
	})
	g.Go(func() error {
		s.guard("job_market_demand", func() {
			if v, ok := s.market.JobMarketDemand(ctx, j.Title, j.Industry); ok {
				md.JobMarketDemand = &v
			}
		})
		return nil
	})
	g.Go(func() error {
		s.guard("career_path", func() {
			if v, ok := s.market.CareerPath(ctx, j.Title, j.Industry); ok {
				md.CareerPath = v.NextSteps(careerStepsLimit)
			}
		})
		return nil
	})
	g.Go(func() error {
		s.guard("industry_trends", func() {
			trends := s.market.IndustryTrends(ctx, j.Industry, trendsLimit)
			if len(trends) > trendsLimit {
				trends = trends[:trendsLimit]
			}
			md.IndustryTrends = trends
		})
		return nil
	})
	_ = g.Wait()

	return md
}

func (s *Scorer) guard(lookup string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("[Scorer] enrichment lookup failed | lookup=%s panic=%v", lookup, r)
			if s.onLookupFailure != nil {
				s.onLookupFailure(lookup)
			}
		}
	}()
	fn()
}
