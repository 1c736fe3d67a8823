package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"path/filepath"
	"strings"
	"time"

	domanalysis "skillsift/internal/domain/analysis"
	"skillsift/internal/domain/matching"
	"skillsift/internal/domain/recommendation"
	"skillsift/internal/domain/skill"
	"skillsift/internal/infrastructure/jobfetch"
	"skillsift/internal/infrastructure/messaging"
	"skillsift/internal/infrastructure/metrics"
	"skillsift/internal/repository"
	"skillsift/internal/usecase"

	"github.com/google/uuid"
)

type DocumentExtractor interface {
	Check(filename string, size int64) error
	Read(r io.Reader) ([]byte, error)
	Extract(filename string, data []byte) (string, error)
}

type Notifier interface {
	AnalysisCompleted(id uuid.UUID, kind string, overallScore int, jobTitle string)
}

type Recorder interface {
	ObserveAnalysis(kind, outcome string, d time.Duration)
	DocumentExtracted(fileType, outcome string)
}

// Deps wires the service. Skills, Requirements and Scorer are required; the
// rest may be nil. Catalog canonicalizes caller supplied skill lists.
type Deps struct {
	Catalog      *skill.Catalog
	Skills       *skill.Extractor
	Requirements *skill.RequirementExtractor
	Scorer       *matching.Scorer
	Engine       *recommendation.Engine
	Documents    DocumentExtractor
	Fetcher      jobfetch.Fetcher
	Repo         repository.AnalysisRepository
	Publisher    usecase.EventPublisher
	Notifier     Notifier
	Metrics      Recorder
	Logger       *log.Logger
	MaxSkills    int
	BatchWorkers int
}

type Service struct {
	catalog      *skill.Catalog
	skills       *skill.Extractor
	requirements *skill.RequirementExtractor
	scorer       *matching.Scorer
	engine       *recommendation.Engine
	documents    DocumentExtractor
	fetcher      jobfetch.Fetcher
	repo         repository.AnalysisRepository
	publisher    usecase.EventPublisher
	notifier     Notifier
	metrics      Recorder
	logger       *log.Logger
	maxSkills    int
	batchWorkers int
	now          func() time.Time
}

func NewService(d Deps) (*Service, error) {
	if d.Skills == nil || d.Requirements == nil || d.Scorer == nil {
		return nil, errors.New("analysis: extractors and scorer are required")
	}
	if d.Engine == nil {
		d.Engine = recommendation.NewEngine()
	}
	if d.Logger == nil {
		d.Logger = log.Default()
	}
	if d.MaxSkills <= 0 {
		d.MaxSkills = skill.DefaultMaxSkills
	}
	if d.BatchWorkers <= 0 {
		d.BatchWorkers = 4
	}
	return &Service{
		catalog:      d.Catalog,
		skills:       d.Skills,
		requirements: d.Requirements,
		scorer:       d.Scorer,
		engine:       d.Engine,
		documents:    d.Documents,
		fetcher:      d.Fetcher,
		repo:         d.Repo,
		publisher:    d.Publisher,
		notifier:     d.Notifier,
		metrics:      d.Metrics,
		logger:       d.Logger,
		maxSkills:    d.MaxSkills,
		batchWorkers: d.BatchWorkers,
		now:          time.Now,
	}, nil
}

// Analyze scores resume text against one job and stores the result.
func (s *Service) Analyze(ctx context.Context, in AnalyzeInput) (domanalysis.Analysis, error) {
	return s.run(ctx, domanalysis.KindText, in)
}

// AnalyzeUpload extracts the resume from an uploaded document first. The body
// is read up to the configured size limit.
func (s *Service) AnalyzeUpload(ctx context.Context, filename string, body io.Reader, in AnalyzeInput) (domanalysis.Analysis, error) {
	if s.documents == nil {
		return domanalysis.Analysis{}, fmt.Errorf("%w: document extraction is not configured", ErrInternal)
	}
	fileType := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	data, err := s.documents.Read(body)
	if err == nil {
		var text string
		text, err = s.documents.Extract(filename, data)
		in.Resume.Text = text
	}
	if err != nil {
		s.recordDocument(fileType, metrics.OutcomeRejected)
		s.observe(domanalysis.KindUpload, metrics.OutcomeRejected, 0)
		s.logger.Printf("[Analysis] document rejected | file=%s err=%v", filename, err)
		return domanalysis.Analysis{}, err
	}
	s.recordDocument(fileType, metrics.OutcomeSuccess)

	in.Resume.Filename = filename
	return s.run(ctx, domanalysis.KindUpload, in)
}

// CheckUpload validates an upload before its body is read.
func (s *Service) CheckUpload(filename string, size int64) error {
	if s.documents == nil {
		return fmt.Errorf("%w: document extraction is not configured", ErrInternal)
	}
	return s.documents.Check(filename, size)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (domanalysis.Analysis, error) {
	if s.repo == nil {
		return domanalysis.Analysis{}, ErrUnavailable
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domanalysis.Analysis{}, ErrNotFound
		}
		s.logger.Printf("[Analysis] get failed | id=%s err=%v", id, err)
		return domanalysis.Analysis{}, ErrInternal
	}
	return a, nil
}

func (s *Service) run(ctx context.Context, kind domanalysis.Kind, in AnalyzeInput) (out domanalysis.Analysis, err error) {
	start := s.now()
	defer func() {
		s.observe(kind, outcomeFor(err), s.now().Sub(start))
	}()

	if strings.TrimSpace(in.Resume.Text) == "" {
		return domanalysis.Analysis{}, fmt.Errorf("%w: resume text is required", ErrInvalidInput)
	}
	if !in.Job.hasContent() {
		return domanalysis.Analysis{}, fmt.Errorf("%w: job description, url or required skills are required", ErrInvalidInput)
	}

	job, err := s.resolveJob(ctx, in.Job)
	if err != nil {
		return domanalysis.Analysis{}, err
	}

	extraction, err := s.skills.ExtractSkillsWithContext(in.Resume.Text, s.maxSkills)
	if err != nil {
		return domanalysis.Analysis{}, err
	}

	res, reqs, err := s.scoreJob(ctx, extraction.Names(), in.Resume, job)
	if err != nil {
		return domanalysis.Analysis{}, err
	}

	out = domanalysis.Analysis{
		ID:              uuid.New(),
		Kind:            kind,
		ResumeFilename:  in.Resume.Filename,
		JobTitle:        job.Title,
		IndustryName:    job.Industry,
		JobURL:          job.URL,
		ResumeSkills:    extraction,
		JobRequirements: reqs,
		Compatibility:   res,
		Recommendations: s.engine.Generate(s.recommendationInput(in.Resume, job, res)),
		CreatedAt:       s.now().UTC(),
	}

	s.store(ctx, out)
	s.announce(ctx, out)
	return out, nil
}

// Rank scores one resume against many postings concurrently. Postings that
// fail are reported separately and never fail the whole call.
func (s *Service) Rank(ctx context.Context, in RankInput) (out RankResult, err error) {
	start := s.now()
	defer func() {
		s.observe(domanalysis.KindRank, outcomeFor(err), s.now().Sub(start))
	}()

	if strings.TrimSpace(in.Resume.Text) == "" {
		return RankResult{}, fmt.Errorf("%w: resume text is required", ErrInvalidInput)
	}
	if len(in.Jobs) == 0 || len(in.Jobs) > maxRankJobs {
		return RankResult{}, fmt.Errorf("%w: between 1 and %d jobs are required", ErrInvalidInput, maxRankJobs)
	}
	if in.MinScore < 0 || in.MinScore > 100 {
		return RankResult{}, fmt.Errorf("%w: min_score must be within 0..100", ErrInvalidInput)
	}

	extraction, err := s.skills.ExtractSkillsWithContext(in.Resume.Text, s.maxSkills)
	if err != nil {
		return RankResult{}, err
	}
	names := extraction.Names()

	return s.rank(ctx, extraction, names, in)
}

// ExtractSkills runs the resume extractor alone.
func (s *Service) ExtractSkills(text string, maxSkills int) (skill.Extraction, error) {
	if maxSkills <= 0 {
		maxSkills = s.maxSkills
	}
	return s.skills.ExtractSkillsWithContext(text, maxSkills)
}

func (s *Service) ExtractRequirements(description string, maxSkills int) ([]string, error) {
	if maxSkills <= 0 {
		maxSkills = s.maxSkills
	}
	return s.requirements.ExtractJobRequirements(description, maxSkills)
}

func (s *Service) Score(ctx context.Context, c matching.Candidate, j matching.Job) (matching.Result, error) {
	if j.RequiredYears < 0 {
		return matching.Result{}, fmt.Errorf("%w: required_years must not be negative", ErrInvalidInput)
	}
	return s.scorer.Score(ctx, c, j)
}

func (s *Service) Recommend(in recommendation.Input) map[string][]string {
	return s.engine.Generate(in)
}

func (s *Service) resolveJob(ctx context.Context, in JobInput) (resolvedJob, error) {
	if math.IsNaN(in.RequiredYears) || math.IsInf(in.RequiredYears, 0) || in.RequiredYears < 0 {
		return resolvedJob{}, fmt.Errorf("%w: required_years must be a non-negative number", ErrInvalidInput)
	}

	job := resolvedJob{JobInput: in}
	job.Title = strings.TrimSpace(job.Title)
	job.Industry = strings.TrimSpace(job.Industry)

	if strings.TrimSpace(in.URL) == "" || strings.TrimSpace(in.Description) != "" || len(in.RequiredSkills) > 0 {
		return job, nil
	}
	if s.fetcher == nil {
		return resolvedJob{}, fmt.Errorf("%w: job fetching is not configured", ErrJobFetch)
	}

	posting, err := s.fetcher.Fetch(ctx, in.URL)
	if err != nil {
		s.logger.Printf("[Analysis] job fetch failed | url=%s err=%v", in.URL, err)
		if errors.Is(err, jobfetch.ErrInvalidURL) {
			return resolvedJob{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return resolvedJob{}, fmt.Errorf("%w: %v", ErrJobFetch, err)
	}
	job.Description = posting.Description
	if job.Title == "" {
		job.Title = strings.TrimSpace(posting.Title)
	}
	return job, nil
}

func (s *Service) scoreJob(ctx context.Context, candidateSkills []string, resume ResumeInput, job resolvedJob) (matching.Result, []string, error) {
	reqs := s.catalog.CanonicalSkills(job.RequiredSkills)
	if len(reqs) == 0 {
		var err error
		reqs, err = s.requirements.ExtractJobRequirements(job.Description, s.maxSkills)
		if err != nil {
			return matching.Result{}, nil, err
		}
	}

	res, err := s.scorer.Score(ctx, matching.Candidate{
		Skills:     candidateSkills,
		Experience: resume.Experience,
		Education:  resume.Education,
	}, matching.Job{
		RequiredSkills: reqs,
		RequiredYears:  job.RequiredYears,
		EducationLevel: job.EducationLevel,
		Title:          job.Title,
		Industry:       job.Industry,
	})
	if err != nil {
		return matching.Result{}, nil, err
	}
	return res, reqs, nil
}

func (s *Service) recommendationInput(resume ResumeInput, job resolvedJob, res matching.Result) recommendation.Input {
	in := recommendation.Input{
		SkillGaps:      res.SkillGaps,
		JobDescription: job.Description,
	}
	if resume.Experience.Supplied() {
		v := res.Components.Experience
		in.ExperienceScore = &v
	}
	if len(resume.Education) > 0 {
		v := res.Components.Education
		in.EducationScore = &v
	}
	return in
}

func (s *Service) store(ctx context.Context, a domanalysis.Analysis) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Save(ctx, a); err != nil {
		s.logger.Printf("[Analysis] persist failed | id=%s err=%v", a.ID, err)
	}
}

func (s *Service) announce(ctx context.Context, a domanalysis.Analysis) {
	s.logger.Printf("[Analysis] completed | id=%s kind=%s score=%d", a.ID, a.Kind, a.Compatibility.OverallScore)

	if s.notifier != nil {
		s.notifier.AnalysisCompleted(a.ID, string(a.Kind), a.Compatibility.OverallScore, a.JobTitle)
	}
	if s.publisher == nil {
		return
	}
	evt := messaging.AnalysisCompletedEvent{
		EventType:    messaging.RoutingAnalysisCompleted,
		AnalysisID:   a.ID.String(),
		Kind:         string(a.Kind),
		OverallScore: a.Compatibility.OverallScore,
		JobTitle:     a.JobTitle,
		Industry:     a.IndustryName,
		Timestamp:    a.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, messaging.RoutingAnalysisCompleted, evt); err != nil {
		s.logger.Printf("[Analysis] publish failed | id=%s err=%v", a.ID, err)
	}
}

func (s *Service) observe(kind domanalysis.Kind, outcome string, d time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveAnalysis(string(kind), outcome, d)
}

func (s *Service) recordDocument(fileType, outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.DocumentExtracted(fileType, outcome)
}

func outcomeFor(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrInternal), errors.Is(err, ErrJobFetch):
		return metrics.OutcomeFailed
	default:
		return metrics.OutcomeRejected
	}
}
