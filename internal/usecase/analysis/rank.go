package analysis

import (
	"context"
	"fmt"
	"sort"

	"skillsift/internal/domain/skill"

	"golang.org/x/sync/errgroup"
)

func (s *Service) rank(ctx context.Context, extraction skill.Extraction, candidateSkills []string, in RankInput) (RankResult, error) {
	scored := make([]Ranked, len(in.Jobs))
	errs := make([]error, len(in.Jobs))

	var g errgroup.Group
	g.SetLimit(s.batchWorkers)
	for i, j := range in.Jobs {
		g.Go(func() error {
			scored[i], errs[i] = s.rankOne(ctx, i, j, candidateSkills, in.Resume)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return RankResult{}, err
	}

	out := RankResult{
		ResumeSkills: extraction,
		Results:      make([]Ranked, 0, len(scored)),
		Failures:     make([]RankFailure, 0),
	}
	for i, err := range errs {
		if err != nil {
			s.logger.Printf("[Analysis] rank job failed | index=%d err=%v", i, err)
			out.Failures = append(out.Failures, RankFailure{Index: i, Error: err.Error()})
			continue
		}
		if scored[i].Compatibility.OverallScore < in.MinScore {
			continue
		}
		out.Results = append(out.Results, scored[i])
	}

	sort.SliceStable(out.Results, func(a, b int) bool {
		return out.Results[a].Compatibility.OverallScore > out.Results[b].Compatibility.OverallScore
	})
	return out, nil
}

// rankOne scores a single posting. A panic is reported as that posting's
// failure only.
func (s *Service) rankOne(ctx context.Context, index int, j JobInput, candidateSkills []string, resume ResumeInput) (out Ranked, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = Ranked{}
			err = fmt.Errorf("%w: panic: %v", ErrInternal, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return Ranked{}, err
	}
	if !j.hasContent() {
		return Ranked{}, fmt.Errorf("%w: job description, url or required skills are required", ErrInvalidInput)
	}
	job, err := s.resolveJob(ctx, j)
	if err != nil {
		return Ranked{}, err
	}
	res, reqs, err := s.scoreJob(ctx, candidateSkills, resume, job)
	if err != nil {
		return Ranked{}, err
	}
	return Ranked{
		Index:           index,
		Title:           job.Title,
		URL:             job.URL,
		Industry:        job.Industry,
		JobRequirements: reqs,
		Compatibility:   res,
	}, nil
}
