package analysis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domanalysis "skillsift/internal/domain/analysis"
	"skillsift/internal/infrastructure/messaging"
	"skillsift/internal/repository"

	"github.com/google/uuid"
)

const (
	DefaultExportLimit = 100
	MaxExportLimit     = 1000
)

// ExportFilter selects stored analyses by creation time and industry.
type ExportFilter struct {
	Since    time.Time
	Until    time.Time
	Industry string
	Limit    int
}

// Export returns stored analyses, newest first.
func (s *Service) Export(ctx context.Context, f ExportFilter) ([]domanalysis.Analysis, error) {
	if s.repo == nil {
		return nil, ErrUnavailable
	}
	switch {
	case f.Limit < 0:
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	case f.Limit == 0:
		f.Limit = DefaultExportLimit
	case f.Limit > MaxExportLimit:
		f.Limit = MaxExportLimit
	}
	if !f.Since.IsZero() && !f.Until.IsZero() && !f.Until.After(f.Since) {
		return nil, fmt.Errorf("%w: until must be after since", ErrInvalidInput)
	}

	out, err := s.repo.List(ctx, repository.AnalysisFilter{
		Since:    f.Since,
		Until:    f.Until,
		Industry: strings.TrimSpace(f.Industry),
		Limit:    f.Limit,
	})
	if err != nil {
		s.logger.Printf("[Analysis] export failed | err=%v", err)
		return nil, ErrInternal
	}
	return out, nil
}

// Report renders a stored analysis as Markdown.
func (s *Service) Report(ctx context.Context, id uuid.UUID) ([]byte, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := domanalysis.RenderReport(&buf, a); err != nil {
		s.logger.Printf("[Analysis] report failed | id=%s err=%v", id, err)
		return nil, ErrInternal
	}
	return buf.Bytes(), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if s.repo == nil {
		return ErrUnavailable
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		s.logger.Printf("[Analysis] delete failed | id=%s err=%v", id, err)
		return ErrInternal
	}
	s.logger.Printf("[Analysis] deleted | id=%s", id)
	s.publishDeleted(ctx, messaging.AnalysisDeletedEvent{AnalysisID: id.String(), Count: 1})
	return nil
}

type PurgeResult struct {
	Deleted int64     `json:"deleted"`
	Before  time.Time `json:"before"`
}

// Purge deletes analyses older than the retention window.
func (s *Service) Purge(ctx context.Context, olderThan time.Duration) (PurgeResult, error) {
	if s.repo == nil {
		return PurgeResult{}, ErrUnavailable
	}
	if olderThan <= 0 {
		return PurgeResult{}, fmt.Errorf("%w: retention must be positive", ErrInvalidInput)
	}

	cutoff := s.now().UTC().Add(-olderThan)
	n, err := s.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		s.logger.Printf("[Analysis] purge failed | before=%s err=%v", cutoff.Format(time.RFC3339), err)
		return PurgeResult{}, ErrInternal
	}
	s.logger.Printf("[Analysis] purged | before=%s count=%d", cutoff.Format(time.RFC3339), n)
	if n > 0 {
		s.publishDeleted(ctx, messaging.AnalysisDeletedEvent{Before: &cutoff, Count: n})
	}
	return PurgeResult{Deleted: n, Before: cutoff}, nil
}

func (s *Service) publishDeleted(ctx context.Context, evt messaging.AnalysisDeletedEvent) {
	if s.publisher == nil {
		return
	}
	evt.EventType = messaging.RoutingAnalysisDeleted
	evt.Timestamp = s.now().UTC()
	if err := s.publisher.Publish(ctx, messaging.RoutingAnalysisDeleted, evt); err != nil {
		s.logger.Printf("[Analysis] publish failed | event=%s err=%v", messaging.RoutingAnalysisDeleted, err)
	}
}
