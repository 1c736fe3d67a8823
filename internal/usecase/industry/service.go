package industry

import (
	"context"
	"errors"
	"log"
	"time"

	domind "skillsift/internal/domain/industry"
	"skillsift/internal/infrastructure/cache"
	"skillsift/internal/infrastructure/messaging"
	"skillsift/internal/repository"
	"skillsift/internal/usecase"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("industry not found")
	ErrUnavailable  = errors.New("industry storage unavailable")
	ErrInternal     = errors.New("internal error")
)

type Service struct {
	repo      repository.IndustrySkillRepository
	cache     usecase.JSONCache
	publisher usecase.EventPublisher
	logger    *log.Logger
	now       func() time.Time
}

// NewService builds the industry service. cache and publisher are optional;
// a nil repo makes every operation return ErrUnavailable.
func NewService(repo repository.IndustrySkillRepository, c usecase.JSONCache, pub usecase.EventPublisher, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{repo: repo, cache: c, publisher: pub, logger: logger, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]domind.SkillSet, error) {
	if s.repo == nil {
		return nil, ErrUnavailable
	}
	items, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Printf("[Industry] list failed | err=%v", err)
		return nil, ErrInternal
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, name string) (domind.SkillSet, error) {
	if s.repo == nil {
		return domind.SkillSet{}, ErrUnavailable
	}
	name = domind.NormalizeName(name)
	if name == "" {
		return domind.SkillSet{}, ErrInvalidInput
	}
	it, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domind.SkillSet{}, ErrNotFound
		}
		s.logger.Printf("[Industry] get failed | industry=%s err=%v", name, err)
		return domind.SkillSet{}, ErrInternal
	}
	return it, nil
}

// Create stores the skill set, replacing any existing one with the same name.
func (s *Service) Create(ctx context.Context, name string, skills []string) (domind.SkillSet, error) {
	if s.repo == nil {
		return domind.SkillSet{}, ErrUnavailable
	}
	name = domind.NormalizeName(name)
	skills = domind.NormalizeSkills(skills)
	if name == "" || len(skills) == 0 {
		return domind.SkillSet{}, ErrInvalidInput
	}
	it, err := s.repo.Upsert(ctx, name, skills)
	if err != nil {
		s.logger.Printf("[Industry] upsert failed | industry=%s err=%v", name, err)
		return domind.SkillSet{}, ErrInternal
	}
	s.changed(ctx, name, "upserted")
	return it, nil
}

func (s *Service) Update(ctx context.Context, name string, skills []string) (domind.SkillSet, error) {
	if s.repo == nil {
		return domind.SkillSet{}, ErrUnavailable
	}
	name = domind.NormalizeName(name)
	skills = domind.NormalizeSkills(skills)
	if name == "" || len(skills) == 0 {
		return domind.SkillSet{}, ErrInvalidInput
	}
	it, err := s.repo.Update(ctx, name, skills)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domind.SkillSet{}, ErrNotFound
		}
		s.logger.Printf("[Industry] update failed | industry=%s err=%v", name, err)
		return domind.SkillSet{}, ErrInternal
	}
	s.changed(ctx, name, "updated")
	return it, nil
}

func (s *Service) Delete(ctx context.Context, name string) error {
	if s.repo == nil {
		return ErrUnavailable
	}
	name = domind.NormalizeName(name)
	if name == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, name); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		s.logger.Printf("[Industry] delete failed | industry=%s err=%v", name, err)
		return ErrInternal
	}
	s.changed(ctx, name, "deleted")
	return nil
}

// IndustrySkills serves the scorer. Storage errors are logged and reported
// as absence.
func (s *Service) IndustrySkills(ctx context.Context, name string) ([]string, bool) {
	if s.repo == nil {
		return nil, false
	}
	name = domind.NormalizeName(name)
	if name == "" {
		return nil, false
	}

	key := cache.IndustrySkillsKey(name)
	if s.cache != nil {
		var cached []string
		if found, err := s.cache.GetJSON(ctx, key, &cached); err == nil && found {
			return cached, true
		}
	}

	it, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Printf("[Industry] skill lookup failed | industry=%s err=%v", name, err)
		}
		return nil, false
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, it.Skills, 0)
	}
	return it.Skills, true
}

func (s *Service) changed(ctx context.Context, name, action string) {
	if s.cache != nil {
		if err := s.cache.InvalidateIndustry(ctx, name); err != nil {
			s.logger.Printf("[Cache] invalidate failed | industry=%s err=%v", name, err)
		}
	}
	if s.publisher != nil {
		evt := messaging.IndustryUpdatedEvent{
			EventType: messaging.RoutingIndustryUpdated,
			Industry:  name,
			Action:    action,
			Timestamp: s.now().UTC(),
		}
		if err := s.publisher.Publish(ctx, messaging.RoutingIndustryUpdated, evt); err != nil {
			s.logger.Printf("[Events] publish failed | routing_key=%s err=%v", messaging.RoutingIndustryUpdated, err)
		}
	}
}
