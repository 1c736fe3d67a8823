package industry

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	domind "skillsift/internal/domain/industry"
	"skillsift/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	items map[string]domind.SkillSet
	err   error
	gets  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]domind.SkillSet{}}
}

func (f *fakeRepo) Upsert(_ context.Context, name string, skills []string) (domind.SkillSet, error) {
	if f.err != nil {
		return domind.SkillSet{}, f.err
	}
	it := domind.SkillSet{IndustryName: name, Skills: skills}
	f.items[name] = it
	return it, nil
}

func (f *fakeRepo) Update(_ context.Context, name string, skills []string) (domind.SkillSet, error) {
	if f.err != nil {
		return domind.SkillSet{}, f.err
	}
	if _, ok := f.items[name]; !ok {
		return domind.SkillSet{}, repository.ErrNotFound
	}
	it := domind.SkillSet{IndustryName: name, Skills: skills}
	f.items[name] = it
	return it, nil
}

func (f *fakeRepo) GetByName(_ context.Context, name string) (domind.SkillSet, error) {
	f.gets++
	if f.err != nil {
		return domind.SkillSet{}, f.err
	}
	it, ok := f.items[name]
	if !ok {
		return domind.SkillSet{}, repository.ErrNotFound
	}
	return it, nil
}

func (f *fakeRepo) List(context.Context) ([]domind.SkillSet, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domind.SkillSet, 0, len(f.items))
	for _, it := range f.items {
		out = append(out, it)
	}
	return out, nil
}

func (f *fakeRepo) Delete(_ context.Context, name string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.items[name]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, name)
	return nil
}

type memCache struct {
	mu          sync.Mutex
	data        map[string][]byte
	invalidated []string
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.data[key] = b
	c.mu.Unlock()
	return nil
}

func (c *memCache) InvalidateIndustry(_ context.Context, industry string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, industry)
	for k := range c.data {
		if k == "industry:skills:"+industry {
			delete(c.data, k)
		}
	}
	return nil
}

type recordingPublisher struct {
	keys []string
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, _ any) error {
	p.keys = append(p.keys, routingKey)
	return nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestService_CreateNormalizesAndPublishes(t *testing.T) {
	repo := newFakeRepo()
	c := newMemCache()
	pub := &recordingPublisher{}
	svc := NewService(repo, c, pub, quietLogger())

	it, err := svc.Create(context.Background(), "  Technology ", []string{"Python", " docker", "python", ""})
	require.NoError(t, err)
	assert.Equal(t, "technology", it.IndustryName)
	assert.Equal(t, []string{"python", "docker"}, it.Skills)
	assert.Equal(t, []string{"technology"}, c.invalidated)
	assert.Equal(t, []string{"industry.updated"}, pub.keys)
}

func TestService_CreateIsUpsert(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil, quietLogger())
	ctx := context.Background()

	_, err := svc.Create(ctx, "finance", []string{"excel"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Finance", []string{"python", "sql"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "FINANCE")
	require.NoError(t, err)
	assert.Equal(t, []string{"python", "sql"}, got.Skills)
}

func TestService_Validation(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil, quietLogger())
	ctx := context.Background()

	_, err := svc.Create(ctx, " ", []string{"go"})
	assert.True(t, errors.Is(err, ErrInvalidInput))
	_, err = svc.Create(ctx, "tech", []string{" "})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestService_UpdateAndDeleteMissing(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil, quietLogger())
	ctx := context.Background()

	_, err := svc.Update(ctx, "retail", []string{"sql"})
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(svc.Delete(ctx, "retail"), ErrNotFound))
	_, err = svc.Get(ctx, "retail")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestService_RepoFailureIsInternal(t *testing.T) {
	repo := newFakeRepo()
	repo.err = errors.New("connection reset")
	svc := NewService(repo, nil, nil, quietLogger())

	_, err := svc.List(context.Background())
	assert.True(t, errors.Is(err, ErrInternal))
}

func TestService_NoRepoIsUnavailable(t *testing.T) {
	svc := NewService(nil, nil, nil, quietLogger())

	_, err := svc.List(context.Background())
	assert.True(t, errors.Is(err, ErrUnavailable))
	skills, ok := svc.IndustrySkills(context.Background(), "technology")
	assert.False(t, ok)
	assert.Nil(t, skills)
}

func TestService_IndustrySkillsReadsThroughCache(t *testing.T) {
	repo := newFakeRepo()
	repo.items["technology"] = domind.SkillSet{IndustryName: "technology", Skills: []string{"kubernetes", "go"}}
	c := newMemCache()
	svc := NewService(repo, c, nil, quietLogger())
	ctx := context.Background()

	skills, ok := svc.IndustrySkills(ctx, "Technology")
	require.True(t, ok)
	assert.Equal(t, []string{"kubernetes", "go"}, skills)

	skills, ok = svc.IndustrySkills(ctx, "technology")
	require.True(t, ok)
	assert.Equal(t, []string{"kubernetes", "go"}, skills)
	assert.Equal(t, 1, repo.gets)
}

func TestService_IndustrySkillsErrorsBecomeAbsent(t *testing.T) {
	repo := newFakeRepo()
	repo.err = errors.New("timeout")
	svc := NewService(repo, nil, nil, quietLogger())

	_, ok := svc.IndustrySkills(context.Background(), "technology")
	assert.False(t, ok)
}
