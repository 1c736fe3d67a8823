package cache

import (
	"context"
	"strings"
	"testing"

	"skillsift/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ usecase.JSONCache = (*Redis)(nil)

func TestIndustrySkillsKey_Normalizes(t *testing.T) {
	assert.Equal(t, "industry:skills:fin tech", IndustrySkillsKey("  Fin   Tech "))
}

func TestMarketKey(t *testing.T) {
	a := MarketKey("salary", "Technology", "Software Engineer", "mid")
	b := MarketKey("salary", " technology", "software  engineer", "MID")
	c := MarketKey("salary", "technology", "software engineer", "senior")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "market:salary:technology:"))
}

func TestRedis_UnavailableIsNoop(t *testing.T) {
	var r *Redis
	ctx := context.Background()

	var out map[string]string
	found, err := r.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, r.SetJSON(ctx, "k", map[string]string{"a": "b"}, 0))
	assert.NoError(t, r.InvalidateIndustry(ctx, "technology"))
	assert.Error(t, r.Ping(ctx))
}
