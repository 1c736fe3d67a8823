package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelForYears(t *testing.T) {
	tests := []struct {
		years float64
		want  ExperienceLevel
	}{
		{0, LevelEntry},
		{1.9, LevelEntry},
		{2, LevelMid},
		{4.5, LevelMid},
		{5, LevelSenior},
		{12, LevelSenior},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForYears(tt.years), "years=%v", tt.years)
	}
}

func TestCompete_Empty(t *testing.T) {
	res := Compete(Inputs{})
	assert.Equal(t, 0, res.MarketScore)
	assert.Nil(t, res.SalaryRange)
	assert.Nil(t, res.DemandInfo)
	assert.Empty(t, res.NextCareerSteps)
	assert.NotNil(t, res.MarketInsights)
}

func TestCompete_DemandAndSkills(t *testing.T) {
	path := &CareerPath{
		StartingRole: "Backend Engineer",
		PathSteps: []CareerStep{
			{Role: "Senior Backend Engineer"},
			{Role: "Staff Engineer"},
			{Role: "Principal Engineer"},
			{Role: "Distinguished Engineer"},
		},
		SkillRequirements: map[string][]string{"required": {"Go", "PostgreSQL", "Kubernetes", "AWS"}},
	}

	res := Compete(Inputs{
		CandidateSkills: []string{"go", "aws", "react"},
		Salary:          &SalaryRange{MinSalary: 90000, MaxSalary: 150000, MedianSalary: 120000, Currency: "USD"},
		Demand:          &Demand{DemandScore: 0.85},
		Path:            path,
		Trends:          []Trend{{TrendName: "Platform engineering", Description: "Internal developer platforms"}},
	})

	// 0.85*40 + 0.5*60 = 64
	assert.Equal(t, 64, res.MarketScore)
	require.NotNil(t, res.SalaryRange)
	assert.Equal(t, 120000, res.SalaryRange.Median)
	require.NotNil(t, res.DemandInfo)
	assert.InDelta(t, 0.85, res.DemandInfo.DemandScore, 1e-9)
	require.Len(t, res.NextCareerSteps, 3)
	assert.Equal(t, "Principal Engineer", res.NextCareerSteps[2].Role)
	assert.Equal(t, []Insight{{Trend: "Platform engineering", Description: "Internal developer platforms"}}, res.MarketInsights)
}

func TestCompete_Capped(t *testing.T) {
	res := Compete(Inputs{
		CandidateSkills: []string{"go"},
		Demand:          &Demand{DemandScore: 2},
		Path:            &CareerPath{SkillRequirements: map[string][]string{"required": {"go"}}},
	})
	assert.Equal(t, 100, res.MarketScore)
}
