package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "senior c++ developer", NormalizeQuery("  Senior   C++ Developer!! "))
	assert.Equal(t, "front end engineer", NormalizeQuery("Front-End/Engineer"))
	assert.Equal(t, "", NormalizeQuery(" ?! "))
}

func TestCoreTitle(t *testing.T) {
	assert.Equal(t, "software engineer", CoreTitle("senior software engineer"))
	assert.Equal(t, "data scientist", CoreTitle("sr. data scientist"))
	assert.Equal(t, "lead", CoreTitle("lead"))
}

func TestExpandQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "abbreviation", query: "swe", want: []string{"swe", "software engineer"}},
		{name: "seniority stripped", query: "senior backend developer", want: []string{
			"senior backend developer", "backend developer", "back end developer", "server side developer", "backend engineer",
		}},
		{name: "compact key", query: "fullstack engineer", want: []string{"fullstack engineer", "full stack engineer"}},
		{name: "plain", query: "accountant", want: []string{"accountant"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandQuery(tt.query))
		})
	}
}

func TestRankTitles(t *testing.T) {
	q := ProcessQuery("Software Engineer")
	got := RankTitles([]string{
		"Senior Software Engineer",
		"software engineer",
		"Software Engineer",
		"Software Engineering Manager",
		"Data Scientist",
	}, q)

	assert.Equal(t, []string{
		"software engineer",
		"Software Engineering Manager",
		"Senior Software Engineer",
		"Data Scientist",
	}, got)
}
