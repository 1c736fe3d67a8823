package seeder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleIndustries_Consistent(t *testing.T) {
	data := SampleIndustries()
	assert.Len(t, data, 3)

	names := map[string]struct{}{}
	for _, ind := range data {
		_, dup := names[ind.Name]
		assert.False(t, dup, "duplicate industry %s", ind.Name)
		names[ind.Name] = struct{}{}

		assert.NotEmpty(t, ind.Skills, ind.Name)
		assert.Len(t, ind.Trends, 3, ind.Name)
		for _, job := range ind.Jobs {
			assert.Len(t, job.Salaries, 3, job.Title)
			for _, s := range job.Salaries {
				assert.LessOrEqual(t, s.MinSalary, s.Median, job.Title)
				assert.LessOrEqual(t, s.Median, s.MaxSalary, job.Title)
			}
			assert.GreaterOrEqual(t, job.Demand.DemandScore, 0.0)
			assert.LessOrEqual(t, job.Demand.DemandScore, 1.0)
			assert.NotEmpty(t, job.Path.RequiredSkills, job.Title)
		}
	}
}

func TestDefaults_Order(t *testing.T) {
	ds := Defaults()
	if assert.Len(t, ds, 2) {
		assert.Equal(t, "industry_skills", ds[0].Name())
		assert.Equal(t, "market_data", ds[1].Name())
	}
}
