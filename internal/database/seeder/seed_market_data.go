package seeder

import (
	"context"
	"encoding/json"
	"fmt"

	"skillsift/internal/database"
	"skillsift/internal/domain/market"
)

type MarketDataSeeder struct {
	Data []IndustrySample
}

func (MarketDataSeeder) Name() string { return "market_data" }

func (s MarketDataSeeder) Run(ctx context.Context, db database.DB) error {
	checks := map[string][]string{
		"salary_ranges":     {"job_title", "industry_name", "experience_level", "median_salary"},
		"job_market_demand": {"job_title", "industry_name", "demand_score", "num_openings"},
		"career_paths":      {"starting_role", "industry_name", "path_steps", "skill_requirements"},
		"industry_trends":   {"industry_name", "trend_name", "relevance_score"},
	}
	for table, cols := range checks {
		if err := EnsureTableColumns(ctx, db, table, cols...); err != nil {
			return err
		}
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		return s.seed(ctx, tx)
	})
}

func (s MarketDataSeeder) seed(ctx context.Context, tx database.Querier) error {
	for _, ind := range s.Data {
		for _, tr := range ind.Trends {
			if _, err := tx.Exec(ctx,
				`INSERT INTO industry_trends (id, industry_name, trend_name, description, relevance_score, source)
				 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
				 ON CONFLICT (industry_name, trend_name) DO NOTHING`,
				ind.Name, tr.Name, tr.Description, tr.RelevanceScore, tr.Source,
			); err != nil {
				return err
			}
		}

		for _, job := range ind.Jobs {
			if err := seedJob(ctx, tx, ind.Name, job); err != nil {
				return fmt.Errorf("%s/%s: %w", ind.Name, job.Title, err)
			}
		}
	}
	return nil
}

func seedJob(ctx context.Context, tx database.Querier, industryName string, job JobSample) error {
	for _, sal := range job.Salaries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO salary_ranges (id, job_title, industry_name, min_salary, max_salary, median_salary, currency, experience_level, source)
			 SELECT gen_random_uuid(), $1, $2, $3, $4, $5, 'USD', $6, 'seed'
			 WHERE NOT EXISTS (
				SELECT 1 FROM salary_ranges WHERE job_title = $1 AND industry_name = $2 AND experience_level = $6
			 )`,
			job.Title, industryName, sal.MinSalary, sal.MaxSalary, sal.Median, sal.Level,
		); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO job_market_demand (id, job_title, industry_name, demand_score, growth_rate, num_openings, time_period, source)
		 SELECT gen_random_uuid(), $1, $2, $3, $4, $5, $6, 'seed'
		 WHERE NOT EXISTS (
			SELECT 1 FROM job_market_demand WHERE job_title = $1 AND industry_name = $2
		 )`,
		job.Title, industryName, job.Demand.DemandScore, job.Demand.GrowthRate, job.Demand.NumOpenings, job.Demand.TimePeriod,
	); err != nil {
		return err
	}

	steps := make([]market.CareerStep, 0, len(job.Path.Steps))
	for _, st := range job.Path.Steps {
		years := st.Years
		steps = append(steps, market.CareerStep{
			Role:               st.Role,
			Description:        st.Description,
			RequiredSkills:     st.Skills,
			AvgYearsExperience: &years,
		})
	}
	rawSteps, err := json.Marshal(steps)
	if err != nil {
		return err
	}
	rawTransitions, err := json.Marshal(job.Path.Transitions)
	if err != nil {
		return err
	}
	rawReqs, err := json.Marshal(map[string][]string{
		"required":    job.Path.RequiredSkills,
		"recommended": job.Path.RecommendedSkills,
	})
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO career_paths (id, starting_role, industry_name, path_steps, avg_transition_time, skill_requirements)
		 SELECT gen_random_uuid(), $1, $2, $3::jsonb, $4::jsonb, $5::jsonb
		 WHERE NOT EXISTS (
			SELECT 1 FROM career_paths WHERE starting_role = $1 AND industry_name = $2
		 )`,
		job.Path.StartingRole, industryName, string(rawSteps), string(rawTransitions), string(rawReqs),
	)
	return err
}
