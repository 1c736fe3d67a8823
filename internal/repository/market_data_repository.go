package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"skillsift/internal/database"
	"skillsift/internal/domain/market"

	"github.com/google/uuid"
)

// MarketDataRepository stores salary, demand, career path and trend records.
// Find* methods return the best single match or ErrNotFound; titles match by
// case-insensitive containment and industries by case-insensitive equality.
type MarketDataRepository interface {
	CreateSalaryRange(ctx context.Context, in market.SalaryRange) (market.SalaryRange, error)
	ListSalaryRanges(ctx context.Context, title, industryName string) ([]market.SalaryRange, error)
	FindSalaryRange(ctx context.Context, title, industryName string, level market.ExperienceLevel) (market.SalaryRange, error)

	CreateDemand(ctx context.Context, in market.Demand) (market.Demand, error)
	ListDemand(ctx context.Context, title, industryName string) ([]market.Demand, error)
	FindDemand(ctx context.Context, title, industryName string) (market.Demand, error)

	CreateCareerPath(ctx context.Context, in market.CareerPath) (market.CareerPath, error)
	ListCareerPaths(ctx context.Context, role, industryName string) ([]market.CareerPath, error)
	FindCareerPath(ctx context.Context, role, industryName string) (market.CareerPath, error)

	UpsertTrend(ctx context.Context, in market.Trend) (market.Trend, error)
	ListTrends(ctx context.Context, industryName string, limit int) ([]market.Trend, error)

	SimilarJobTitles(ctx context.Context, title string, limit int) ([]string, error)
}

type PostgresMarketDataRepository struct {
	db database.DB
}

func NewPostgresMarketDataRepository(db database.DB) *PostgresMarketDataRepository {
	return &PostgresMarketDataRepository{db: db}
}

const salaryColumns = `id, job_title, industry_name, location, min_salary, max_salary, median_salary, currency, experience_level, source, created_at, updated_at`

func scanSalary(row database.Row) (market.SalaryRange, error) {
	var out market.SalaryRange
	var level string
	err := row.Scan(&out.ID, &out.JobTitle, &out.IndustryName, &out.Location, &out.MinSalary, &out.MaxSalary,
		&out.MedianSalary, &out.Currency, &level, &out.Source, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return market.SalaryRange{}, err
	}
	out.ExperienceLevel = market.ExperienceLevel(level)
	return out, nil
}

func (r *PostgresMarketDataRepository) CreateSalaryRange(ctx context.Context, in market.SalaryRange) (market.SalaryRange, error) {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO salary_ranges (id, job_title, industry_name, location, min_salary, max_salary, median_salary, currency, experience_level, source)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+salaryColumns,
		in.ID, in.JobTitle, in.IndustryName, in.Location, in.MinSalary, in.MaxSalary, in.MedianSalary,
		in.Currency, string(in.ExperienceLevel), in.Source,
	)
	return scanSalary(row)
}

func (r *PostgresMarketDataRepository) ListSalaryRanges(ctx context.Context, title, industryName string) ([]market.SalaryRange, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+salaryColumns+` FROM salary_ranges
		 WHERE job_title ILIKE '%' || $1 || '%' ESCAPE '\'
		   AND ($2 = '' OR lower(industry_name) = lower($2))
		 ORDER BY job_title ASC, experience_level ASC`,
		escapeLike(title), industryName,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]market.SalaryRange, 0)
	for rows.Next() {
		it, err := scanSalary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PostgresMarketDataRepository) FindSalaryRange(ctx context.Context, title, industryName string, level market.ExperienceLevel) (market.SalaryRange, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+salaryColumns+` FROM salary_ranges
		 WHERE job_title ILIKE '%' || $1 || '%' ESCAPE '\'
		   AND lower(industry_name) = lower($2)
		   AND ($3 = '' OR experience_level = $3 OR experience_level = '')
		 ORDER BY (experience_level = $3) DESC, (location <> '') DESC, updated_at DESC
		 LIMIT 1`,
		escapeLike(title), industryName, string(level),
	)
	out, err := scanSalary(row)
	if err != nil {
		if isNoRows(err) {
			return market.SalaryRange{}, ErrNotFound
		}
		return market.SalaryRange{}, err
	}
	return out, nil
}

const demandColumns = `id, job_title, industry_name, location, demand_score, growth_rate, num_openings, time_period, source, created_at, updated_at`

func scanDemand(row database.Row) (market.Demand, error) {
	var out market.Demand
	err := row.Scan(&out.ID, &out.JobTitle, &out.IndustryName, &out.Location, &out.DemandScore, &out.GrowthRate,
		&out.NumOpenings, &out.TimePeriod, &out.Source, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return market.Demand{}, err
	}
	return out, nil
}

func (r *PostgresMarketDataRepository) CreateDemand(ctx context.Context, in market.Demand) (market.Demand, error) {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO job_market_demand (id, job_title, industry_name, location, demand_score, growth_rate, num_openings, time_period, source)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+demandColumns,
		in.ID, in.JobTitle, in.IndustryName, in.Location, in.DemandScore, in.GrowthRate, in.NumOpenings,
		in.TimePeriod, in.Source,
	)
	return scanDemand(row)
}

func (r *PostgresMarketDataRepository) ListDemand(ctx context.Context, title, industryName string) ([]market.Demand, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+demandColumns+` FROM job_market_demand
		 WHERE job_title ILIKE '%' || $1 || '%' ESCAPE '\'
		   AND ($2 = '' OR lower(industry_name) = lower($2))
		 ORDER BY demand_score DESC, job_title ASC`,
		escapeLike(title), industryName,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]market.Demand, 0)
	for rows.Next() {
		it, err := scanDemand(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PostgresMarketDataRepository) FindDemand(ctx context.Context, title, industryName string) (market.Demand, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+demandColumns+` FROM job_market_demand
		 WHERE job_title ILIKE '%' || $1 || '%' ESCAPE '\'
		   AND lower(industry_name) = lower($2)
		 ORDER BY (location <> '') DESC, updated_at DESC
		 LIMIT 1`,
		escapeLike(title), industryName,
	)
	out, err := scanDemand(row)
	if err != nil {
		if isNoRows(err) {
			return market.Demand{}, ErrNotFound
		}
		return market.Demand{}, err
	}
	return out, nil
}

const careerPathColumns = `id, starting_role, industry_name, path_steps, avg_transition_time, skill_requirements, created_at, updated_at`

func scanCareerPath(row database.Row) (market.CareerPath, error) {
	var (
		out                      market.CareerPath
		steps, transitions, reqs []byte
	)
	if err := row.Scan(&out.ID, &out.StartingRole, &out.IndustryName, &steps, &transitions, &reqs, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return market.CareerPath{}, err
	}
	if err := decodeJSONColumn(steps, &out.PathSteps); err != nil {
		return market.CareerPath{}, fmt.Errorf("decode path_steps: %w", err)
	}
	if err := decodeJSONColumn(transitions, &out.AvgTransitionTime); err != nil {
		return market.CareerPath{}, fmt.Errorf("decode avg_transition_time: %w", err)
	}
	if err := decodeJSONColumn(reqs, &out.SkillRequirements); err != nil {
		return market.CareerPath{}, fmt.Errorf("decode skill_requirements: %w", err)
	}
	if out.PathSteps == nil {
		out.PathSteps = []market.CareerStep{}
	}
	return out, nil
}

func decodeJSONColumn(raw []byte, out any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func encodeJSONColumn(v any, empty string) (string, error) {
	if v == nil {
		return empty, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(b) == "null" {
		return empty, nil
	}
	return string(b), nil
}

func (r *PostgresMarketDataRepository) CreateCareerPath(ctx context.Context, in market.CareerPath) (market.CareerPath, error) {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	steps, err := encodeJSONColumn(in.PathSteps, "[]")
	if err != nil {
		return market.CareerPath{}, err
	}
	transitions, err := encodeJSONColumn(in.AvgTransitionTime, "{}")
	if err != nil {
		return market.CareerPath{}, err
	}
	reqs, err := encodeJSONColumn(in.SkillRequirements, "{}")
	if err != nil {
		return market.CareerPath{}, err
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO career_paths (id, starting_role, industry_name, path_steps, avg_transition_time, skill_requirements)
		 VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6::jsonb)
		 RETURNING `+careerPathColumns,
		in.ID, in.StartingRole, in.IndustryName, steps, transitions, reqs,
	)
	return scanCareerPath(row)
}

func (r *PostgresMarketDataRepository) ListCareerPaths(ctx context.Context, role, industryName string) ([]market.CareerPath, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+careerPathColumns+` FROM career_paths
		 WHERE starting_role ILIKE '%' || $1 || '%' ESCAPE '\'
		   AND ($2 = '' OR lower(industry_name) = lower($2))
		 ORDER BY starting_role ASC`,
		escapeLike(role), industryName,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]market.CareerPath, 0)
	for rows.Next() {
		it, err := scanCareerPath(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PostgresMarketDataRepository) FindCareerPath(ctx context.Context, role, industryName string) (market.CareerPath, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+careerPathColumns+` FROM career_paths
		 WHERE starting_role ILIKE '%' || $1 || '%' ESCAPE '\'
		   AND lower(industry_name) = lower($2)
		 ORDER BY (lower(starting_role) = lower($3)) DESC, updated_at DESC
		 LIMIT 1`,
		escapeLike(role), industryName, role,
	)
	out, err := scanCareerPath(row)
	if err != nil {
		if isNoRows(err) {
			return market.CareerPath{}, ErrNotFound
		}
		return market.CareerPath{}, err
	}
	return out, nil
}

const trendColumns = `id, industry_name, trend_name, description, relevance_score, source, created_at, updated_at`

func scanTrend(row database.Row) (market.Trend, error) {
	var out market.Trend
	err := row.Scan(&out.ID, &out.IndustryName, &out.TrendName, &out.Description, &out.RelevanceScore,
		&out.Source, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return market.Trend{}, err
	}
	return out, nil
}

func (r *PostgresMarketDataRepository) UpsertTrend(ctx context.Context, in market.Trend) (market.Trend, error) {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO industry_trends (id, industry_name, trend_name, description, relevance_score, source)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (industry_name, trend_name) DO UPDATE
		 SET description = EXCLUDED.description,
		     relevance_score = EXCLUDED.relevance_score,
		     source = EXCLUDED.source,
		     updated_at = now()
		 RETURNING `+trendColumns,
		in.ID, in.IndustryName, in.TrendName, in.Description, in.RelevanceScore, in.Source,
	)
	return scanTrend(row)
}

func (r *PostgresMarketDataRepository) ListTrends(ctx context.Context, industryName string, limit int) ([]market.Trend, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+trendColumns+` FROM industry_trends
		 WHERE lower(industry_name) = lower($1)
		 ORDER BY relevance_score DESC, trend_name ASC
		 LIMIT $2`,
		industryName, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]market.Trend, 0, limit)
	for rows.Next() {
		it, err := scanTrend(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PostgresMarketDataRepository) SimilarJobTitles(ctx context.Context, title string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT job_title FROM salary_ranges
		 WHERE job_title ILIKE '%' || $1 || '%' ESCAPE '\'
		 ORDER BY job_title ASC
		 LIMIT $2`,
		escapeLike(title), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0, limit)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike quotes LIKE wildcards so user input only matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
