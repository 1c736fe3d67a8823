package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"skillsift/internal/database"
	"skillsift/internal/domain/analysis"

	"github.com/google/uuid"
)

type AnalysisRepository interface {
	Save(ctx context.Context, a analysis.Analysis) error
	GetByID(ctx context.Context, id uuid.UUID) (analysis.Analysis, error)
	List(ctx context.Context, f AnalysisFilter) ([]analysis.Analysis, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// AnalysisFilter narrows List. Zero times and an empty industry match
// everything; Limit must be positive.
type AnalysisFilter struct {
	Since    time.Time
	Until    time.Time
	Industry string
	Limit    int
}

type PostgresAnalysisRepository struct {
	db database.DB
}

func NewPostgresAnalysisRepository(db database.DB) *PostgresAnalysisRepository {
	return &PostgresAnalysisRepository{db: db}
}

func (r *PostgresAnalysisRepository) Save(ctx context.Context, a analysis.Analysis) error {
	b, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO analyses (id, kind, resume_filename, job_title, industry_name, overall_score, result, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8)`,
		a.ID, string(a.Kind), a.ResumeFilename, a.JobTitle, a.IndustryName,
		a.Compatibility.OverallScore, string(b), a.CreatedAt,
	)
	return err
}

func (r *PostgresAnalysisRepository) GetByID(ctx context.Context, id uuid.UUID) (analysis.Analysis, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, `SELECT result FROM analyses WHERE id = $1`, id).Scan(&raw)
	if err != nil {
		if isNoRows(err) {
			return analysis.Analysis{}, ErrNotFound
		}
		return analysis.Analysis{}, err
	}

	var out analysis.Analysis
	if err := json.Unmarshal(raw, &out); err != nil {
		return analysis.Analysis{}, fmt.Errorf("decode analysis: %w", err)
	}
	return out, nil
}

// List returns the newest analyses first.
func (r *PostgresAnalysisRepository) List(ctx context.Context, f AnalysisFilter) ([]analysis.Analysis, error) {
	rows, err := r.db.Query(ctx,
		`SELECT result FROM analyses
		 WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		   AND ($2::timestamptz IS NULL OR created_at < $2)
		   AND ($3 = '' OR lower(industry_name) = lower($3))
		 ORDER BY created_at DESC, id ASC
		 LIMIT $4`,
		nullTime(f.Since), nullTime(f.Until), f.Industry, f.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]analysis.Analysis, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var a analysis.Analysis
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("decode analysis: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresAnalysisRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBefore removes analyses created before cutoff and reports how many
// rows went.
func (r *PostgresAnalysisRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.db.Exec(ctx, `DELETE FROM analyses WHERE created_at < $1`, cutoff)
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
