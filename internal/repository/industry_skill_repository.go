package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"skillsift/internal/database"
	"skillsift/internal/domain/industry"

	"github.com/google/uuid"
)

type IndustrySkillRepository interface {
	Upsert(ctx context.Context, name string, skills []string) (industry.SkillSet, error)
	Update(ctx context.Context, name string, skills []string) (industry.SkillSet, error)
	GetByName(ctx context.Context, name string) (industry.SkillSet, error)
	List(ctx context.Context) ([]industry.SkillSet, error)
	Delete(ctx context.Context, name string) error
}

type PostgresIndustrySkillRepository struct {
	db database.DB
}

func NewPostgresIndustrySkillRepository(db database.DB) *PostgresIndustrySkillRepository {
	return &PostgresIndustrySkillRepository{db: db}
}

const industrySkillColumns = `id, industry_name, skills, created_at, updated_at`

func scanIndustrySkillSet(row database.Row) (industry.SkillSet, error) {
	var (
		out industry.SkillSet
		raw []byte
	)
	if err := row.Scan(&out.ID, &out.IndustryName, &raw, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return industry.SkillSet{}, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out.Skills); err != nil {
			return industry.SkillSet{}, fmt.Errorf("decode skills: %w", err)
		}
	}
	if out.Skills == nil {
		out.Skills = []string{}
	}
	return out, nil
}

func encodeSkills(skills []string) (string, error) {
	if skills == nil {
		skills = []string{}
	}
	b, err := json.Marshal(skills)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *PostgresIndustrySkillRepository) Upsert(ctx context.Context, name string, skills []string) (industry.SkillSet, error) {
	raw, err := encodeSkills(skills)
	if err != nil {
		return industry.SkillSet{}, err
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO industry_skills (id, industry_name, skills)
		 VALUES ($1, $2, $3::jsonb)
		 ON CONFLICT (industry_name) DO UPDATE
		 SET skills = EXCLUDED.skills, updated_at = now()
		 RETURNING `+industrySkillColumns,
		uuid.New(), name, raw,
	)
	return scanIndustrySkillSet(row)
}

func (r *PostgresIndustrySkillRepository) Update(ctx context.Context, name string, skills []string) (industry.SkillSet, error) {
	raw, err := encodeSkills(skills)
	if err != nil {
		return industry.SkillSet{}, err
	}
	row := r.db.QueryRow(ctx,
		`UPDATE industry_skills SET skills = $2::jsonb, updated_at = now()
		 WHERE industry_name = $1
		 RETURNING `+industrySkillColumns,
		name, raw,
	)
	out, err := scanIndustrySkillSet(row)
	if err != nil {
		if isNoRows(err) {
			return industry.SkillSet{}, ErrNotFound
		}
		return industry.SkillSet{}, err
	}
	return out, nil
}

func (r *PostgresIndustrySkillRepository) GetByName(ctx context.Context, name string) (industry.SkillSet, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+industrySkillColumns+` FROM industry_skills WHERE industry_name = $1`,
		name,
	)
	out, err := scanIndustrySkillSet(row)
	if err != nil {
		if isNoRows(err) {
			return industry.SkillSet{}, ErrNotFound
		}
		return industry.SkillSet{}, err
	}
	return out, nil
}

func (r *PostgresIndustrySkillRepository) List(ctx context.Context) ([]industry.SkillSet, error) {
	rows, err := r.db.Query(ctx, `SELECT `+industrySkillColumns+` FROM industry_skills ORDER BY industry_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]industry.SkillSet, 0)
	for rows.Next() {
		it, err := scanIndustrySkillSet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresIndustrySkillRepository) Delete(ctx context.Context, name string) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM industry_skills WHERE industry_name = $1`, name)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
