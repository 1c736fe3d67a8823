package seeder

import (
	"context"
	"encoding/json"
	"fmt"

	"skillsift/internal/database"
	"skillsift/internal/domain/industry"
)

type IndustrySkillsSeeder struct {
	Data []IndustrySample
}

func (IndustrySkillsSeeder) Name() string { return "industry_skills" }

// Run inserts missing industries and leaves existing skill sets untouched.
func (s IndustrySkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "industry_skills", "id", "industry_name", "skills", "created_at", "updated_at"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, it := range s.Data {
			raw, err := json.Marshal(industry.NormalizeSkills(it.Skills))
			if err != nil {
				return err
			}
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO industry_skills (id, industry_name, skills) VALUES (gen_random_uuid(), $1, $2::jsonb) ON CONFLICT (industry_name) DO NOTHING`,
				industry.NormalizeName(it.Name),
				string(raw),
			); err != nil {
				return fmt.Errorf("%s: %w", it.Name, err)
			}
		}
		return nil
	})
}
