package industry

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SkillSet is the canonical skill list of one industry. Names are unique
// after normalization and a write replaces the whole list.
type SkillSet struct {
	ID           uuid.UUID `json:"id"`
	IndustryName string    `json:"industry_name"`
	Skills       []string  `json:"skills"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// NormalizeSkills lowercases, trims and dedupes skills keeping first order.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
