package skill

type Proficiency string

const (
	ProficiencyExpert       Proficiency = "expert"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyBeginner     Proficiency = "beginner"
)

const (
	CategoryOther    = "other"
	DefaultMaxSkills = 20
)

type ExtractedSkill struct {
	Skill       string      `json:"skill"`
	Context     string      `json:"context,omitempty"`
	Proficiency Proficiency `json:"proficiency"`
	Category    string      `json:"category"`
}

type Extraction struct {
	Skills            []ExtractedSkill            `json:"skills"`
	CategorizedSkills map[string][]ExtractedSkill `json:"categorized_skills"`
}

// Names returns the canonical skill names in extraction order.
func (e Extraction) Names() []string {
	out := make([]string, 0, len(e.Skills))
	for _, s := range e.Skills {
		out = append(out, s.Skill)
	}
	return out
}
