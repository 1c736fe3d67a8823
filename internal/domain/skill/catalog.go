package skill

import (
	"fmt"
	"sort"
	"strings"
)

type Category struct {
	Name   string
	Skills []string
}

type ProficiencyTier struct {
	Level    Proficiency
	Keywords []string
}

type phrase struct {
	canonical string
	words     []string
	target    []string
}

// Catalog holds the skill taxonomy, alias table and proficiency keyword
// tiers. It is immutable once built and safe for concurrent readers.
type Catalog struct {
	categoryOf map[string]string

	// indexed by first word, longest phrase first
	phrases map[string][]phrase
	aliases map[string][]phrase

	// whole-name aliases, only consulted by Canonical
	names map[string]string

	tiers []ProficiencyTier
}

func NewCatalog(categories []Category, aliases map[string]string, tiers []ProficiencyTier) (*Catalog, error) {
	c := &Catalog{
		categoryOf: map[string]string{},
		phrases:    map[string][]phrase{},
		aliases:    map[string][]phrase{},
		names:      map[string]string{},
	}

	for _, cat := range categories {
		name := strings.ToLower(strings.TrimSpace(cat.Name))
		if name == "" {
			return nil, fmt.Errorf("skill catalog: empty category name")
		}
		for _, s := range cat.Skills {
			canonical := strings.ToLower(strings.TrimSpace(s))
			words := tokenTexts(canonical)
			if len(words) == 0 {
				continue
			}
			if _, dup := c.categoryOf[canonical]; dup {
				continue
			}
			c.categoryOf[canonical] = name

			c.phrases[words[0]] = append(c.phrases[words[0]], phrase{canonical: canonical, words: words})
		}
	}
	if len(c.categoryOf) == 0 {
		return nil, ErrEmptyCatalog
	}

	for surface, target := range aliases {
		words := tokenTexts(surface)
		canonical := strings.ToLower(strings.TrimSpace(target))
		if len(words) == 0 {
			continue
		}
		if _, ok := c.categoryOf[canonical]; !ok {
			return nil, fmt.Errorf("%w: %q -> %q", ErrUnknownAliasTarget, surface, target)
		}
		c.aliases[words[0]] = append(c.aliases[words[0]], phrase{canonical: canonical, words: words, target: tokenTexts(canonical)})
	}

	sortLongestFirst(c.phrases)
	sortLongestFirst(c.aliases)

	for _, t := range tiers {
		kws := make([]string, 0, len(t.Keywords))
		for _, k := range t.Keywords {
			k = strings.ToLower(strings.TrimSpace(k))
			if k != "" {
				kws = append(kws, k)
			}
		}
		c.tiers = append(c.tiers, ProficiencyTier{Level: t.Level, Keywords: kws})
	}

	return c, nil
}

func sortLongestFirst(m map[string][]phrase) {
	for k := range m {
		ps := m[k]
		sort.SliceStable(ps, func(i, j int) bool {
			if len(ps[i].words) != len(ps[j].words) {
				return len(ps[i].words) > len(ps[j].words)
			}
			li := len(strings.Join(ps[i].words, " "))
			lj := len(strings.Join(ps[j].words, " "))
			if li != lj {
				return li > lj
			}
			return strings.Join(ps[i].words, " ") < strings.Join(ps[j].words, " ")
		})
	}
}

// CategoryOf returns the taxonomy category for a canonical skill, or
// CategoryOther when the skill is not registered.
func (c *Catalog) CategoryOf(skill string) string {
	if c == nil {
		return CategoryOther
	}
	if cat, ok := c.categoryOf[strings.ToLower(strings.TrimSpace(skill))]; ok {
		return cat
	}
	return CategoryOther
}

func (c *Catalog) Size() int {
	if c == nil {
		return 0
	}
	return len(c.categoryOf)
}

// Canonical maps a single skill name through the alias table. Names that
// are too ambiguous to match in prose, like "go", resolve here only.
func (c *Catalog) Canonical(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	words := tokenTexts(lowered)
	if c == nil || len(words) == 0 {
		return lowered
	}
	for _, a := range c.aliases[words[0]] {
		if len(a.words) == len(words) && hasTokenPrefix(tokenize(lowered), 0, a.words) {
			return a.canonical
		}
	}
	if target, ok := c.names[strings.Join(words, " ")]; ok {
		return target
	}
	return lowered
}

// CanonicalSkills canonicalizes a caller supplied skill list, dropping blanks
// and duplicates while keeping the first occurrence.
func (c *Catalog) CanonicalSkills(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		canonical := c.Canonical(n)
		if canonical == "" {
			continue
		}
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}
		out = append(out, canonical)
	}
	return out
}

func (c *Catalog) addNames(names map[string]string) error {
	for name, target := range names {
		canonical := strings.ToLower(strings.TrimSpace(target))
		if _, ok := c.categoryOf[canonical]; !ok {
			return fmt.Errorf("%w: %q -> %q", ErrUnknownAliasTarget, name, target)
		}
		c.names[strings.Join(tokenTexts(name), " ")] = canonical
	}
	return nil
}

var defaultCategories = []Category{
	{Name: "programming", Skills: []string{
		"python", "java", "javascript", "typescript", "c++", "c#", "golang", "rust",
		"ruby", "swift", "kotlin", "php", "scala", "sql", "perl", "haskell", "matlab",
	}},
	{Name: "web_development", Skills: []string{
		"react", "angular", "vue", "node.js", "django", "flask", "spring", "express.js",
		"next.js", "html", "css", "graphql", "rest api",
	}},
	{Name: "cloud", Skills: []string{
		"aws", "azure", "gcp", "cloud computing", "serverless",
	}},
	{Name: "databases", Skills: []string{
		"postgresql", "mysql", "mongodb", "redis", "elasticsearch", "sqlite",
	}},
	{Name: "data_science", Skills: []string{
		"machine learning", "deep learning", "data analysis", "pandas", "numpy",
		"tensorflow", "pytorch",
	}},
	{Name: "tools", Skills: []string{
		"git", "docker", "kubernetes", "jenkins", "ansible", "terraform", "ci/cd", "linux",
	}},
	{Name: "architecture", Skills: []string{
		"system design", "microservices", "distributed systems",
	}},
	{Name: "soft_skills", Skills: []string{
		"communication", "leadership", "teamwork", "problem solving",
		"project management", "time management",
	}},
}

var defaultAliases = map[string]string{
	"reactjs":                "react",
	"react.js":               "react",
	"nodejs":                 "node.js",
	"node js":                "node.js",
	"vuejs":                  "vue",
	"vue.js":                 "vue",
	"angularjs":              "angular",
	"expressjs":              "express.js",
	"express js":             "express.js",
	"nextjs":                 "next.js",
	"amazon aws":             "aws",
	"amazon web services":    "aws",
	"microsoft azure":        "azure",
	"google cloud":           "gcp",
	"google cloud platform":  "gcp",
	"go lang":                "golang",
	"go language":            "golang",
	"go programming":         "golang",
	"js":                     "javascript",
	"ts":                     "typescript",
	"cpp":                    "c++",
	"c sharp":                "c#",
	"postgres":               "postgresql",
	"mongo":                  "mongodb",
	"k8s":                    "kubernetes",
	"ml":                     "machine learning",
	"restful api":            "rest api",
	"continuous integration": "ci/cd",
	"continuous delivery":    "ci/cd",
	"team work":              "teamwork",
	"communication skills":   "communication",
	"distributed system":     "distributed systems",
	"micro services":         "microservices",
}

// Bare words that read as ordinary English in prose but are unambiguous as
// an explicit skill name.
var defaultNames = map[string]string{
	"go":      "golang",
	"express": "express.js",
}

var defaultTiers = []ProficiencyTier{
	{Level: ProficiencyExpert, Keywords: []string{"expert", "master", "advanced", "proficient", "skilled", "experienced"}},
	{Level: ProficiencyIntermediate, Keywords: []string{"intermediate", "moderate", "familiar", "knowledgeable"}},
	{Level: ProficiencyBeginner, Keywords: []string{"beginner", "basic", "novice", "learning", "familiarity"}},
}

// DefaultCatalog builds the built-in taxonomy. The tables are static so a
// construction error is a programming mistake.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultCategories, defaultAliases, defaultTiers)
	if err == nil {
		err = c.addNames(defaultNames)
	}
	if err != nil {
		panic(err)
	}
	return c
}
