package skill

import (
	"strings"
	"unicode/utf8"
)

const proficiencyWindow = 50

var listSeparators = []string{",", " and ", " or "}

type match struct {
	skill string
	start int
	end   int
}

// matcher runs alias normalization and phrase matching over a catalog.
type matcher struct {
	catalog *Catalog
}

func newMatcher(c *Catalog) (matcher, error) {
	if c == nil || c.Size() == 0 {
		return matcher{}, &ExtractionError{Message: "matcher unavailable", Cause: ErrEmptyCatalog}
	}
	return matcher{catalog: c}, nil
}

func (m matcher) prepare(text string) (string, error) {
	if !utf8.ValidString(text) {
		return "", &ExtractionError{Message: "input is not valid UTF-8 text"}
	}
	return strings.ToLower(text), nil
}

// applyAliases rewrites alias phrases to their canonical words, trying the
// longest alias first at every token position. Replacement tokens keep the
// byte span of the surface phrase.
func (m matcher) applyAliases(toks []token) []token {
	out := make([]token, 0, len(toks))
	for i := 0; i < len(toks); {
		replaced := false
		for _, a := range m.catalog.aliases[toks[i].text] {
			if !hasTokenPrefix(toks, i, a.words) {
				continue
			}
			start := toks[i].start
			end := toks[i+len(a.words)-1].end
			for _, w := range a.target {
				out = append(out, token{text: w, start: start, end: end})
			}
			i += len(a.words)
			replaced = true
			break
		}
		if !replaced {
			out = append(out, toks[i])
			i++
		}
	}
	return out
}

func (m matcher) find(lowered string) []match {
	toks := m.applyAliases(tokenize(lowered))
	out := make([]match, 0)
	for i := 0; i < len(toks); {
		found := false
		for _, p := range m.catalog.phrases[toks[i].text] {
			if !hasTokenPrefix(toks, i, p.words) {
				continue
			}
			out = append(out, match{skill: p.canonical, start: toks[i].start, end: toks[i+len(p.words)-1].end})
			i += len(p.words)
			found = true
			break
		}
		if !found {
			i++
		}
	}
	return out
}

func dedupe(ms []match) []match {
	seen := make(map[string]struct{}, len(ms))
	out := make([]match, 0, len(ms))
	for _, mt := range ms {
		if _, ok := seen[mt.skill]; ok {
			continue
		}
		seen[mt.skill] = struct{}{}
		out = append(out, mt)
	}
	return out
}

func limit(maxSkills int) int {
	if maxSkills <= 0 {
		return DefaultMaxSkills
	}
	return maxSkills
}

func (m matcher) names(text string, maxSkills int) ([]string, error) {
	lowered, err := m.prepare(text)
	if err != nil {
		return nil, err
	}

	ms := dedupe(m.find(lowered))
	n := limit(maxSkills)
	out := make([]string, 0, n)
	for _, mt := range ms {
		if len(out) >= n {
			break
		}
		out = append(out, mt.skill)
	}
	return out, nil
}

// lookback returns the text preceding start within the same sentence, at
// most proficiencyWindow bytes long.
func lookback(text string, start int) string {
	from := sentenceStart(text, start)
	if start-from > proficiencyWindow {
		from = start - proficiencyWindow
		for from < start && !utf8.RuneStart(text[from]) {
			from++
		}
	}
	return text[from:start]
}

func (m matcher) proficiency(window string) Proficiency {
	toks := tokenize(window)
	for _, tier := range m.catalog.tiers {
		if tierApplies(window, toks, tier.Keywords) {
			return tier.Level
		}
	}
	return ProficiencyIntermediate
}

// tierApplies reports whether the last keyword of the tier in the window is
// not cut off from the skill by a list separator.
func tierApplies(window string, toks []token, keywords []string) bool {
	for i := len(toks) - 1; i >= 0; i-- {
		if !containsWord(keywords, toks[i].text) {
			continue
		}
		rest := window[toks[i].end:]
		for _, sep := range listSeparators {
			if strings.Contains(rest, sep) {
				return false
			}
		}
		return true
	}
	return false
}

func containsWord(words []string, w string) bool {
	for _, x := range words {
		if x == w {
			return true
		}
	}
	return false
}

type Extractor struct {
	m matcher
}

func NewExtractor(c *Catalog) (*Extractor, error) {
	m, err := newMatcher(c)
	if err != nil {
		return nil, err
	}
	return &Extractor{m: m}, nil
}

// ExtractSkills returns canonical skill names in order of first mention.
func (e *Extractor) ExtractSkills(text string, maxSkills int) ([]string, error) {
	if e == nil {
		return nil, &ExtractionError{Message: "matcher unavailable"}
	}
	return e.m.names(text, maxSkills)
}

func (e *Extractor) ExtractSkillsWithContext(text string, maxSkills int) (Extraction, error) {
	if e == nil {
		return Extraction{}, &ExtractionError{Message: "matcher unavailable"}
	}
	lowered, err := e.m.prepare(text)
	if err != nil {
		return Extraction{}, err
	}

	ms := dedupe(e.m.find(lowered))
	n := limit(maxSkills)
	if len(ms) > n {
		ms = ms[:n]
	}

	res := Extraction{
		Skills:            make([]ExtractedSkill, 0, len(ms)),
		CategorizedSkills: map[string][]ExtractedSkill{},
	}
	for _, mt := range ms {
		window := lookback(lowered, mt.start)
		es := ExtractedSkill{
			Skill:       mt.skill,
			Context:     strings.TrimSpace(window + lowered[mt.start:mt.end]),
			Proficiency: e.m.proficiency(window),
			Category:    e.m.catalog.CategoryOf(mt.skill),
		}
		res.Skills = append(res.Skills, es)
		res.CategorizedSkills[es.Category] = append(res.CategorizedSkills[es.Category], es)
	}
	return res, nil
}

// RequirementExtractor derives required skills from a job description with
// the same matching rules as Extractor, without proficiency inference.
type RequirementExtractor struct {
	m matcher
}

func NewRequirementExtractor(c *Catalog) (*RequirementExtractor, error) {
	m, err := newMatcher(c)
	if err != nil {
		return nil, err
	}
	return &RequirementExtractor{m: m}, nil
}

func (e *RequirementExtractor) ExtractJobRequirements(description string, maxSkills int) ([]string, error) {
	if e == nil {
		return nil, &ExtractionError{Message: "matcher unavailable"}
	}
	return e.m.names(description, maxSkills)
}
