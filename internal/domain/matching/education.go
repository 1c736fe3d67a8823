package matching

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type EducationLevel string

const (
	EducationPhD        EducationLevel = "phd"
	EducationMaster     EducationLevel = "master"
	EducationBachelor   EducationLevel = "bachelor"
	EducationAssociate  EducationLevel = "associate"
	EducationHighSchool EducationLevel = "high_school"
)

var educationWeights = map[EducationLevel]float64{
	EducationPhD:        1.0,
	EducationMaster:     0.8,
	EducationBachelor:   0.6,
	EducationAssociate:  0.4,
	EducationHighSchool: 0.2,
}

var educationLabels = map[EducationLevel]string{
	EducationPhD:        "doctorate",
	EducationMaster:     "master's",
	EducationBachelor:   "bachelor's",
	EducationAssociate:  "associate",
	EducationHighSchool: "high school",
}

// Checked in priority order. Abbreviations only count as whole words so that
// "combat" is not an MBA.
var educationMarkers = []struct {
	level         EducationLevel
	markers       []string
	abbreviations []string
}{
	{EducationPhD, []string{"doctor"}, []string{"phd", "ph.d"}},
	{EducationMaster, []string{"master"}, []string{"msc", "m.sc", "mba"}},
	{EducationBachelor, []string{"bachelor", "undergraduate"}, []string{"bsc", "b.sc"}},
	{EducationAssociate, []string{"associate"}, nil},
	{EducationHighSchool, []string{"high school", "high_school", "secondary"}, nil},
}

func (l EducationLevel) Weight() float64 {
	return educationWeights[l]
}

func (l EducationLevel) Label() string {
	if s, ok := educationLabels[l]; ok {
		return s
	}
	return string(l)
}

// ParseEducationLevel maps free text to a level by substring containment.
func ParseEducationLevel(s string) (EducationLevel, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	for _, m := range educationMarkers {
		for _, marker := range m.markers {
			if strings.Contains(s, marker) {
				return m.level, true
			}
		}
		for _, abbr := range m.abbreviations {
			if hasWord(s, abbr) {
				return m.level, true
			}
		}
	}
	return "", false
}

// hasWord reports whether w occurs in s with no letter or digit on either
// side.
func hasWord(s, w string) bool {
	for from := 0; from < len(s); {
		i := strings.Index(s[from:], w)
		if i < 0 {
			return false
		}
		start, end := from+i, from+i+len(w)
		before, _ := utf8.DecodeLastRuneInString(s[:start])
		after, _ := utf8.DecodeRuneInString(s[end:])
		if (start == 0 || !isWordRune(before)) && (end == len(s) || !isWordRune(after)) {
			return true
		}
		from = start + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// HighestEducation returns the best level across degrees, high school when
// nothing is recognized.
func HighestEducation(eds []Education) EducationLevel {
	best := EducationHighSchool
	for _, e := range eds {
		lvl, ok := ParseEducationLevel(e.Degree)
		if !ok {
			continue
		}
		if lvl.Weight() > best.Weight() {
			best = lvl
		}
	}
	return best
}

// RequiredEducation maps a job's education requirement, bachelor when
// unrecognized or empty.
func RequiredEducation(s string) EducationLevel {
	if lvl, ok := ParseEducationLevel(s); ok {
		return lvl
	}
	return EducationBachelor
}

func educationScore(candidate, required EducationLevel) float64 {
	cw, rw := candidate.Weight(), required.Weight()
	if rw <= 0 || cw >= rw {
		return 1.0
	}
	return cw / rw
}
