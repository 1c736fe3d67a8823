package matching

import (
	"errors"
	"math"
	"regexp"
	"strconv"
)

var durationNumberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

var errInvalidYears = errors.New("years of experience must be a finite non-negative number")

// TotalYears sums the experience. Entry durations contribute the first number
// in their text, or nothing when none is present.
func (e Experience) TotalYears() (float64, error) {
	switch e.kind {
	case experienceYears:
		if math.IsNaN(e.years) || math.IsInf(e.years, 0) || e.years < 0 {
			return 0, errInvalidYears
		}
		return e.years, nil
	case experienceEntries:
		total := 0.0
		for _, it := range e.entries {
			total += durationYears(it.Duration)
		}
		return total, nil
	default:
		return 0, nil
	}
}

func durationYears(s string) float64 {
	m := durationNumberRe.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

func experienceScore(total, required float64) float64 {
	if required <= 0 {
		if total > 0 {
			return 1.0
		}
		return 0.0
	}
	return math.Min(total/required, 1.0)
}
