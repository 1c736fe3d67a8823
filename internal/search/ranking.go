package search

import (
	"sort"
	"strings"
)

const (
	exactMatchScore  = 10
	prefixMatchScore = 4
	substringScore   = 3
	maxRelevance     = 20
)

// ComputeRelevance scores a job title against the query variants. The first
// variant is the query itself and counts double.
func ComputeRelevance(title string, q QueryContext) float64 {
	t := NormalizeQuery(title)
	if t == "" || len(q.Variants) == 0 {
		return 0
	}

	score := 0.0
	for i, v := range q.Variants {
		var s float64
		switch {
		case t == v:
			s = exactMatchScore
		case strings.HasPrefix(t, v):
			s = prefixMatchScore
		case strings.Contains(t, v):
			s = substringScore
		}
		if i == 0 {
			s *= 2
		}
		score += s
		if score >= maxRelevance {
			return maxRelevance
		}
	}
	return score
}

// RankTitles dedupes titles case-insensitively and orders them by relevance.
// Ties keep their input order.
func RankTitles(titles []string, q QueryContext) []string {
	type scored struct {
		title string
		score float64
	}

	seen := make(map[string]struct{}, len(titles))
	items := make([]scored, 0, len(titles))
	for _, t := range titles {
		key := NormalizeQuery(t)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, scored{title: strings.TrimSpace(t), score: ComputeRelevance(t, q)})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})

	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.title)
	}
	return out
}
