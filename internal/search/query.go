package search

import (
	"strings"
	"unicode"
)

const maxVariants = 10

// QueryContext is a job title query with the variants worth searching for.
// Variants always start with the normalized query.
type QueryContext struct {
	Original   string
	Normalized string
	Variants   []string
}

// NormalizeQuery lowercases, keeps letters, digits and '+', '#', '.' and
// collapses whitespace.
func NormalizeQuery(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	input = strings.ToLower(input)

	b := strings.Builder{}
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '+' || r == '#' || r == '.':
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '/' || r == '_':
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// CoreTitle drops seniority words, so "Senior Software Engineer" becomes
// "software engineer". A title made only of seniority words is returned as is.
func CoreTitle(normalized string) string {
	words := strings.Fields(normalized)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seniorityWords[strings.TrimSuffix(w, ".")]; ok {
			continue
		}
		kept = append(kept, w)
	}
	if len(kept) == 0 {
		return normalized
	}
	return strings.Join(kept, " ")
}

func ExpandQuery(normalized string) []string {
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return []string{}
	}

	out := make([]string, 0, maxVariants)
	seen := make(map[string]struct{}, maxVariants)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(normalized)
	core := CoreTitle(normalized)
	add(core)

	for _, syn := range GetSynonyms(core) {
		add(syn)
	}

	words := strings.Fields(core)

	// compact forms of spaced keys, e.g. fullstack -> full stack
	if len(words) >= 1 {
		for k, syns := range Synonyms {
			if !strings.Contains(k, " ") || strings.ReplaceAll(k, " ", "") != words[0] {
				continue
			}
			rest := strings.Join(words[1:], " ")
			add(strings.TrimSpace(k + " " + rest))
			for _, syn := range syns {
				add(strings.TrimSpace(syn + " " + rest))
			}
			break
		}
	}

	// replace a leading one or two word term that has synonyms
	tryPrefix := func(phrase string, rest []string) {
		syns := GetSynonyms(phrase)
		restStr := strings.Join(rest, " ")
		for _, syn := range syns {
			add(strings.TrimSpace(syn + " " + restStr))
		}
	}
	// and a trailing one, e.g. "python developer" -> "python engineer"
	trySuffix := func(head []string, phrase string) {
		headStr := strings.Join(head, " ")
		for _, syn := range GetSynonyms(phrase) {
			add(strings.TrimSpace(headStr + " " + syn))
		}
	}

	if len(words) >= 2 {
		tryPrefix(words[0], words[1:])
		tryPrefix(words[0]+" "+words[1], words[2:])
		trySuffix(words[:len(words)-1], words[len(words)-1])
	}

	if len(out) > maxVariants {
		out = out[:maxVariants]
	}
	return out
}

func ProcessQuery(input string) QueryContext {
	ctx := QueryContext{Original: input}
	ctx.Normalized = NormalizeQuery(input)
	if ctx.Normalized == "" {
		ctx.Variants = []string{}
		return ctx
	}
	ctx.Variants = ExpandQuery(ctx.Normalized)
	return ctx
}
