package skill

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type token struct {
	text  string
	start int
	end   int
}

func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#'
}

// tokenize splits lowercase text into word tokens with byte offsets.
// A dot stays inside a token only when it joins two token runes, so
// "node.js" is one token while "python." yields "python".
func tokenize(s string) []token {
	out := make([]token, 0, len(s)/5+1)
	start := -1
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case isTokenRune(r):
			if start < 0 {
				start = i
			}
		case r == '.' && start >= 0 && i+size < len(s):
			next, _ := utf8.DecodeRuneInString(s[i+size:])
			if !isTokenRune(next) {
				out = append(out, token{text: s[start:i], start: start, end: i})
				start = -1
			}
		default:
			if start >= 0 {
				out = append(out, token{text: s[start:i], start: start, end: i})
				start = -1
			}
		}
		i += size
	}
	if start >= 0 {
		out = append(out, token{text: s[start:], start: start, end: len(s)})
	}
	return out
}

func tokenTexts(s string) []string {
	toks := tokenize(strings.ToLower(strings.TrimSpace(s)))
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.text)
	}
	return out
}

func hasTokenPrefix(toks []token, at int, words []string) bool {
	if len(words) == 0 || at+len(words) > len(toks) {
		return false
	}
	for i, w := range words {
		if toks[at+i].text != w {
			return false
		}
	}
	return true
}

// sentenceStart returns the offset where the sentence containing pos begins.
func sentenceStart(s string, pos int) int {
	for i := pos - 1; i >= 0; i-- {
		switch s[i] {
		case '\n', '\r':
			return i + 1
		case '.', '!', '?', ';':
			if i+1 < len(s) && (s[i+1] == ' ' || s[i+1] == '\t' || s[i+1] == '\n') {
				return i + 1
			}
		}
	}
	return 0
}
