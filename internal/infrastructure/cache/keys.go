package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

func normalizeKeyPart(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

func IndustrySkillsKey(industry string) string {
	return "industry:skills:" + normalizeKeyPart(industry)
}

// MarketKey builds "market:<kind>:<industry>:<hash>" where the hash covers
// the remaining lookup arguments.
func MarketKey(kind, industry string, parts ...string) string {
	norm := make([]string, 0, len(parts))
	for _, p := range parts {
		norm = append(norm, normalizeKeyPart(p))
	}
	b, _ := json.Marshal(norm)
	sum := sha256.Sum256(b)
	return "market:" + kind + ":" + normalizeKeyPart(industry) + ":" + hex.EncodeToString(sum[:8])
}
