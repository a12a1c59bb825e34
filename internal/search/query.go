package search

import (
	"strings"

	"github.com/ppiankov/factforge/internal/model"
)

// maxQueryLen caps query strings; search providers truncate long queries anyway
const maxQueryLen = 200

// fillerWords are dropped from queries. Named entities and numeric values are
// kept verbatim since search providers index them literally.
var fillerWords = map[string]bool{
	"a": true, "an": true, "the": true,
	"is": true, "are": true, "was": true, "were": true, "be": true, "been": true,
	"has": true, "have": true, "had": true,
	"that": true, "this": true, "these": true, "those": true,
	"it": true, "its": true, "their": true, "his": true, "her": true,
	"of": true, "to": true, "as": true, "at": true, "by": true,
	"and": true, "or": true, "but": true,
	"with": true, "which": true, "who": true, "whom": true,
	"also": true, "very": true, "quite": true, "approximately": true,
	"about": true, "around": true, "roughly": true,
}

// FormulateQuery converts a claim into a concise search string. Deterministic,
// no external call: filler words are stripped, numbers and entity names pass
// through verbatim, and entities missing from the claim text are appended.
func FormulateQuery(claim model.Claim) string {
	var terms []string
	seen := make(map[string]bool)

	for _, word := range strings.Fields(claim.Text) {
		trimmed := strings.Trim(word, `.,;:!?"'()[]`)
		if trimmed == "" {
			continue
		}
		if fillerWords[strings.ToLower(trimmed)] && !hasDigit(trimmed) {
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		terms = append(terms, trimmed)
	}

	// Entities anchor the search even when phrased differently in the text
	for _, entity := range claim.Entities {
		entity = strings.TrimSpace(entity)
		if entity == "" {
			continue
		}
		if !seen[strings.ToLower(entity)] && !strings.Contains(strings.ToLower(claim.Text), strings.ToLower(entity)) {
			seen[strings.ToLower(entity)] = true
			terms = append(terms, entity)
		}
	}

	query := strings.Join(terms, " ")
	if len(query) > maxQueryLen {
		query = truncateAtWord(query, maxQueryLen)
	}
	return query
}

// FactCheckQuery builds a secondary query scoped to fact-checking sites,
// used when primary results are thin
func FactCheckQuery(claim model.Claim) string {
	base := FormulateQuery(claim)
	if len(base) > 120 {
		base = truncateAtWord(base, 120)
	}
	return base + " site:snopes.com OR site:factcheck.org OR site:politifact.com"
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// truncateAtWord cuts at the last word boundary within max
func truncateAtWord(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return cut
}
