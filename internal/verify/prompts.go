package verify

import (
	"fmt"
	"strings"

	"github.com/ppiankov/factforge/internal/model"
)

const verificationSystemPrompt = `You are a fact-checker that ONLY outputs JSON. Verify claims against search results.

STATUS OPTIONS (use exactly one):
- "verified" = Claim is accurate and confirmed by sources
- "inaccurate" = Claim has errors or is outdated (provide correct_value)
- "false" = Claim is wrong or unsupported

SOURCE AUTHORITY: each source below is tagged with its authority tier.
When sources conflict, prefer [primary] (government, official filings,
academic) over [secondary] (reputable news, encyclopedias, fact-checkers)
over [tertiary] (everything else).

ALWAYS respond with ONLY a JSON object, no other text.`

// buildVerificationPrompt assembles the adjudication prompt for one claim
func buildVerificationPrompt(claim model.Claim, results []model.SearchResult, tiers []model.AuthorityTier) string {
	var b strings.Builder

	fmt.Fprintf(&b, "CLAIM: %s\n\n", claim.Text)

	if claim.Type == model.ClaimTypeFinancial {
		b.WriteString("This is a financial claim. Pay close attention to figures, ")
		b.WriteString("reporting periods and currency. Numbers that were correct for ")
		b.WriteString("an earlier period but have since changed are \"inaccurate\", not \"false\".\n\n")
	}

	b.WriteString("SOURCES:\n")
	b.WriteString(formatSearchResults(results, tiers))

	b.WriteString(`
Respond with ONLY this JSON (no markdown, no explanation outside JSON):
{"status": "verified", "explanation": "why this status based on sources", "correct_value": null, "confidence": "high", "is_myth": false, "is_outdated": false, "sources": [{"title": "source name", "url": "url", "relevance": "how it helped"}]}

Choose status: "verified" if sources confirm it, "inaccurate" if outdated/wrong numbers (include correct_value), "false" if no evidence or contradicted.

JSON response:`)

	return b.String()
}

// formatSearchResults renders numbered sources with authority tags for the model
func formatSearchResults(results []model.SearchResult, tiers []model.AuthorityTier) string {
	if len(results) == 0 {
		return "No search results found. Use your knowledge to verify if possible.\n"
	}

	var b strings.Builder
	for i, r := range results {
		tier := model.TierUnknown
		if i < len(tiers) {
			tier = tiers[i]
		}
		fmt.Fprintf(&b, "\n[Source %d] [%s]\nTitle: %s\nURL: %s\nContent: %s\n",
			i+1, tier, valueOr(r.Title, "N/A"), valueOr(r.URL, "N/A"), valueOr(r.Snippet, "N/A"))
	}
	return b.String()
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
