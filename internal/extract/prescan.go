package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/factforge/internal/model"
)

// Regex prescan patterns for numeric claims. The model occasionally skips
// dense statistics; these guarantee percentages, money amounts, dated events
// and large counts are always surfaced for verification.
var prescanPatterns = []struct {
	re   *regexp.Regexp
	typ  model.ClaimType
	name string
}{
	{
		re:   regexp.MustCompile(`(?i)\d+(?:\.\d+)?%\s*(?:of|increase|decrease|growth|decline|rise|fall)[^.]*\.`),
		typ:  model.ClaimTypeStatistic,
		name: "percentage",
	},
	{
		re:   regexp.MustCompile(`(?i)\$[\d,]+(?:\.\d+)?(?:\s*(?:billion|million|trillion))?[^.]*\.`),
		typ:  model.ClaimTypeFinancial,
		name: "money",
	},
	{
		re:   regexp.MustCompile(`(?i)(?:in|since|from|founded|established|started)\s+\d{4}[^.]*\.`),
		typ:  model.ClaimTypeDate,
		name: "year",
	},
	{
		re:   regexp.MustCompile(`(?i)\d{1,3}(?:,\d{3})+\s*(?:people|users|customers|employees|downloads)[^.]*\.`),
		typ:  model.ClaimTypeStatistic,
		name: "count",
	},
}

// prescanMinLen filters out trivially short matches
const prescanMinLen = 20

// Prescan extracts obvious numeric claims with regexes, independent of the
// model. Matches shorter than prescanMinLen characters are ignored.
func Prescan(doc model.Document) []model.Claim {
	var claims []model.Claim

	for _, page := range doc.Pages {
		for _, p := range prescanPatterns {
			for _, match := range p.re.FindAllString(page, -1) {
				match = strings.TrimSpace(match)
				if len(match) <= prescanMinLen {
					continue
				}
				claims = append(claims, model.Claim{
					Text: match,
					Type: p.typ,
				})
			}
		}
	}

	return claims
}
