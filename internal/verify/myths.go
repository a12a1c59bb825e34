package verify

import (
	"regexp"
	"strings"

	"github.com/ppiankov/factforge/internal/model"
)

// mythEntry is one known debunked myth. Patterns match against the
// lowercased claim text.
type mythEntry struct {
	pattern     *regexp.Regexp
	correct     string
	explanation string
}

// knownMyths is a small database of widely circulated myths that can be
// rejected without a search round-trip. Matches always come back false
// with high confidence.
var knownMyths = []mythEntry{
	{
		pattern:     regexp.MustCompile(`10% of (the |their )?brain`),
		correct:     "Humans use virtually all parts of their brain",
		explanation: "This is a debunked myth. Brain scans show activity throughout the entire brain.",
	},
	{
		pattern:     regexp.MustCompile(`great wall.*space`),
		correct:     "The Great Wall is not visible from space with the naked eye",
		explanation: "Astronauts have confirmed this is a myth. The wall is too narrow.",
	},
	{
		pattern:     regexp.MustCompile(`goldfish.*memory`),
		correct:     "Goldfish can remember things for months",
		explanation: "Studies show goldfish have memory spans of at least 3 months.",
	},
	{
		pattern:     regexp.MustCompile(`lightning.*(never|doesn't|does not).*twice|lightning.*twice`),
		correct:     "Lightning frequently strikes the same place",
		explanation: "Tall structures like the Empire State Building are struck dozens of times per year.",
	},
	{
		pattern:     regexp.MustCompile(`sugar.*hyperactiv`),
		correct:     "Sugar does not cause hyperactivity in children",
		explanation: "Multiple scientific studies have debunked this myth.",
	},
	{
		pattern:     regexp.MustCompile(`crack(ing)?.*knuckle|knuckle.*crack`),
		correct:     "Knuckle cracking does not cause arthritis",
		explanation: "Long-term studies found no correlation between knuckle cracking and arthritis.",
	},
	{
		pattern:     regexp.MustCompile(`bats are blind`),
		correct:     "Bats can see quite well",
		explanation: "All bat species have functional eyes and many have excellent night vision.",
	},
	{
		pattern:     regexp.MustCompile(`bulls?.*(hate|charge|angry|enrage).*red|red.*(enrage|anger).*bulls?`),
		correct:     "Bulls are colorblind to red; they react to movement",
		explanation: "Bulls charge at the cape's movement, not its color.",
	},
}

// checkKnownMyths returns a definitive verdict when the claim matches a
// known debunked myth, skipping search and adjudication entirely.
func checkKnownMyths(text string) (model.Verdict, bool) {
	lower := strings.ToLower(text)
	for _, m := range knownMyths {
		if m.pattern.MatchString(lower) {
			// correct_value stays null: it is reserved for inaccurate
			// verdicts, so the correction rides in the explanation
			return model.Verdict{
				Status:      model.StatusFalse,
				Explanation: m.explanation + " " + m.correct + ".",
				Confidence:  model.ConfidenceHigh,
				IsMyth:      true,
				Sources: []model.Source{
					{
						Title:     "Scientific Consensus",
						URL:       "https://www.snopes.com",
						Relevance: "Myth debunked",
						Authority: model.TierSecondary,
					},
				},
			}, true
		}
	}
	return model.Verdict{}, false
}
