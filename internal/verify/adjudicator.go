package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/factforge/internal/llm"
	"github.com/ppiankov/factforge/internal/model"
)

const maxVerdictSources = 3

// SourceClassifier grades the authority of a source URL. The validate
// package supplies the real implementation; a nil classifier leaves every
// source at TierUnknown.
type SourceClassifier interface {
	Classify(rawURL string) model.AuthorityTier
}

// Adjudicator turns one claim plus its search evidence into a verdict.
// It is stateless across calls and safe for concurrent use.
type Adjudicator struct {
	provider   llm.Provider
	classifier SourceClassifier
}

// NewAdjudicator creates an adjudicator backed by the given provider
func NewAdjudicator(provider llm.Provider, classifier SourceClassifier) *Adjudicator {
	return &Adjudicator{provider: provider, classifier: classifier}
}

// rawVerdict mirrors the JSON shape the model is asked to produce
type rawVerdict struct {
	Status       string  `json:"status"`
	Explanation  string  `json:"explanation"`
	CorrectValue *string `json:"correct_value"`
	Confidence   string  `json:"confidence"`
	IsMyth       bool    `json:"is_myth"`
	IsOutdated   bool    `json:"is_outdated"`
	Sources      []struct {
		Title     string `json:"title"`
		URL       string `json:"url"`
		Relevance string `json:"relevance"`
	} `json:"sources"`
}

// Adjudicate produces a verdict for a single claim. The known-myth table is
// consulted first; otherwise the claim and evidence go to the model and the
// response is normalized into the fixed status vocabulary. A claim is never
// "verified" without at least one search result behind it. Model failures
// wrap ErrAdjudicationFailure so the caller can map them to "unverifiable".
func (a *Adjudicator) Adjudicate(ctx context.Context, claim model.Claim, results []model.SearchResult) (model.Verdict, error) {
	if verdict, ok := checkKnownMyths(claim.Text); ok {
		verdict.Claim = claim
		return verdict, nil
	}

	tiers := a.classifyResults(results)

	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		System:      verificationSystemPrompt,
		Prompt:      buildVerificationPrompt(claim, results, tiers),
		Temperature: 0,
	})
	if err != nil {
		return model.Verdict{}, fmt.Errorf("%w: %v", model.ErrAdjudicationFailure, err)
	}

	verdict := a.parseResponse(resp.Text, results, tiers)
	verdict.Claim = claim

	// No evidence means no verification, whatever the model thinks
	if len(results) == 0 && verdict.Status == model.StatusVerified {
		verdict.Status = model.StatusFalse
		verdict.Confidence = model.ConfidenceLow
		verdict.Explanation = strings.TrimSpace(verdict.Explanation + " No supporting sources were found.")
	}

	normalizeVerdict(&verdict)
	a.fillSources(&verdict, results, tiers)

	return verdict, nil
}

// parseResponse extracts a structured verdict from the model output,
// falling back to keyword scanning when the output is not valid JSON
func (a *Adjudicator) parseResponse(text string, results []model.SearchResult, tiers []model.AuthorityTier) model.Verdict {
	raw, err := llm.ExtractJSONObject(text)
	if err != nil || validateAgainstSchema(verdictSchema(), raw) != nil {
		return parseTextVerdict(text, results, tiers)
	}

	var rv rawVerdict
	if err := json.Unmarshal(raw, &rv); err != nil {
		return parseTextVerdict(text, results, tiers)
	}

	verdict := model.Verdict{
		Status:       foldStatus(rv.Status),
		Explanation:  rv.Explanation,
		CorrectValue: rv.CorrectValue,
		Confidence:   foldConfidence(rv.Confidence),
		IsMyth:       rv.IsMyth,
		IsOutdated:   rv.IsOutdated,
	}
	for _, s := range rv.Sources {
		if s.URL == "" {
			continue
		}
		verdict.Sources = append(verdict.Sources, model.Source{
			Title:     valueOr(s.Title, "Source"),
			URL:       s.URL,
			Relevance: s.Relevance,
			Authority: a.classify(s.URL),
		})
	}
	return verdict
}

// parseTextVerdict salvages a verdict from free-text model output by
// keyword priority. False-signalling phrases win over verified-signalling
// ones so an explanation like "the claim that X is true has been debunked"
// lands on the right side.
func parseTextVerdict(text string, results []model.SearchResult, tiers []model.AuthorityTier) model.Verdict {
	lower := strings.ToLower(text)

	var status model.VerdictStatus
	switch {
	case containsAny(lower, "is false", "is incorrect", "is wrong", "debunked", "myth", "no evidence", "fabricated"):
		status = model.StatusFalse
	case containsAny(lower, "outdated", "was correct", "old data", "previously", "no longer", "changed to", "now is"):
		status = model.StatusInaccurate
	case containsAny(lower, "verified", "confirmed", "accurate", "correct", "true", "matches"):
		status = model.StatusVerified
	default:
		status = model.StatusFalse
	}

	explanation := truncate(text, 800)

	verdict := model.Verdict{
		Status:      status,
		Explanation: explanation,
		Confidence:  model.ConfidenceMedium,
		IsMyth:      strings.Contains(lower, "myth"),
		IsOutdated:  strings.Contains(lower, "outdated") || strings.Contains(lower, "old data"),
	}
	for i, r := range results {
		if len(verdict.Sources) >= maxVerdictSources {
			break
		}
		if r.URL == "" {
			continue
		}
		tier := model.TierUnknown
		if i < len(tiers) {
			tier = tiers[i]
		}
		verdict.Sources = append(verdict.Sources, model.Source{
			Title:     valueOr(r.Title, "Source"),
			URL:       r.URL,
			Relevance: truncate(r.Snippet, 200),
			Authority: tier,
		})
	}
	return verdict
}

// foldStatus normalizes status synonyms into the fixed vocabulary.
// Anything unrecognized is treated as unsupported, not as a system error.
func foldStatus(status string) model.VerdictStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "verified", "true", "correct", "accurate", "confirmed":
		return model.StatusVerified
	case "inaccurate", "outdated", "partially", "partially correct", "partially true":
		return model.StatusInaccurate
	default:
		return model.StatusFalse
	}
}

func foldConfidence(confidence string) model.Confidence {
	switch strings.ToLower(strings.TrimSpace(confidence)) {
	case "high":
		return model.ConfidenceHigh
	case "low":
		return model.ConfidenceLow
	default:
		return model.ConfidenceMedium
	}
}

// normalizeVerdict enforces the cross-field invariants after parsing
func normalizeVerdict(v *model.Verdict) {
	if v.Explanation == "" {
		v.Explanation = "Verification completed"
	}
	if v.IsOutdated && v.Status == model.StatusVerified {
		v.Status = model.StatusInaccurate
	}
	// correct_value is only meaningful for inaccurate verdicts
	if v.Status != model.StatusInaccurate {
		v.CorrectValue = nil
	}
	// and an inaccurate verdict has to cite one; without a corrected
	// value the claim is merely unsupported
	if v.Status == model.StatusInaccurate && (v.CorrectValue == nil || strings.TrimSpace(*v.CorrectValue) == "") {
		v.Status = model.StatusFalse
		v.CorrectValue = nil
		v.Confidence = model.ConfidenceLow
	}
}

// fillSources tops the verdict up to maxVerdictSources from the search
// results when the model cited fewer, skipping URLs already present
func (a *Adjudicator) fillSources(v *model.Verdict, results []model.SearchResult, tiers []model.AuthorityTier) {
	if len(v.Sources) >= maxVerdictSources {
		v.Sources = v.Sources[:maxVerdictSources]
		return
	}

	seen := make(map[string]bool, len(v.Sources))
	for _, s := range v.Sources {
		seen[s.URL] = true
	}

	for i, r := range results {
		if len(v.Sources) >= maxVerdictSources {
			break
		}
		if r.URL == "" || seen[r.URL] {
			continue
		}
		seen[r.URL] = true
		tier := model.TierUnknown
		if i < len(tiers) {
			tier = tiers[i]
		}
		v.Sources = append(v.Sources, model.Source{
			Title:     valueOr(r.Title, "Source"),
			URL:       r.URL,
			Relevance: truncate(r.Snippet, 200),
			Authority: tier,
		})
	}
}

func (a *Adjudicator) classifyResults(results []model.SearchResult) []model.AuthorityTier {
	tiers := make([]model.AuthorityTier, len(results))
	for i, r := range results {
		tiers[i] = a.classify(r.URL)
	}
	return tiers
}

func (a *Adjudicator) classify(rawURL string) model.AuthorityTier {
	if a.classifier == nil {
		return model.TierUnknown
	}
	return a.classifier.Classify(rawURL)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// truncate cuts s to at most max bytes without splitting a UTF-8 rune
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
