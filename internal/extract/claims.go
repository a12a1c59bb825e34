package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ppiankov/factforge/internal/llm"
	"github.com/ppiankov/factforge/internal/model"
)

// minClaimLen filters out fragments too short to be checkable
const minClaimLen = 15

// ClaimExtractor identifies verifiable factual claims in document text
// using a language model, with a regex prescan for numeric claims the
// model tends to miss.
type ClaimExtractor struct {
	provider      llm.Provider
	maxChunkChars int
}

// NewClaimExtractor creates a new claim extractor
func NewClaimExtractor(provider llm.Provider, maxChunkChars int) *ClaimExtractor {
	if maxChunkChars <= 0 {
		maxChunkChars = 5000
	}
	return &ClaimExtractor{
		provider:      provider,
		maxChunkChars: maxChunkChars,
	}
}

// rawClaim mirrors the model's output shape before strict conversion
type rawClaim struct {
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Entities []string `json:"entities"`
}

type claimList struct {
	Claims []rawClaim `json:"claims"`
}

// Extract returns all verifiable claims found in the document, in emission
// order: prescan claims first, then model claims chunk by chunk, deduplicated
// and sorted by claim-type priority.
//
// Chunks are evaluated independently; a failed chunk degrades gracefully and
// the claims from surviving chunks are kept. Only when every model call fails
// does Extract return model.ErrExtractionFailure.
func (e *ClaimExtractor) Extract(ctx context.Context, doc model.Document) ([]model.Claim, error) {
	var all []model.Claim

	// Regex prescan catches obvious numeric claims regardless of model behavior
	all = append(all, Prescan(doc)...)

	chunks := chunkPages(doc.Pages, e.maxChunkChars)

	var firstErr error
	failed := 0
	for _, chunk := range chunks {
		claims, err := e.extractChunk(ctx, chunk)
		if err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		all = append(all, claims...)
	}

	if len(chunks) > 0 && failed == len(chunks) {
		return nil, fmt.Errorf("%w: all %d chunks failed: %v", model.ErrExtractionFailure, len(chunks), firstErr)
	}

	all = dedupeClaims(all)

	// Stable sort keeps emission order within a type
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Type.Priority() < all[j].Type.Priority()
	})

	return all, nil
}

// extractChunk runs one model call and parses its output into strict claims
func (e *ClaimExtractor) extractChunk(ctx context.Context, chunk string) ([]model.Claim, error) {
	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		System:      claimSystemPrompt,
		Prompt:      buildClaimPrompt(chunk),
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("model call: %w", err)
	}

	raw, err := llm.ExtractJSONObject(resp.Text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrExtractionFailure, err)
	}

	if err := validateAgainstSchema(claimListSchema(), raw); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrExtractionFailure, err)
	}

	var list claimList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrExtractionFailure, err)
	}

	claims := make([]model.Claim, 0, len(list.Claims))
	for _, rc := range list.Claims {
		text := strings.TrimSpace(rc.Text)
		if len(text) < minClaimLen {
			continue
		}
		claims = append(claims, model.Claim{
			Text:     text,
			Type:     normalizeType(rc.Type, text),
			Entities: rc.Entities,
		})
	}
	return claims, nil
}

// normalizeType validates the model-assigned type, falling back to keyword
// auto-detection when it is missing or unrecognized
func normalizeType(t string, claimText string) model.ClaimType {
	ct := model.ClaimType(strings.ToLower(strings.TrimSpace(t)))
	if ct.IsValid() {
		return ct
	}
	return autoType(claimText)
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// autoType guesses a claim type from surface features of the text
func autoType(text string) model.ClaimType {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, "$", "billion", "million", "revenue", "profit", "stock", "market cap", "valuation"):
		return model.ClaimTypeFinancial
	case containsAny(lower, "%", "percent", "ratio", "rate"):
		return model.ClaimTypeStatistic
	case yearPattern.MatchString(lower):
		return model.ClaimTypeDate
	case containsAny(lower, "founded", "established", "launched", "invented", "discovered"):
		return model.ClaimTypeHistorical
	case containsAny(lower, "study", "research", "scientists", "experiment"):
		return model.ClaimTypeScientific
	default:
		return model.ClaimTypeTechnical
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// chunkPages groups pages into chunks under maxChars, never splitting a page
// across chunks unless a single page alone exceeds the limit (then it is
// split at sentence boundaries). No overlap: each chunk is evaluated
// independently and claims merged by concatenation.
func chunkPages(pages []string, maxChars int) []string {
	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}

	for _, page := range pages {
		if len(page) > maxChars {
			flush()
			chunks = append(chunks, splitLongPage(page, maxChars)...)
			continue
		}
		if current.Len() > 0 && current.Len()+len(page)+2 > maxChars {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(page)
	}
	flush()

	return chunks
}

// splitLongPage splits an oversized page at sentence boundaries
func splitLongPage(page string, maxChars int) []string {
	var chunks []string
	var current strings.Builder

	for _, sentence := range strings.SplitAfter(page, ". ") {
		if current.Len() > 0 && current.Len()+len(sentence) > maxChars {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(sentence)
	}
	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}
	return chunks
}

var normalizeStrip = regexp.MustCompile(`[^\w\s\d%$.]`)
var normalizeSpace = regexp.MustCompile(`\s+`)

// normalizeClaim prepares claim text for similarity comparison
func normalizeClaim(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = normalizeStrip.ReplaceAllString(text, "")
	text = normalizeSpace.ReplaceAllString(text, " ")
	return text
}

// similarityThreshold is the word-overlap ratio above which two claims are
// treated as duplicates
const similarityThreshold = 0.7

// claimsAreSimilar compares two claims by word-set overlap (Jaccard)
func claimsAreSimilar(a, b string) bool {
	wordsA := wordSet(normalizeClaim(a))
	wordsB := wordSet(normalizeClaim(b))
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return false
	}

	intersection := 0
	for w := range wordsA {
		if wordsB[w] {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	return float64(intersection)/float64(union) >= similarityThreshold
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

// dedupeClaims removes duplicate or near-duplicate claims, keeping the first
func dedupeClaims(claims []model.Claim) []model.Claim {
	var unique []model.Claim

	for _, claim := range claims {
		if len(strings.TrimSpace(claim.Text)) < minClaimLen {
			continue
		}
		duplicate := false
		for _, existing := range unique {
			if claimsAreSimilar(claim.Text, existing.Text) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, claim)
		}
	}

	return unique
}
