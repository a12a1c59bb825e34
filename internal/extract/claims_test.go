package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/factforge/internal/llm"
	"github.com/ppiankov/factforge/internal/model"
)

// stubProvider returns canned completions in order, then repeats the last
type stubProvider struct {
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) IsAvailable(_ context.Context) bool { return true }

func (s *stubProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	idx := s.calls
	s.calls++
	s.prompts = append(s.prompts, req.Prompt)
	if idx < len(s.errs) && s.errs[idx] != nil {
		return nil, s.errs[idx]
	}
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	return &llm.CompletionResponse{Text: s.responses[idx], Model: "stub"}, nil
}

func doc(pages ...string) model.Document {
	return model.Document{File: "test.pdf", Pages: pages}
}

func TestClaimExtractor_ParsesModelOutput(t *testing.T) {
	provider := &stubProvider{responses: []string{`{
		"claims": [
			{"text": "Acme Corp reported $50M revenue in 2023", "type": "financial", "entities": ["Acme Corp"]},
			{"text": "The first prototype shipped on March 3, 1998", "type": "date", "entities": []}
		]
	}`}}

	extractor := NewClaimExtractor(provider, 5000)
	claims, err := extractor.Extract(context.Background(), doc("Some page text without numeric patterns."))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(claims) != 2 {
		t.Fatalf("Expected 2 claims, got %d", len(claims))
	}
	if claims[0].Type != model.ClaimTypeFinancial {
		t.Errorf("Expected financial claim first (type priority), got %s", claims[0].Type)
	}
	if len(claims[0].Entities) != 1 || claims[0].Entities[0] != "Acme Corp" {
		t.Errorf("Expected entities preserved, got %v", claims[0].Entities)
	}
}

func TestClaimExtractor_ZeroClaimsIsNotAnError(t *testing.T) {
	provider := &stubProvider{responses: []string{`{"claims": []}`}}

	extractor := NewClaimExtractor(provider, 5000)
	claims, err := extractor.Extract(context.Background(), doc("Purely subjective marketing copy, nothing checkable."))
	if err != nil {
		t.Fatalf("Expected no error for zero claims, got %v", err)
	}
	if len(claims) != 0 {
		t.Errorf("Expected empty claim list, got %d", len(claims))
	}
}

func TestClaimExtractor_PartialChunkFailureDegrades(t *testing.T) {
	pageA := strings.Repeat("First chunk filler text. ", 150)
	pageB := strings.Repeat("Second chunk filler text. ", 150)

	provider := &stubProvider{
		errs: []error{errors.New("rate limited"), nil},
		responses: []string{
			"",
			`{"claims": [{"text": "The bridge opened to traffic in May 1937", "type": "historical", "entities": ["Golden Gate Bridge"]}]}`,
		},
	}

	extractor := NewClaimExtractor(provider, 4000)
	claims, err := extractor.Extract(context.Background(), doc(pageA, pageB))
	if err != nil {
		t.Fatalf("Expected partial failure to degrade gracefully, got %v", err)
	}
	if len(claims) != 1 {
		t.Fatalf("Expected claims from the surviving chunk, got %d", len(claims))
	}
	if provider.calls != 2 {
		t.Errorf("Expected 2 chunk calls, got %d", provider.calls)
	}
}

func TestClaimExtractor_AllChunksFailedIsExtractionFailure(t *testing.T) {
	provider := &stubProvider{errs: []error{errors.New("boom")}, responses: []string{""}}

	extractor := NewClaimExtractor(provider, 5000)
	_, err := extractor.Extract(context.Background(), doc("A single page of text here."))
	if !errors.Is(err, model.ErrExtractionFailure) {
		t.Fatalf("Expected ErrExtractionFailure, got %v", err)
	}
}

func TestClaimExtractor_MalformedOutputIsExtractionFailure(t *testing.T) {
	provider := &stubProvider{responses: []string{"I could not find any claims, sorry!"}}

	extractor := NewClaimExtractor(provider, 5000)
	_, err := extractor.Extract(context.Background(), doc("A single page of text here."))
	if !errors.Is(err, model.ErrExtractionFailure) {
		t.Fatalf("Expected ErrExtractionFailure for unparsable output, got %v", err)
	}
}

func TestClaimExtractor_SchemaRejectsWrongShape(t *testing.T) {
	// "claims" must be an array of objects, not strings
	provider := &stubProvider{responses: []string{`{"claims": ["just a string"]}`}}

	extractor := NewClaimExtractor(provider, 5000)
	_, err := extractor.Extract(context.Background(), doc("A single page of text here."))
	if !errors.Is(err, model.ErrExtractionFailure) {
		t.Fatalf("Expected schema validation failure, got %v", err)
	}
}

func TestClaimExtractor_InvalidTypeAutoDetected(t *testing.T) {
	provider := &stubProvider{responses: []string{`{
		"claims": [{"text": "Gadget Inc stock rose to $120 per share", "type": "bogus", "entities": []}]
	}`}}

	extractor := NewClaimExtractor(provider, 5000)
	claims, err := extractor.Extract(context.Background(), doc("Page without prescannable sentences"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(claims) != 1 {
		t.Fatalf("Expected 1 claim, got %d", len(claims))
	}
	if claims[0].Type != model.ClaimTypeFinancial {
		t.Errorf("Expected auto-detected financial type, got %s", claims[0].Type)
	}
}

func TestChunkPages_PageBoundaries(t *testing.T) {
	pageA := strings.Repeat("a", 3000)
	pageB := strings.Repeat("b", 3000)
	pageC := strings.Repeat("c", 1000)

	chunks := chunkPages([]string{pageA, pageB, pageC}, 5000)

	if len(chunks) != 2 {
		t.Fatalf("Expected 2 chunks, got %d", len(chunks))
	}
	// pageB and pageC fit together, pageA stands alone
	if !strings.HasPrefix(chunks[0], "a") || strings.Contains(chunks[0], "b") {
		t.Errorf("Chunk 1 should contain only page A")
	}
	if !strings.Contains(chunks[1], "b") || !strings.Contains(chunks[1], "c") {
		t.Errorf("Chunk 2 should contain pages B and C")
	}
}

func TestChunkPages_OversizedPageSplitsAtSentences(t *testing.T) {
	page := strings.TrimSpace(strings.Repeat("This sentence is exactly verbose enough to matter. ", 200))

	chunks := chunkPages([]string{page}, 2000)

	if len(chunks) < 2 {
		t.Fatalf("Expected oversized page to split, got %d chunks", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 2100 {
			t.Errorf("Chunk %d exceeds limit: %d chars", i, len(c))
		}
		if !strings.HasSuffix(strings.TrimSpace(c), ".") {
			t.Errorf("Chunk %d does not end at a sentence boundary: ...%q", i, c[len(c)-20:])
		}
	}
}

func TestPrescan_CatchesNumericClaims(t *testing.T) {
	d := doc(
		"Revenue hit $3.2 billion in the last quarter according to the filing. "+
			"Adoption grew 45% of the market within two years. "+
			"The firm was founded in 1987 by two engineers.",
		"Over 1,200,000 users signed up in the first month of launch.",
	)

	claims := Prescan(d)

	if len(claims) < 4 {
		t.Fatalf("Expected at least 4 prescan claims, got %d: %v", len(claims), claims)
	}

	types := map[model.ClaimType]bool{}
	for _, c := range claims {
		types[c.Type] = true
	}
	for _, want := range []model.ClaimType{model.ClaimTypeFinancial, model.ClaimTypeStatistic, model.ClaimTypeDate} {
		if !types[want] {
			t.Errorf("Expected a %s prescan claim", want)
		}
	}
}

func TestDedupeClaims_WordOverlap(t *testing.T) {
	claims := []model.Claim{
		{Text: "Acme Corp reported $50M revenue in fiscal year 2023", Type: model.ClaimTypeFinancial},
		{Text: "Acme Corp reported $50M revenue in fiscal 2023", Type: model.ClaimTypeFinancial},
		{Text: "The Eiffel Tower was completed in 1889", Type: model.ClaimTypeHistorical},
	}

	unique := dedupeClaims(claims)

	if len(unique) != 2 {
		t.Fatalf("Expected near-duplicates collapsed to 2 claims, got %d", len(unique))
	}
	if unique[0].Text != claims[0].Text {
		t.Errorf("Expected first occurrence kept, got %q", unique[0].Text)
	}
}
