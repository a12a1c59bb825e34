package pipeline

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ppiankov/factforge/internal/extract"
	"github.com/ppiankov/factforge/internal/llm"
	"github.com/ppiankov/factforge/internal/model"
	"github.com/ppiankov/factforge/internal/pdf"
	"github.com/ppiankov/factforge/internal/search"
	"github.com/ppiankov/factforge/internal/validate"
	"github.com/ppiankov/factforge/internal/verify"
)

// minResultsBeforeFallback triggers the fact-check-site query when the
// primary search comes back thin
const minResultsBeforeFallback = 3

// adjudicating is the subset of verify.Adjudicator the pipeline needs
type adjudicating interface {
	Adjudicate(ctx context.Context, claim model.Claim, results []model.SearchResult) (model.Verdict, error)
}

// Checker runs the complete fact-check for one document: extract text,
// extract claims, verify each claim against web evidence, and assemble
// the report. It satisfies worker.Checker for batch runs.
type Checker struct {
	extractor   *pdf.Extractor
	claims      *extract.ClaimExtractor
	searcher    search.Searcher
	adjudicator adjudicating
	validator   *validate.Validator
	renderer    *Renderer
	config      *model.Config
}

// NewChecker wires a checker from configuration. The LLM provider must be
// reachable; search providers are constructed but not probed.
func NewChecker(cfg *model.Config) (*Checker, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("llm provider: %w", err)
	}

	searcher, err := search.NewSearcher(cfg.Search)
	if err != nil {
		return nil, fmt.Errorf("search provider: %w", err)
	}

	validator := validate.NewValidator(
		time.Duration(cfg.Validate.Timeout)*time.Second,
		cfg.Concurrency.ValidationWorkers,
		&cfg.Authority,
		cfg.Search.HTTPProxy, cfg.Search.HTTPSProxy, cfg.Search.NoProxy,
	)

	return &Checker{
		extractor:   pdf.NewExtractor(cfg.PDF),
		claims:      extract.NewClaimExtractor(provider, cfg.PDF.MaxChunkChars),
		searcher:    searcher,
		adjudicator: verify.NewAdjudicator(provider, validator.Classifier()),
		validator:   validator,
		renderer:    NewRenderer(cfg.Output.IncludeFooter),
		config:      cfg,
	}, nil
}

// CheckFile runs the full pipeline for one PDF and returns the report.
// Claim-level failures (search down, model error) degrade that claim to
// "unverifiable"; only document-level failures return an error.
func (c *Checker) CheckFile(ctx context.Context, path string) (*model.Report, error) {
	doc, err := c.extractor.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}
	c.logf("Extracted %d pages from %s", len(doc.Pages), path)

	claims, err := c.claims.Extract(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("extract claims: %w", err)
	}
	c.logf("Extracted %d claims", len(claims))

	verdicts := c.verifyAll(ctx, claims)

	report := &model.Report{
		ID:        uuid.NewString(),
		File:      path,
		Pages:     len(doc.Pages),
		CheckedAt: time.Now().UTC(),
		Verdicts:  verdicts,
		Claims:    make([]model.ReportEntry, 0, len(verdicts)),
		Stats:     model.BuildStats(verdicts),
	}
	for _, v := range verdicts {
		report.Claims = append(report.Claims, v.Entry())
	}

	if c.config.Validate.Enabled {
		validation, err := c.validator.ValidateReport(ctx, report)
		if err != nil {
			c.logf("Warning: source validation failed: %v", err)
		} else {
			report.Validation = validation
		}
	}

	return report, nil
}

// verifyAll checks claims concurrently. Results land in index-addressed
// slots so the report preserves the extractor's emission order no matter
// which verification finishes first.
func (c *Checker) verifyAll(ctx context.Context, claims []model.Claim) []model.Verdict {
	verdicts := make([]model.Verdict, len(claims))
	if len(claims) == 0 {
		return verdicts
	}

	maxConcurrent := c.config.Concurrency.MaxVerifications
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	semaphore := make(chan struct{}, maxConcurrent)

	var wg sync.WaitGroup
	for i, claim := range claims {
		wg.Add(1)
		go func(idx int, cl model.Claim) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				verdicts[idx] = unverifiableVerdict(cl, "verification cancelled before it started")
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			verdicts[idx] = c.verifyOne(ctx, cl)
		}(i, claim)
	}
	wg.Wait()

	return verdicts
}

// verifyOne runs search plus adjudication for a single claim
func (c *Checker) verifyOne(ctx context.Context, claim model.Claim) model.Verdict {
	results, err := c.gatherEvidence(ctx, claim)
	if err != nil {
		c.logf("Search failed for claim %q: %v", truncateForLog(claim.Text), err)
		return unverifiableVerdict(claim, fmt.Sprintf("Search unavailable: %v. Manual review recommended.", err))
	}

	var verdict model.Verdict
	err = withRetry(ctx, c.config.Retry.Attempts, c.config.Retry.BaseBackoff, func() error {
		var aerr error
		verdict, aerr = c.adjudicator.Adjudicate(ctx, claim, results)
		return aerr
	})
	if err != nil {
		c.logf("Adjudication failed for claim %q: %v", truncateForLog(claim.Text), err)
		return unverifiableVerdict(claim, fmt.Sprintf("Verification error: %v. Manual review recommended.", err))
	}

	return verdict
}

// gatherEvidence runs the primary search, then widens to fact-check sites
// when results are thin. Duplicate URLs are collapsed, first hit wins.
func (c *Checker) gatherEvidence(ctx context.Context, claim model.Claim) ([]model.SearchResult, error) {
	maxResults := c.config.Search.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}

	var primary []model.SearchResult
	err := withRetry(ctx, c.config.Retry.Attempts, c.config.Retry.BaseBackoff, func() error {
		var serr error
		primary, serr = c.searcher.Search(ctx, search.FormulateQuery(claim), maxResults)
		return serr
	})
	if err != nil {
		return nil, err
	}

	results := dedupeByURL(primary, nil)

	if len(results) < minResultsBeforeFallback {
		// Best effort: a failed fallback search never fails the claim
		if extra, ferr := c.searcher.Search(ctx, search.FactCheckQuery(claim), minResultsBeforeFallback+2); ferr == nil {
			results = dedupeByURL(extra, results)
		}
	}

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// dedupeByURL appends incoming results to base, skipping URLs already present
func dedupeByURL(incoming, base []model.SearchResult) []model.SearchResult {
	seen := make(map[string]bool, len(base))
	for _, r := range base {
		seen[r.URL] = true
	}
	out := base
	for _, r := range incoming {
		if r.URL == "" || seen[r.URL] {
			continue
		}
		seen[r.URL] = true
		out = append(out, r)
	}
	return out
}

// unverifiableVerdict marks a claim that could not be checked because of a
// system failure. Kept apart from evidence-based "false" so readers can
// tell "we could not check this" from "this is wrong".
func unverifiableVerdict(claim model.Claim, explanation string) model.Verdict {
	return model.Verdict{
		Claim:       claim,
		Status:      model.StatusUnverifiable,
		Explanation: explanation,
		Confidence:  model.ConfidenceLow,
		Sources:     []model.Source{},
	}
}

// RenderReport renders the report to the configured outputs
func (c *Checker) RenderReport(report *model.Report, jsonPath, mdPath string) error {
	if jsonPath != "" {
		if err := c.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		c.logf("Wrote JSON: %s", jsonPath)
	}

	if mdPath != "" {
		if err := c.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		c.logf("Wrote Markdown: %s", mdPath)
	}

	c.renderer.RenderSummary(report)

	return nil
}

func (c *Checker) logf(format string, args ...any) {
	if c.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

func truncateForLog(s string) string {
	if len(s) <= 60 {
		return s
	}
	cut := 60
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
