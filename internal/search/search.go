package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/factforge/internal/model"
	"github.com/ppiankov/factforge/internal/worker"
)

// Searcher defines the interface for web search providers
type Searcher interface {
	// Name returns the provider name
	Name() string

	// Search runs the query and returns the top results ranked by provider
	// relevance. No local re-ranking and no caching across queries.
	Search(ctx context.Context, query string, maxResults int) ([]model.SearchResult, error)
}

// NewSearcher creates a search provider based on configuration, wrapped with
// a shared rate limiter so concurrent verifications stay under provider limits
func NewSearcher(cfg model.SearchConfig) (Searcher, error) {
	var (
		inner    Searcher
		endpoint string
		err      error
	)

	switch strings.ToLower(cfg.Provider) {
	case "duckduckgo", "":
		inner, err = NewDuckDuckGo(cfg)
		endpoint = duckduckgoEndpoint
	case "brave":
		inner, err = NewBrave(cfg)
		endpoint = braveEndpoint
	default:
		return nil, fmt.Errorf("unknown search provider: %s (supported: duckduckgo, brave)", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	rps := cfg.RatePerSecond
	if rps <= 0 {
		rps = 1
	}

	return &throttled{
		inner:    inner,
		limiter:  worker.NewLimiter(rps, cfg.Burst),
		endpoint: endpoint,
	}, nil
}

// crawlPolicy is implemented by providers that scrape an endpoint and
// honor its robots.txt
type crawlPolicy interface {
	CrawlPolicy(ctx context.Context) (allowed bool, delay time.Duration)
}

// throttled enforces the shared rate-limit budget, and the provider's
// crawl policy when it has one, in front of a provider
type throttled struct {
	inner    Searcher
	limiter  *worker.Limiter
	endpoint string
}

func (t *throttled) Name() string {
	return t.inner.Name()
}

func (t *throttled) Search(ctx context.Context, query string, maxResults int) ([]model.SearchResult, error) {
	delay := time.Duration(0)
	if p, ok := t.inner.(crawlPolicy); ok {
		allowed, d := p.CrawlPolicy(ctx)
		if !allowed {
			return nil, fmt.Errorf("%w: robots.txt disallows %s", model.ErrSearchUnavailable, t.endpoint)
		}
		delay = d
	}
	if err := t.limiter.WaitWithDelay(ctx, t.endpoint, delay); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait: %v", model.ErrSearchUnavailable, err)
	}
	return t.inner.Search(ctx, query, maxResults)
}
