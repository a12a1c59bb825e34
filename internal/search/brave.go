package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ppiankov/factforge/internal/model"
	"github.com/ppiankov/factforge/internal/util"
)

const braveEndpoint = "https://api.search.brave.com/res/v1/web/search"

// Brave searches via the Brave Search API (JSON, requires a subscription token)
type Brave struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// NewBrave creates a new Brave Search API client
func NewBrave(cfg model.SearchConfig) (*Brave, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Brave Search API key is required")
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 20 * time.Second
	}

	return &Brave{
		endpoint: braveEndpoint,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
		},
	}, nil
}

// SetEndpoint overrides the API endpoint (tests)
func (b *Brave) SetEndpoint(endpoint string) {
	b.endpoint = endpoint
}

// Name returns the provider name
func (b *Brave) Name() string {
	return "brave"
}

// Search runs the query against the Brave Search API
func (b *Brave) Search(ctx context.Context, query string, maxResults int) ([]model.SearchResult, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{}
	params.Add("q", query)
	params.Add("count", fmt.Sprintf("%d", maxResults))

	reqURL := fmt.Sprintf("%s?%s", b.endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", b.apiKey)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrSearchUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: Brave API status %d", model.ErrSearchUnavailable, resp.StatusCode)
	}

	var result braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", model.ErrSearchUnavailable, err)
	}

	results := make([]model.SearchResult, 0, len(result.Web.Results))
	for _, r := range result.Web.Results {
		results = append(results, model.SearchResult{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Description,
		})
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}
