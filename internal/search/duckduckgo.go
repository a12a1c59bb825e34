package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/ppiankov/factforge/internal/model"
	"github.com/ppiankov/factforge/internal/util"
)

const duckduckgoEndpoint = "https://html.duckduckgo.com/html/"

// DuckDuckGo searches via the HTML (non-JS) endpoint and parses the result
// page. No API key required.
type DuckDuckGo struct {
	endpoint   string
	httpClient *http.Client
	userAgent  string
	robots     *util.RobotsChecker // nil unless politeness checking is enabled
}

// NewDuckDuckGo creates a new DuckDuckGo HTML search client
func NewDuckDuckGo(cfg model.SearchConfig) (*DuckDuckGo, error) {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 20 * time.Second
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "FactForge/0.1 (+https://github.com/ppiankov/factforge)"
	}

	d := &DuckDuckGo{
		endpoint: duckduckgoEndpoint,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
		},
		userAgent: userAgent,
	}

	if cfg.RespectRobots {
		d.robots = util.NewRobotsChecker(util.NormalizeUserAgent(userAgent), timeout)
	}

	return d, nil
}

// SetEndpoint overrides the search endpoint (tests)
func (d *DuckDuckGo) SetEndpoint(endpoint string) {
	d.endpoint = endpoint
}

// Name returns the provider name
func (d *DuckDuckGo) Name() string {
	return "duckduckgo"
}

// CrawlPolicy reports whether the endpoint may be scraped and the crawl
// delay its robots.txt requests. Permissive when politeness checking is
// disabled or robots.txt cannot be fetched.
func (d *DuckDuckGo) CrawlPolicy(ctx context.Context) (bool, time.Duration) {
	if d.robots == nil {
		return true, 0
	}
	allowed, delay, err := d.robots.CanFetch(ctx, d.endpoint)
	if err != nil {
		return true, 0
	}
	return allowed, delay
}

// Search runs the query against the HTML endpoint and returns the top results
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]model.SearchResult, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	reqURL := d.endpoint + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrSearchUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", model.ErrSearchUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2_000_000))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", model.ErrSearchUnavailable, err)
	}

	results, err := parseResultsHTML(string(body))
	if err != nil {
		return nil, fmt.Errorf("%w: parse results: %v", model.ErrSearchUnavailable, err)
	}

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// parseResultsHTML extracts result snippets from the DuckDuckGo HTML page.
// Each result is a div with class "result"; the title link carries class
// "result__a" and the snippet carries "result__snippet".
func parseResultsHTML(page string) ([]model.SearchResult, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, err
	}

	var results []model.SearchResult

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "result") {
			if r, ok := parseResultNode(n); ok {
				results = append(results, r)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return results, nil
}

// parseResultNode pulls title, URL and snippet out of one result div
func parseResultNode(n *html.Node) (model.SearchResult, bool) {
	var result model.SearchResult

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			switch {
			case hasClass(n, "result__a"):
				result.Title = strings.TrimSpace(nodeText(n))
				result.URL = resolveRedirect(attrValue(n, "href"))
			case hasClass(n, "result__snippet"):
				result.Snippet = strings.TrimSpace(nodeText(n))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	if result.URL == "" || result.Title == "" {
		return model.SearchResult{}, false
	}
	return result, true
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= redirect links to the
// destination URL
func resolveRedirect(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if uddg := parsed.Query().Get("uddg"); uddg != "" {
		if decoded, err := url.QueryUnescape(uddg); err == nil {
			return decoded
		}
	}
	if parsed.Scheme == "" && strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	return href
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			for _, c := range strings.Fields(attr.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// nodeText concatenates all text nodes under n
func nodeText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}
