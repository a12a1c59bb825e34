package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ppiankov/factforge/internal/model"
)

const resultPage = `<!DOCTYPE html>
<html><body>
<div id="links" class="results">
  <div class="result results_links results_links_deep web-result">
    <div class="links_main links_deep result__body">
      <h2 class="result__title">
        <a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.sec.gov%2Ffilings%2Facme-2023">Acme Corp 2023 Annual Report - SEC</a>
      </h2>
      <a class="result__snippet" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.sec.gov%2Ffilings%2Facme-2023">Acme Corp reported <b>$45M</b> in revenue for fiscal year 2023.</a>
    </div>
  </div>
  <div class="result results_links results_links_deep web-result">
    <div class="links_main links_deep result__body">
      <h2 class="result__title">
        <a rel="nofollow" class="result__a" href="https://www.reuters.com/business/acme-earnings">Acme earnings beat estimates</a>
      </h2>
      <a class="result__snippet" href="https://www.reuters.com/business/acme-earnings">Acme posted quarterly earnings above analyst expectations.</a>
    </div>
  </div>
  <div class="result result--ad">
    <div class="links_main result__body">
      <h2 class="result__title"></h2>
    </div>
  </div>
</div>
</body></html>`

func newTestDuckDuckGo(t *testing.T, handler http.HandlerFunc) (*DuckDuckGo, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	d, err := NewDuckDuckGo(model.SearchConfig{Timeout: 5})
	if err != nil {
		t.Fatalf("NewDuckDuckGo failed: %v", err)
	}
	d.SetEndpoint(server.URL)
	return d, server
}

func TestDuckDuckGoSearch_ParsesResults(t *testing.T) {
	var gotQuery string
	d, _ := newTestDuckDuckGo(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(resultPage))
	})

	results, err := d.Search(context.Background(), "Acme Corp revenue 2023", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if gotQuery != "Acme Corp revenue 2023" {
		t.Errorf("Expected query passed through, got %q", gotQuery)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results (ad block has no link), got %d", len(results))
	}

	first := results[0]
	if first.Title != "Acme Corp 2023 Annual Report - SEC" {
		t.Errorf("Unexpected title: %q", first.Title)
	}
	if first.URL != "https://www.sec.gov/filings/acme-2023" {
		t.Errorf("Expected uddg redirect unwrapped, got %q", first.URL)
	}
	if first.Snippet != "Acme Corp reported $45M in revenue for fiscal year 2023." {
		t.Errorf("Unexpected snippet: %q", first.Snippet)
	}

	if results[1].URL != "https://www.reuters.com/business/acme-earnings" {
		t.Errorf("Expected direct URL preserved, got %q", results[1].URL)
	}
}

func TestDuckDuckGoSearch_CapsResults(t *testing.T) {
	d, _ := newTestDuckDuckGo(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(resultPage))
	})

	results, err := d.Search(context.Background(), "acme", 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Expected results capped at 1, got %d", len(results))
	}
}

func TestDuckDuckGoSearch_SendsUserAgent(t *testing.T) {
	var gotUA string
	d, _ := newTestDuckDuckGo(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(resultPage))
	})

	if _, err := d.Search(context.Background(), "acme", 5); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if gotUA == "" || gotUA == "Go-http-client/1.1" {
		t.Errorf("Expected identifying user agent, got %q", gotUA)
	}
}

func TestDuckDuckGoSearch_NonOKStatus(t *testing.T) {
	d, _ := newTestDuckDuckGo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := d.Search(context.Background(), "acme", 5)
	if err == nil {
		t.Fatal("Expected error for 429 response")
	}
	if !errors.Is(err, model.ErrSearchUnavailable) {
		t.Errorf("Expected ErrSearchUnavailable, got %v", err)
	}
}

func TestDuckDuckGoSearch_EmptyPage(t *testing.T) {
	d, _ := newTestDuckDuckGo(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><div class=\"no-results\">No results.</div></body></html>"))
	})

	results, err := d.Search(context.Background(), "qzxv qqqq zzzz", 5)
	if err != nil {
		t.Fatalf("Expected no error for empty result page, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected 0 results, got %d", len(results))
	}
}

func TestDuckDuckGoSearch_ContextCancelled(t *testing.T) {
	d, _ := newTestDuckDuckGo(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(resultPage))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Search(ctx, "acme", 5)
	if err == nil {
		t.Fatal("Expected error for cancelled context")
	}
}

func TestResolveRedirect(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{
			name: "uddg redirect",
			href: "//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fpage&rut=abc",
			want: "https://example.com/page",
		},
		{
			name: "direct https",
			href: "https://example.com/page",
			want: "https://example.com/page",
		},
		{
			name: "protocol relative without redirect",
			href: "//example.com/page",
			want: "https://example.com/page",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveRedirect(tt.href); got != tt.want {
				t.Errorf("resolveRedirect(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}
