package validate

import (
	"testing"

	"github.com/ppiankov/factforge/internal/model"
)

func TestAuthorityClassifier_DefaultConfig(t *testing.T) {
	classifier := NewAuthorityClassifier(nil)

	tests := []struct {
		url  string
		want model.AuthorityTier
	}{
		{"https://www.sec.gov/filings/acme-2023", model.TierPrimary},
		{"https://data.census.gov/table", model.TierPrimary},
		{"https://www.nature.com/articles/abc", model.TierPrimary},
		{"https://www.reuters.com/business/acme", model.TierSecondary},
		{"https://en.wikipedia.org/wiki/Acme", model.TierSecondary},
		{"https://www.snopes.com/fact-check/acme", model.TierSecondary},
		{"https://randomblog.example.com/post", model.TierTertiary},
		{"https://forum.example.net/thread/42", model.TierTertiary},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := classifier.Classify(tt.url); got != tt.want {
				t.Errorf("Classify(%s) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestAuthorityClassifier_SubdomainInheritsTier(t *testing.T) {
	classifier := NewAuthorityClassifier(&model.AuthorityConfig{
		PrimaryDomains: []string{"gov.uk"},
	})

	if got := classifier.Classify("https://data.gov.uk/dataset"); got != model.TierPrimary {
		t.Errorf("Expected subdomain of gov.uk classified primary, got %v", got)
	}
	if got := classifier.Classify("https://notgov.uk/page"); got != model.TierTertiary {
		t.Errorf("Expected notgov.uk not to match gov.uk suffix, got %v", got)
	}
}

func TestAuthorityClassifier_GovEduTLDs(t *testing.T) {
	classifier := NewAuthorityClassifier(&model.AuthorityConfig{})

	tests := []struct {
		url  string
		want model.AuthorityTier
	}{
		{"https://www.treasury.gov/data", model.TierPrimary},
		{"https://www.mit.edu/research", model.TierPrimary},
		{"https://www.ox.ac.uk/news", model.TierPrimary},
	}

	for _, tt := range tests {
		if got := classifier.Classify(tt.url); got != tt.want {
			t.Errorf("Classify(%s) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestAuthorityClassifier_DomainMapOverrides(t *testing.T) {
	classifier := NewAuthorityClassifier(&model.AuthorityConfig{
		SecondaryDomains: []string{"example.com"},
		DomainMap: map[string]string{
			"www.example.com": "primary",
		},
	})

	if got := classifier.Classify("https://www.example.com/report"); got != model.TierPrimary {
		t.Errorf("Expected explicit domain map to win, got %v", got)
	}
}

func TestAuthorityClassifier_PathPatterns(t *testing.T) {
	classifier := NewAuthorityClassifier(&model.AuthorityConfig{
		PathPatterns: []model.PathPattern{
			{Pattern: `^/fact-check/`, Tier: "secondary"},
		},
	})

	if got := classifier.Classify("https://news.example.org/fact-check/acme-claim"); got != model.TierSecondary {
		t.Errorf("Expected path pattern match secondary, got %v", got)
	}
}

func TestAuthorityClassifier_InvalidURL(t *testing.T) {
	classifier := NewAuthorityClassifier(nil)

	if got := classifier.Classify("://not-a-url"); got != model.TierTertiary {
		t.Errorf("Expected tertiary for unparseable URL, got %v", got)
	}
}

func TestAuthorityClassifier_HostWithPort(t *testing.T) {
	classifier := NewAuthorityClassifier(&model.AuthorityConfig{
		PrimaryDomains: []string{"127.0.0.1"},
	})

	if got := classifier.Classify("http://127.0.0.1:8080/page"); got != model.TierPrimary {
		t.Errorf("Expected port stripped before matching, got %v", got)
	}
}
