package validate

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/ppiankov/factforge/internal/model"
)

// AuthorityClassifier grades cited sources into authority tiers. The
// adjudicator uses tiers to weigh conflicting evidence; the validator
// reports them alongside accessibility results.
type AuthorityClassifier struct {
	config       *model.AuthorityConfig
	primaryMap   map[string]bool
	secondaryMap map[string]bool
	pathPatterns []*compiledPattern
}

type compiledPattern struct {
	pattern *regexp.Regexp
	tier    model.AuthorityTier
}

// NewAuthorityClassifier creates a new authority classifier
func NewAuthorityClassifier(config *model.AuthorityConfig) *AuthorityClassifier {
	if config == nil {
		config = &model.DefaultConfig().Authority
	}

	classifier := &AuthorityClassifier{
		config:       config,
		primaryMap:   make(map[string]bool),
		secondaryMap: make(map[string]bool),
		pathPatterns: make([]*compiledPattern, 0),
	}

	for _, domain := range config.PrimaryDomains {
		classifier.primaryMap[domain] = true
	}
	for _, domain := range config.SecondaryDomains {
		classifier.secondaryMap[domain] = true
	}

	for _, pathPattern := range config.PathPatterns {
		if re, err := regexp.Compile(pathPattern.Pattern); err == nil {
			tier := model.TierTertiary
			switch strings.ToLower(pathPattern.Tier) {
			case "primary":
				tier = model.TierPrimary
			case "secondary":
				tier = model.TierSecondary
			}
			classifier.pathPatterns = append(classifier.pathPatterns, &compiledPattern{
				pattern: re,
				tier:    tier,
			})
		}
	}

	return classifier
}

// Classify classifies a URL into an authority tier
func (a *AuthorityClassifier) Classify(rawURL string) model.AuthorityTier {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return model.TierTertiary
	}

	host := parsed.Host
	path := parsed.Path

	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}

	// Explicit domain mappings from config take precedence
	if a.config.DomainMap != nil {
		if tierStr, ok := a.config.DomainMap[host]; ok {
			return parseTierString(tierStr)
		}
	}

	if a.primaryMap[host] {
		return model.TierPrimary
	}
	// Subdomains inherit the parent's tier (e.g., data.gov.uk under gov.uk)
	for primaryDomain := range a.primaryMap {
		if strings.HasSuffix(host, "."+primaryDomain) {
			return model.TierPrimary
		}
	}

	if a.secondaryMap[host] {
		return model.TierSecondary
	}
	for secondaryDomain := range a.secondaryMap {
		if strings.HasSuffix(host, "."+secondaryDomain) {
			return model.TierSecondary
		}
	}

	for _, cp := range a.pathPatterns {
		if cp.pattern.MatchString(path) {
			return cp.tier
		}
	}

	// Government and academic TLDs count as primary even when unlisted
	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".edu") || strings.HasSuffix(host, ".ac.uk") {
		return model.TierPrimary
	}

	return model.TierTertiary
}

// parseTierString converts a tier string to AuthorityTier
func parseTierString(tier string) model.AuthorityTier {
	switch strings.ToLower(tier) {
	case "primary", "1":
		return model.TierPrimary
	case "secondary", "2":
		return model.TierSecondary
	case "tertiary", "3":
		return model.TierTertiary
	default:
		return model.TierTertiary
	}
}
