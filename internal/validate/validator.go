package validate

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ppiankov/factforge/internal/model"
	"github.com/ppiankov/factforge/internal/util"
)

const validateMaxRetries = 3

// validateSleepFunc is the sleep function used between retries (injectable for tests)
var validateSleepFunc = time.Sleep

// Validator checks cited source URLs concurrently with HEAD requests.
// It runs after adjudication and never changes a verdict; it only reports
// which citations are reachable.
type Validator struct {
	httpClient *http.Client
	maxWorkers int
	authority  *AuthorityClassifier
}

// NewValidator creates a new validator
func NewValidator(timeout time.Duration, maxWorkers int, authConfig *model.AuthorityConfig, httpProxy, httpsProxy, noProxy string) *Validator {
	if maxWorkers <= 0 {
		maxWorkers = 10
	}

	proxyFunc := util.NewProxyFunc(httpProxy, httpsProxy, noProxy)

	return &Validator{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: proxyFunc,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		maxWorkers: maxWorkers,
		authority:  NewAuthorityClassifier(authConfig),
	}
}

// Classifier exposes the validator's authority classifier so the
// adjudicator can reuse the same domain configuration
func (v *Validator) Classifier() *AuthorityClassifier {
	return v.authority
}

// ValidateReport checks every distinct source URL cited across the
// report's claims. Duplicate citations are checked once.
func (v *Validator) ValidateReport(ctx context.Context, report *model.Report) ([]model.ValidationResult, error) {
	seen := make(map[string]bool)
	var sources []model.Source
	for _, entry := range report.Claims {
		for _, s := range entry.Sources {
			if s.URL == "" || seen[s.URL] {
				continue
			}
			seen[s.URL] = true
			sources = append(sources, s)
		}
	}
	return v.Validate(ctx, sources)
}

// Validate checks all source links concurrently
func (v *Validator) Validate(ctx context.Context, sources []model.Source) ([]model.ValidationResult, error) {
	if len(sources) == 0 {
		return []model.ValidationResult{}, nil
	}

	results := make([]model.ValidationResult, len(sources))
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, v.maxWorkers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s model.Source) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = model.ValidationResult{
					URL:          s.URL,
					IsAccessible: false,
					Error:        "context cancelled",
				}
				return
			case semaphore <- struct{}{}:
			}

			defer func() { <-semaphore }()

			results[idx] = v.validateSingleWithRetry(ctx, s)
		}(i, src)
	}

	wg.Wait()

	return results, nil
}

// validateSingle checks a single source link
func (v *Validator) validateSingle(ctx context.Context, source model.Source) model.ValidationResult {
	result := model.ValidationResult{
		URL:          source.URL,
		IsAccessible: false,
		Authority:    v.authority.Classify(source.URL),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, source.URL, nil)
	if err != nil {
		result.Error = fmt.Sprintf("create request: %v", err)
		return result
	}

	req.Header.Set("User-Agent", "FactForge/0.1 (+https://github.com/ppiankov/factforge)")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		result.IsAccessible = true
	}

	if resp.Request.URL.String() != source.URL {
		result.RedirectURL = resp.Request.URL.String()
	}

	return result
}

// validateSingleWithRetry retries transient failures with exponential backoff
func (v *Validator) validateSingleWithRetry(ctx context.Context, source model.Source) model.ValidationResult {
	var result model.ValidationResult
	for attempt := 0; attempt < validateMaxRetries; attempt++ {
		result = v.validateSingle(ctx, source)
		if !isRetryableValidationResult(result) {
			return result
		}
		if attempt < validateMaxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			validateSleepFunc(backoff)
		}
	}
	return result
}

// isRetryableValidationResult returns true for results that indicate transient failures
func isRetryableValidationResult(result model.ValidationResult) bool {
	if result.StatusCode >= 500 && result.StatusCode < 600 {
		return true
	}
	if result.StatusCode == http.StatusTooManyRequests {
		return true
	}
	if result.Error != "" && isRetryableNetworkError(result.Error) {
		return true
	}
	return false
}

// isRetryableNetworkError checks error strings for transient network failures
func isRetryableNetworkError(errMsg string) bool {
	s := strings.ToLower(errMsg)
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}
