package model

import "time"

// Config is the complete pipeline configuration. It is passed explicitly
// into the pipeline at invocation time; there is no process-wide mutable state.
type Config struct {
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Search      SearchConfig      `yaml:"search" mapstructure:"search"`
	PDF         PDFConfig         `yaml:"pdf" mapstructure:"pdf"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Retry       RetryConfig       `yaml:"retry" mapstructure:"retry"`
	Validate    ValidateConfig    `yaml:"validate" mapstructure:"validate"`
	Authority   AuthorityConfig   `yaml:"authority" mapstructure:"authority"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// LLMConfig configures the language model provider
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"`   // openai, anthropic, ollama
	Model     string `yaml:"model" mapstructure:"model"`         // Provider-specific model name
	APIKey    string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"` // Custom endpoint (e.g., Ollama)
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"`             // Seconds per call
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// SearchConfig configures the web search provider
type SearchConfig struct {
	Provider      string  `yaml:"provider" mapstructure:"provider"` // duckduckgo, brave
	APIKey        string  `yaml:"api_key,omitempty" mapstructure:"api_key"`
	MaxResults    int     `yaml:"max_results" mapstructure:"max_results"` // Top-N results per claim
	Timeout       int     `yaml:"timeout" mapstructure:"timeout"`         // Seconds per query
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	Burst         int     `yaml:"burst" mapstructure:"burst"`
	RespectRobots bool    `yaml:"respect_robots" mapstructure:"respect_robots"` // Honor robots.txt on scraped endpoints
	UserAgent     string  `yaml:"user_agent" mapstructure:"user_agent"`
	HTTPProxy     string  `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string  `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string  `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// PDFConfig configures text extraction
type PDFConfig struct {
	PdftotextPath string `yaml:"pdftotext_path" mapstructure:"pdftotext_path"` // Binary name or absolute path
	MinTextLen    int    `yaml:"min_text_len" mapstructure:"min_text_len"`     // Below this the document is unreadable
	MaxChunkChars int    `yaml:"max_chunk_chars" mapstructure:"max_chunk_chars"`
}

// ConcurrencyConfig bounds parallel work
type ConcurrencyConfig struct {
	MaxVerifications  int `yaml:"max_verifications" mapstructure:"max_verifications"`   // Concurrent claim verifications
	ValidationWorkers int `yaml:"validation_workers" mapstructure:"validation_workers"` // Concurrent source URL checks
}

// RetryConfig bounds retries of transient provider errors
type RetryConfig struct {
	Attempts    int           `yaml:"attempts" mapstructure:"attempts"`
	BaseBackoff time.Duration `yaml:"base_backoff" mapstructure:"base_backoff"`
}

// ValidateConfig controls post-adjudication source URL validation
type ValidateConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	Timeout int  `yaml:"timeout" mapstructure:"timeout"` // Seconds per HEAD request
}

// AuthorityConfig drives source authority classification
type AuthorityConfig struct {
	PrimaryDomains   []string          `yaml:"primary_domains" mapstructure:"primary_domains"`
	SecondaryDomains []string          `yaml:"secondary_domains" mapstructure:"secondary_domains"`
	DomainMap        map[string]string `yaml:"domain_map,omitempty" mapstructure:"domain_map"`
	PathPatterns     []PathPattern     `yaml:"path_patterns,omitempty" mapstructure:"path_patterns"`
}

// PathPattern maps a URL path regexp to an authority tier
type PathPattern struct {
	Pattern string `yaml:"pattern" mapstructure:"pattern"`
	Tier    string `yaml:"tier" mapstructure:"tier"` // primary, secondary, tertiary
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "openai",
			Model:     "",
			Timeout:   30,
			MaxTokens: 2048,
		},
		Search: SearchConfig{
			Provider:      "duckduckgo",
			MaxResults:    10,
			Timeout:       20,
			RatePerSecond: 1,
			Burst:         3,
			RespectRobots: false,
			UserAgent:     "FactForge/0.1 (+https://github.com/ppiankov/factforge)",
		},
		PDF: PDFConfig{
			PdftotextPath: "pdftotext",
			MinTextLen:    100,
			MaxChunkChars: 5000,
		},
		Concurrency: ConcurrencyConfig{
			MaxVerifications:  4,
			ValidationWorkers: 10,
		},
		Retry: RetryConfig{
			Attempts:    3,
			BaseBackoff: 2 * time.Second,
		},
		Validate: ValidateConfig{
			Enabled: false,
			Timeout: 10,
		},
		Authority: AuthorityConfig{
			PrimaryDomains: []string{
				"gov.uk", "europa.eu", "un.org", "who.int",
				"sec.gov", "census.gov", "bls.gov",
				"nature.com", "science.org", "nih.gov",
			},
			SecondaryDomains: []string{
				"reuters.com", "apnews.com", "bbc.co.uk", "bbc.com",
				"nytimes.com", "wsj.com", "ft.com", "bloomberg.com",
				"britannica.com", "wikipedia.org",
				"snopes.com", "factcheck.org", "politifact.com",
			},
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
