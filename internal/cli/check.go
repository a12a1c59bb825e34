package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/factforge/internal/model"
	"github.com/ppiankov/factforge/internal/pipeline"
)

var (
	outJSON        string
	outMD          string
	timeout        time.Duration
	llmProvider    string
	llmModel       string
	searchProvider string
	maxResults     int
	verifications  int
	validateLinks  bool
	respectRobots  bool
	noFooter       bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file.pdf>",
	Short: "Fact-check a single PDF document",
	Long: `Check runs the full pipeline on one PDF:
- Extract text with pdftotext
- Identify verifiable factual claims with the configured LLM
- Search the web for evidence on each claim
- Adjudicate each claim against its evidence
- Write an ordered JSON report (optionally Markdown)

Example:
  factforge check report.pdf
  factforge check report.pdf --json report.json --md report.md
  factforge check report.pdf --llm-provider ollama --llm-model llama3.1
  factforge check report.pdf --search-provider brave --validate-links`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Output flags
	checkCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Pipeline flags
	checkCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "overall check timeout (documents with many claims need more)")
	checkCmd.Flags().IntVar(&verifications, "concurrency", 4, "concurrent claim verifications")
	checkCmd.Flags().BoolVar(&validateLinks, "validate-links", false, "check that cited source URLs are reachable")

	// LLM flags
	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")

	// Search flags
	checkCmd.Flags().StringVar(&searchProvider, "search-provider", "duckduckgo", "search provider (duckduckgo, brave)")
	checkCmd.Flags().IntVar(&maxResults, "max-results", 10, "search results per claim")
	checkCmd.Flags().BoolVar(&respectRobots, "respect-robots", false, "honor robots.txt on scraped search endpoints")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", path)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintln(os.Stderr)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	checker, err := pipeline.NewChecker(cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}

	report, err := checker.CheckFile(ctx, path)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if err := checker.RenderReport(report, outJSON, outMD); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// buildConfig assembles pipeline configuration from flags and environment
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.Search.Provider = searchProvider
	cfg.Search.MaxResults = maxResults
	cfg.Search.RespectRobots = respectRobots
	cfg.Concurrency.MaxVerifications = verifications
	cfg.Validate.Enabled = validateLinks
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	// API keys come from the environment, never from flags
	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	if searchProvider == "brave" {
		cfg.Search.APIKey = os.Getenv("BRAVE_API_KEY")
		if cfg.Search.APIKey == "" {
			return nil, fmt.Errorf("BRAVE_API_KEY environment variable not set")
		}
	}

	return cfg, nil
}
