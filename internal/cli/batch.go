package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/factforge/internal/pipeline"
	"github.com/ppiankov/factforge/internal/worker"
)

var (
	workers      int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir-or-list>",
	Short: "Fact-check multiple PDFs in parallel",
	Long: `Batch processes multiple PDF documents concurrently:
- Accepts a directory of PDFs, or a list file (one path per line, # comments)
- Documents run in parallel with a configurable worker count
- Each document's claims are still verified concurrently inside its run
- One JSON and one Markdown report per document

Example:
  factforge batch ./reports
  factforge batch files.txt --workers 4 --output-dir ./factforge-reports
  factforge batch files.txt --workers 2 --timeout 30m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&workers, "workers", 2, "number of documents processed in parallel")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./factforge-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 60*time.Minute, "total timeout for batch processing")

	// Shared pipeline flags
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")
	batchCmd.Flags().StringVar(&searchProvider, "search-provider", "duckduckgo", "search provider (duckduckgo, brave)")
	batchCmd.Flags().IntVar(&maxResults, "max-results", 10, "search results per claim")
	batchCmd.Flags().IntVar(&verifications, "concurrency", 4, "concurrent claim verifications per document")
	batchCmd.Flags().BoolVar(&validateLinks, "validate-links", false, "check that cited source URLs are reachable")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	paths, err := collectPaths(input)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no PDF files found in %s", input)
	}

	fmt.Fprintf(os.Stderr, "Batch: %d documents, %d workers, output %s\n", len(paths), workers, outputDir)

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	checker, err := pipeline.NewChecker(cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}

	processor := worker.NewBatchProcessor(checker, workers)
	results := processor.ProcessFiles(ctx, paths)

	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Path, result.Error)
			continue
		}

		successCount++

		slug := sanitizeFilename(result.Path)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := checker.RenderReport(result.Report, jsonPath, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Path, err)
			continue
		}
	}

	fmt.Fprintf(os.Stderr, "\nBatch complete: %d total, %d ok, %d failed, reports in %s\n",
		len(results), successCount, failureCount, outputDir)

	return nil
}

// collectPaths resolves the batch input: a directory is scanned for PDFs,
// anything else is treated as a list file
func collectPaths(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", input, err)
	}

	if !info.IsDir() {
		return worker.ReadPathsFromFile(input)
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", input, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			paths = append(paths, filepath.Join(input, entry.Name()))
		}
	}
	return paths, nil
}

// sanitizeFilename derives a report file slug from a document path
func sanitizeFilename(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "-",
	)
	name = replacer.Replace(name)

	if len(name) > 100 {
		name = name[:100]
	}
	if name == "" {
		name = "report"
	}
	return name
}
