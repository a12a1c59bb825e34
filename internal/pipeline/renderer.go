package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/factforge/internal/model"
)

// Renderer writes reports to JSON and Markdown and prints the stdout summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Fact-Check Report\n\n")
	fmt.Fprintf(&b, "**File:** %s\n", report.File)
	fmt.Fprintf(&b, "**Pages:** %d\n", report.Pages)
	fmt.Fprintf(&b, "**Checked:** %s\n\n", report.CheckedAt.Format("2006-01-02 15:04:05 UTC"))

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "| Total | Verified | Inaccurate | False | Unverifiable |\n")
	fmt.Fprintf(&b, "|-------|----------|------------|-------|---------------|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %d |\n\n",
		report.Stats.Total, report.Stats.Verified, report.Stats.Inaccurate,
		report.Stats.False, report.Stats.Unverifiable)

	if report.Stats.Myths > 0 {
		fmt.Fprintf(&b, "Known myths detected: %d\n\n", report.Stats.Myths)
	}
	if report.Stats.Outdated > 0 {
		fmt.Fprintf(&b, "Outdated figures detected: %d\n\n", report.Stats.Outdated)
	}

	if len(report.Claims) > 0 {
		b.WriteString("## Claims\n\n")
	}
	for i, entry := range report.Claims {
		fmt.Fprintf(&b, "### %d. %s %s\n\n", i+1, statusMarker(entry.Status), entry.Claim)
		fmt.Fprintf(&b, "- **Status:** %s", entry.Status)
		if entry.IsMyth {
			b.WriteString(" (known myth)")
		}
		if entry.IsOutdated {
			b.WriteString(" (outdated)")
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "- **Type:** %s\n", entry.ClaimType)
		fmt.Fprintf(&b, "- **Confidence:** %s\n", entry.Confidence)
		if entry.CorrectValue != nil {
			fmt.Fprintf(&b, "- **Correct value:** %s\n", *entry.CorrectValue)
		}
		fmt.Fprintf(&b, "\n%s\n\n", entry.Explanation)
		if len(entry.Sources) > 0 {
			b.WriteString("Sources:\n")
			for _, s := range entry.Sources {
				fmt.Fprintf(&b, "- [%s](%s)\n", s.Title, s.URL)
			}
			b.WriteString("\n")
		}
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by FactForge\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderSummary prints the per-document tally to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("\n%s: %d claims checked\n", report.File, report.Stats.Total)
	fmt.Printf("  verified:     %d\n", report.Stats.Verified)
	fmt.Printf("  inaccurate:   %d\n", report.Stats.Inaccurate)
	fmt.Printf("  false:        %d\n", report.Stats.False)
	fmt.Printf("  unverifiable: %d\n", report.Stats.Unverifiable)
	if report.Stats.Myths > 0 {
		fmt.Printf("  known myths:  %d\n", report.Stats.Myths)
	}
}

func statusMarker(status model.VerdictStatus) string {
	switch status {
	case model.StatusVerified:
		return "✅"
	case model.StatusInaccurate:
		return "⚠️"
	case model.StatusUnverifiable:
		return "❓"
	default:
		return "❌"
	}
}
