package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/factforge/internal/model"
)

func sampleReport() *model.Report {
	correct := "$45M"
	return &model.Report{
		ID:        "test-run",
		File:      "report.pdf",
		Pages:     3,
		CheckedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Claims: []model.ReportEntry{
			{
				Claim:        "Acme Corp reported $50M revenue in 2023",
				ClaimType:    model.ClaimTypeFinancial,
				Entities:     []string{"Acme Corp"},
				Status:       model.StatusInaccurate,
				Explanation:  "The filing reports $45M.",
				CorrectValue: &correct,
				Confidence:   model.ConfidenceHigh,
				Sources: []model.Source{
					{Title: "Acme 10-K", URL: "https://www.sec.gov/filings/acme-2023", Relevance: "official filing"},
				},
			},
			{
				Claim:       "Acme Corp was founded in 1998",
				ClaimType:   model.ClaimTypeHistorical,
				Entities:    []string{},
				Status:      model.StatusVerified,
				Explanation: "Multiple sources confirm.",
				Confidence:  model.ConfidenceHigh,
				Sources:     []model.Source{},
			},
		},
		Stats: model.Stats{Total: 2, Verified: 1, Inaccurate: 1},
	}
}

func TestRenderJSON_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	renderer := NewRenderer(false)

	if err := renderer.RenderJSON(sampleReport(), path); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}

	var decoded model.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("written JSON is invalid: %v", err)
	}

	if len(decoded.Claims) != 2 {
		t.Errorf("Expected 2 claims in JSON, got %d", len(decoded.Claims))
	}
	if decoded.Claims[0].CorrectValue == nil || *decoded.Claims[0].CorrectValue != "$45M" {
		t.Errorf("Expected correct_value preserved, got %v", decoded.Claims[0].CorrectValue)
	}
	if decoded.Claims[1].CorrectValue != nil {
		t.Errorf("Expected null correct_value for verified claim, got %q", *decoded.Claims[1].CorrectValue)
	}
	if strings.Contains(string(data), `"verdicts"`) {
		t.Error("Internal verdicts slice must not leak into JSON output")
	}
}

func TestRenderJSON_EmptyClaimsAsArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	renderer := NewRenderer(false)

	report := &model.Report{
		ID:     "empty-run",
		File:   "empty.pdf",
		Claims: []model.ReportEntry{},
	}

	if err := renderer.RenderJSON(report, path); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), `"claims": []`) {
		t.Errorf("Expected empty claims array, got:\n%s", data)
	}
}

func TestRenderMarkdown_ContentAndFooter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	renderer := NewRenderer(true)

	if err := renderer.RenderMarkdown(sampleReport(), path); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	md := string(data)

	if !strings.Contains(md, "Acme Corp reported $50M revenue in 2023") {
		t.Error("Expected claim text in markdown")
	}
	if !strings.Contains(md, "**Correct value:** $45M") {
		t.Error("Expected correct value line for inaccurate claim")
	}
	if !strings.Contains(md, "[Acme 10-K](https://www.sec.gov/filings/acme-2023)") {
		t.Error("Expected source link in markdown")
	}
	if !strings.Contains(md, "Generated by FactForge") {
		t.Error("Expected footer when enabled")
	}
}

func TestRenderMarkdown_NoFooterWhenDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	renderer := NewRenderer(false)

	if err := renderer.RenderMarkdown(sampleReport(), path); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if strings.Contains(string(data), "Generated by FactForge") {
		t.Error("Expected no footer when disabled")
	}
}
