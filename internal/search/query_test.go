package search

import (
	"strings"
	"testing"

	"github.com/ppiankov/factforge/internal/model"
)

func TestFormulateQuery_StripsFillerKeepsNumbers(t *testing.T) {
	claim := model.Claim{
		Text: "The company was founded in 1998 and has 12,000 employees",
		Type: model.ClaimTypeHistorical,
	}

	query := FormulateQuery(claim)

	if strings.Contains(query, "The ") || strings.Contains(query, " was ") {
		t.Errorf("Expected filler words stripped, got %q", query)
	}
	if !strings.Contains(query, "1998") {
		t.Errorf("Expected year kept verbatim, got %q", query)
	}
	if !strings.Contains(query, "12,000") {
		t.Errorf("Expected count kept verbatim, got %q", query)
	}
	if !strings.Contains(query, "founded") {
		t.Errorf("Expected content words kept, got %q", query)
	}
}

func TestFormulateQuery_Deterministic(t *testing.T) {
	claim := model.Claim{
		Text:     "Acme Corp reported $50M revenue in 2023",
		Type:     model.ClaimTypeFinancial,
		Entities: []string{"Acme Corp"},
	}

	first := FormulateQuery(claim)
	for i := 0; i < 5; i++ {
		if got := FormulateQuery(claim); got != first {
			t.Fatalf("Expected deterministic output, got %q then %q", first, got)
		}
	}
}

func TestFormulateQuery_AppendsMissingEntities(t *testing.T) {
	claim := model.Claim{
		Text:     "Revenue reached $50M in 2023",
		Type:     model.ClaimTypeFinancial,
		Entities: []string{"Acme Corp"},
	}

	query := FormulateQuery(claim)

	if !strings.Contains(query, "Acme Corp") {
		t.Errorf("Expected entity appended when absent from claim text, got %q", query)
	}
	if !strings.Contains(query, "$50M") {
		t.Errorf("Expected monetary value kept verbatim, got %q", query)
	}
}

func TestFormulateQuery_EntityAlreadyPresentNotDuplicated(t *testing.T) {
	claim := model.Claim{
		Text:     "Acme reported record growth",
		Type:     model.ClaimTypeStatistic,
		Entities: []string{"Acme"},
	}

	query := FormulateQuery(claim)

	if strings.Count(query, "Acme") != 1 {
		t.Errorf("Expected entity not duplicated, got %q", query)
	}
}

func TestFormulateQuery_CapsLength(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 80; i++ {
		b.WriteString("throughput")
		b.WriteByte(byte('a' + i%26))
		b.WriteString(" benchmark")
		b.WriteByte(byte('a' + i%26))
		b.WriteString(" ")
	}
	claim := model.Claim{
		Text: b.String(),
		Type: model.ClaimTypeTechnical,
	}

	query := FormulateQuery(claim)

	if len(query) > maxQueryLen {
		t.Errorf("Expected query capped at %d chars, got %d", maxQueryLen, len(query))
	}
}

func TestFactCheckQuery_ScopesToFactCheckSites(t *testing.T) {
	claim := model.Claim{
		Text: "Humans only use 10% of their brains",
		Type: model.ClaimTypeScientific,
	}

	query := FactCheckQuery(claim)

	if !strings.Contains(query, "site:snopes.com") {
		t.Errorf("Expected fact-check site scoping, got %q", query)
	}
	if !strings.Contains(query, "10%") {
		t.Errorf("Expected claim terms present, got %q", query)
	}
}
