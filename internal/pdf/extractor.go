package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/factforge/internal/model"
)

// Extractor extracts page-level text from PDF files by shelling out to
// poppler's pdftotext. A form feed separates pages in the output.
type Extractor struct {
	pdftotext  string
	minTextLen int
	runner     Runner
}

// NewExtractor creates a new extractor. An empty path defaults to "pdftotext"
// resolved via PATH.
func NewExtractor(cfg model.PDFConfig) *Extractor {
	path := cfg.PdftotextPath
	if path == "" {
		path = "pdftotext"
	}
	minLen := cfg.MinTextLen
	if minLen <= 0 {
		minLen = 100
	}
	return &Extractor{
		pdftotext:  path,
		minTextLen: minLen,
		runner:     execRunner{},
	}
}

// SetRunner replaces the command runner (tests)
func (e *Extractor) SetRunner(r Runner) {
	e.runner = r
}

// Extract converts a PDF file into ordered page texts.
// Fails with model.ErrUnreadablePDF when the file is corrupt, encrypted,
// or contains too little text to analyze.
func (e *Extractor) Extract(ctx context.Context, path string) (model.Document, error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		msg := strings.TrimSpace(string(errb))
		if msg == "" {
			msg = err.Error()
		}
		return model.Document{}, fmt.Errorf("%w: %s: %s", model.ErrUnreadablePDF, path, msg)
	}

	pages := splitPages(string(out))
	if totalLen(pages) < e.minTextLen {
		return model.Document{}, fmt.Errorf("%w: %s: document contains too little text to analyze", model.ErrUnreadablePDF, path)
	}

	return model.Document{
		File:  path,
		Pages: pages,
	}, nil
}

// splitPages splits pdftotext output on the form-feed page separator,
// dropping pages that carry no text (e.g., full-page images).
func splitPages(text string) []string {
	raw := strings.Split(text, "\f")
	pages := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			pages = append(pages, p)
		}
	}
	return pages
}

func totalLen(pages []string) int {
	total := 0
	for _, p := range pages {
		total += len(p)
	}
	return total
}
