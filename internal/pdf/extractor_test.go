package pdf

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/factforge/internal/model"
)

type stubRunner struct {
	stdout []byte
	stderr []byte
	err    error

	gotName string
	gotArgs []string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.gotName = name
	s.gotArgs = args
	return s.stdout, s.stderr, s.err
}

func newTestExtractor(r Runner) *Extractor {
	e := NewExtractor(model.PDFConfig{MinTextLen: 50})
	e.SetRunner(r)
	return e
}

func TestExtractor_SplitsPagesOnFormFeed(t *testing.T) {
	pageOne := strings.Repeat("Revenue grew 12% in 2023. ", 5)
	pageTwo := strings.Repeat("The company was founded in 1998. ", 5)
	runner := &stubRunner{stdout: []byte(pageOne + "\f" + pageTwo)}

	doc, err := newTestExtractor(runner).Extract(context.Background(), "report.pdf")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(doc.Pages) != 2 {
		t.Fatalf("Expected 2 pages, got %d", len(doc.Pages))
	}
	if !strings.Contains(doc.Pages[0], "Revenue") {
		t.Errorf("Page 1 should contain first page text, got %q", doc.Pages[0])
	}
	if !strings.Contains(doc.Pages[1], "founded") {
		t.Errorf("Page 2 should contain second page text, got %q", doc.Pages[1])
	}
	if doc.File != "report.pdf" {
		t.Errorf("Expected file to be recorded, got %q", doc.File)
	}
}

func TestExtractor_PassesLayoutFlags(t *testing.T) {
	runner := &stubRunner{stdout: []byte(strings.Repeat("text ", 20))}

	_, err := newTestExtractor(runner).Extract(context.Background(), "in.pdf")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	joined := strings.Join(runner.gotArgs, " ")
	if !strings.Contains(joined, "-layout") || !strings.Contains(joined, "UTF-8") {
		t.Errorf("Expected pdftotext layout/encoding flags, got %q", joined)
	}
	if runner.gotArgs[len(runner.gotArgs)-1] != "-" {
		t.Errorf("Expected stdout output mode, got args %v", runner.gotArgs)
	}
}

func TestExtractor_ExecFailureIsUnreadablePDF(t *testing.T) {
	runner := &stubRunner{err: errors.New("exit status 1"), stderr: []byte("Syntax Error: document is encrypted")}

	_, err := newTestExtractor(runner).Extract(context.Background(), "locked.pdf")
	if !errors.Is(err, model.ErrUnreadablePDF) {
		t.Fatalf("Expected ErrUnreadablePDF, got %v", err)
	}
	if !strings.Contains(err.Error(), "encrypted") {
		t.Errorf("Expected stderr detail in error, got %v", err)
	}
}

func TestExtractor_TooLittleTextIsUnreadablePDF(t *testing.T) {
	runner := &stubRunner{stdout: []byte("short")}

	_, err := newTestExtractor(runner).Extract(context.Background(), "scanned.pdf")
	if !errors.Is(err, model.ErrUnreadablePDF) {
		t.Fatalf("Expected ErrUnreadablePDF for near-empty text, got %v", err)
	}
}

func TestExtractor_DropsBlankPages(t *testing.T) {
	runner := &stubRunner{stdout: []byte(strings.Repeat("content ", 10) + "\f   \f" + strings.Repeat("more ", 10))}

	doc, err := newTestExtractor(runner).Extract(context.Background(), "in.pdf")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(doc.Pages) != 2 {
		t.Errorf("Expected blank page to be dropped, got %d pages", len(doc.Pages))
	}
}
