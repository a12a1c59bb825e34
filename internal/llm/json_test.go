package llm

import (
	"encoding/json"
	"testing"
)

func TestExtractJSONObject_FencedJSONBlock(t *testing.T) {
	text := "Here is the result:\n```json\n{\"status\": \"verified\"}\n```\nDone."

	raw, err := ExtractJSONObject(text)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var parsed map[string]string
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if parsed["status"] != "verified" {
		t.Errorf("Expected status=verified, got %q", parsed["status"])
	}
}

func TestExtractJSONObject_PlainFence(t *testing.T) {
	text := "```\n{\"claims\": []}\n```"

	raw, err := ExtractJSONObject(text)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(raw) != `{"claims": []}` {
		t.Errorf("Unexpected extraction: %s", raw)
	}
}

func TestExtractJSONObject_EmbeddedInProse(t *testing.T) {
	text := `Based on the sources, my verdict is {"status": "false", "explanation": "no {braces} issue here"} as shown.`

	raw, err := ExtractJSONObject(text)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var parsed map[string]string
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if parsed["status"] != "false" {
		t.Errorf("Expected status=false, got %q", parsed["status"])
	}
}

func TestExtractJSONObject_BracesInsideStrings(t *testing.T) {
	text := `{"explanation": "the value {x} is quoted \" here", "status": "verified"}`

	raw, err := ExtractJSONObject(text)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var parsed map[string]string
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
}

func TestExtractJSONObject_WholeTextFallback(t *testing.T) {
	raw, err := ExtractJSONObject(`  {"a": 1}  `)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(raw) != `{"a": 1}` {
		t.Errorf("Unexpected extraction: %s", raw)
	}
}

func TestExtractJSONObject_NoJSON(t *testing.T) {
	_, err := ExtractJSONObject("The claim appears to be accurate based on the sources.")
	if err == nil {
		t.Fatal("Expected error for prose-only output")
	}
}

func TestExtractJSONObject_MalformedJSONInFence(t *testing.T) {
	// A non-JSON fenced block should fall through to the brace-count strategy
	text := "```json\nstatus: verified\n```\nactual: {\"status\": \"verified\"}"

	raw, err := ExtractJSONObject(text)
	if err != nil {
		t.Fatalf("Expected fallback to succeed, got %v", err)
	}

	var parsed map[string]string
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("Expected valid JSON from fallback, got %v", err)
	}
	if parsed["status"] != "verified" {
		t.Errorf("Expected status=verified, got %q", parsed["status"])
	}
}
