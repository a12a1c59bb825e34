package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONObject pulls the first JSON object out of a model completion.
// Models wrap JSON in markdown fences or prose despite instructions, so
// several strategies are tried in order:
//  1. a ```json fenced block
//  2. any ``` fenced block
//  3. brace counting from the first '{'
//  4. the whole text
func ExtractJSONObject(text string) (json.RawMessage, error) {
	text = strings.TrimSpace(text)

	if candidate, ok := fencedBlock(text, "```json"); ok {
		if raw, err := validObject(candidate); err == nil {
			return raw, nil
		}
	}

	if candidate, ok := fencedBlock(text, "```"); ok {
		if raw, err := validObject(candidate); err == nil {
			return raw, nil
		}
	}

	if candidate, ok := braceCount(text); ok {
		if raw, err := validObject(candidate); err == nil {
			return raw, nil
		}
	}

	if raw, err := validObject(text); err == nil {
		return raw, nil
	}

	return nil, fmt.Errorf("no JSON object found in model output")
}

// fencedBlock extracts the content between a fence marker and the next ```
func fencedBlock(text, marker string) (string, bool) {
	start := strings.Index(text, marker)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(marker):]
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

// braceCount finds a balanced {...} span starting at the first brace.
// Braces inside JSON strings are skipped.
func braceCount(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1], true
				}
			}
		}
	}
	return "", false
}

// validObject checks the candidate parses as a JSON object
func validObject(candidate string) (json.RawMessage, error) {
	candidate = strings.TrimSpace(candidate)
	if !strings.HasPrefix(candidate, "{") {
		return nil, fmt.Errorf("not a JSON object")
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &probe); err != nil {
		return nil, err
	}
	return json.RawMessage(candidate), nil
}
