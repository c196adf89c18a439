// File: internal/llmutil/decision.go

// Package llmutil extracts structured decisions from raw model output.
// Models wrap their answers in markdown fences, end-of-message markers and
// conversational filler; everything here exists to strip that wrapping before
// the strict JSON contract is enforced.
package llmutil

import (
	"fmt"
	"regexp"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	// Regex definitions use \x60 for backticks because Go raw strings cannot
	// contain backticks.

	// fencedObjectRegex extracts a JSON object wrapped in a markdown fence.
	fencedObjectRegex = regexp.MustCompile("(?s)\x60\x60\x60(?:json)?\\s*({.*})\\s*\x60\x60\x60")

	// endMarkerRegex drops model end-of-message markers such as <|eot_id|>
	// or <|im_end|> that some local models append verbatim.
	endMarkerRegex = regexp.MustCompile(`<\|[a-zA-Z0-9_]+\|>`)
)

// Decision is the JSON shape the model must answer with.
type Decision struct {
	Command string `json:"command"`
}

// ExtractDecision strips wrapping artifacts from a raw model response and
// unmarshals the remaining JSON object into a Decision. A response that is
// not valid JSON, or that lacks a non-empty "command" field, is an error.
func ExtractDecision(raw string) (*Decision, error) {
	cleaned := strings.TrimSpace(endMarkerRegex.ReplaceAllString(raw, ""))
	payload := cleaned

	if strings.HasPrefix(cleaned, "```") {
		if matches := fencedObjectRegex.FindStringSubmatch(cleaned); len(matches) > 1 {
			payload = matches[1]
		}
	} else if !strings.HasPrefix(cleaned, "{") {
		// The object may be embedded in conversational text; take the widest
		// brace-delimited span.
		first := strings.Index(cleaned, "{")
		last := strings.LastIndex(cleaned, "}")
		if first != -1 && last > first {
			payload = cleaned[first : last+1]
		}
	}

	var decision Decision
	if err := json.UnmarshalFromString(payload, &decision); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w (payload: %s)", err, truncate(payload, 200))
	}
	if decision.Command == "" {
		return nil, fmt.Errorf("response JSON lacks a \"command\" field")
	}
	return &decision, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
