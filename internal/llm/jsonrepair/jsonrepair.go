// Package jsonrepair extracts a JSON object from free-text LLM output.
//
// Providers regularly wrap JSON in markdown fences, prepend prose, or emit
// trailing commas. Extract isolates and repairs the object before parsing so
// callers never hand untrusted text straight to json.Unmarshal.
package jsonrepair

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrNoObject is returned when the text contains no JSON object at all.
	ErrNoObject = errors.New("no JSON object found in LLM output")

	fenceRe         = regexp.MustCompile("```(?:json)?")
	trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)
)

// Extract isolates the first top-level JSON object in text, repairs common
// LLM mistakes, and returns it as raw JSON. The returned message is
// guaranteed to be valid JSON.
func Extract(text string) (json.RawMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoObject
	}

	cleaned := strings.TrimSpace(fenceRe.ReplaceAllString(text, ""))

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return nil, ErrNoObject
	}
	cleaned = cleaned[start : end+1]

	cleaned = trailingCommaRe.ReplaceAllString(cleaned, "$1")

	if !json.Valid([]byte(cleaned)) {
		return nil, errors.New("LLM output is not valid JSON after repair")
	}
	return json.RawMessage(cleaned), nil
}

// Unmarshal extracts a JSON object from text and decodes it into v.
func Unmarshal(text string, v any) error {
	raw, err := Extract(text)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
