// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package structured recovers typed values from free-form model output.
//
// Model responses that should be JSON frequently arrive wrapped in code
// fences, prefixed with prose, or truncated. Decode makes consuming them
// total: it extracts the first balanced JSON payload, parses it over a copy
// of the caller's defaults, and falls back to the defaults outright when
// nothing parseable is present. Callers receive an Origin tag so genuine
// model output is distinguishable from a defaulted value.
package structured

import (
	"encoding/json"
	"strings"
)

// Origin reports where a decoded value came from.
type Origin int

const (
	// OriginParsed means the model's JSON parsed; absent fields were
	// filled from defaults.
	OriginParsed Origin = iota

	// OriginDefaulted means no parseable JSON was found and the value is
	// the defaults unchanged.
	OriginDefaulted
)

func (o Origin) String() string {
	if o == OriginParsed {
		return "parsed"
	}
	return "defaulted"
}

// Decode extracts the first balanced JSON object from raw and parses it over
// a copy of defaults. Fields absent from the payload keep their default
// values. Decode never fails: any malformed input yields the defaults with
// OriginDefaulted.
func Decode[T any](raw string, defaults T) (T, Origin) {
	v := defaults

	payload, ok := ExtractObject(StripFences(raw))
	if !ok {
		return v, OriginDefaulted
	}
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return defaults, OriginDefaulted
	}
	return v, OriginParsed
}

// DecodeSlice extracts the first balanced JSON array from raw and parses it.
// Malformed input yields a nil slice with OriginDefaulted.
func DecodeSlice[T any](raw string) ([]T, Origin) {
	payload, ok := extractBalanced(StripFences(raw), '[', ']')
	if !ok {
		return nil, OriginDefaulted
	}
	var v []T
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return nil, OriginDefaulted
	}
	return v, OriginParsed
}

// StripFences removes markdown code-fence lines (``` or ```json) so fenced
// payloads extract cleanly. Non-fence lines pass through untouched.
func StripFences(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	var b strings.Builder
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// ExtractObject returns the first balanced {...} span in s. Brace counting
// skips braces inside JSON string literals and honors escapes, so prose
// around the object or braces inside values do not break extraction.
func ExtractObject(s string) (string, bool) {
	return extractBalanced(s, '{', '}')
}

func extractBalanced(s string, openCh, closeCh byte) (string, bool) {
	start := strings.IndexByte(s, openCh)
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case openCh:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
