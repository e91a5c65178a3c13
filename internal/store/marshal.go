package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// marshalTrace converts trace lines to JSON TEXT for storage.
// HTML escaping is disabled so item ids round-trip byte for byte.
func marshalTrace(lines []string) (string, error) {
	if lines == nil {
		lines = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(lines); err != nil {
		return "", fmt.Errorf("marshal trace: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalTrace parses JSON TEXT to trace lines.
func unmarshalTrace(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return []string{}, nil
	}
	var lines []string
	if err := json.Unmarshal([]byte(data), &lines); err != nil {
		return nil, fmt.Errorf("unmarshal trace: %w", err)
	}
	return lines, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
