package toon

import (
	"strings"

	"github.com/nvandessel/toonify/internal/ordered"
	"github.com/nvandessel/toonify/internal/sanitize"
)

// Decode parses TOON text into a record collection: an object with the
// header's root key mapped to a slice of records. Every value is a string.
//
// Rows are read leniently. A short row is padded with empty strings and
// columns past the declared fields are dropped; Validate is the place where
// column mismatches are reported.
func Decode(data string) (*ordered.Object, error) {
	lines := splitLines(data)
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}

	h, ok := parseDecodeHeader(lines[0])
	if !ok {
		return nil, &InvalidHeaderError{Line: sanitize.SanitizeLine(lines[0])}
	}

	records := make([]any, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := strings.Split(line, fieldDelimiter)
		record := ordered.NewObject()
		for i, field := range h.fields {
			value := ""
			if i < len(values) {
				value = values[i]
			}
			record.Set(field, value)
		}
		records = append(records, record)
	}

	result := ordered.NewObject()
	result.Set(h.root, records)
	return result, nil
}
