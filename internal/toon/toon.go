// Package toon converts record collections to and from TOON, a header plus
// comma-separated rows notation that spends fewer tokens than JSON when the
// data is fed to a language model:
//
//	users[2]{id,name,role}:
//	1,Alice,admin
//	2,Bob,user
//
// The format has no quoting. Values containing commas or newlines do not
// survive a round trip, and every decoded value is a string.
package toon

import "strings"

// EncodeOptions configures TOON encoding.
type EncodeOptions struct {
	// Compact drops the line breaks between the header and the rows and
	// between rows. Fields inside a row stay comma-separated.
	Compact bool
}

const fieldDelimiter = ","

// Encode converts a record collection to TOON text.
func Encode(v any) (string, error) {
	return EncodeWithOptions(v, nil)
}

// EncodeWithOptions converts a record collection to TOON text with custom options.
func EncodeWithOptions(v any, opts *EncodeOptions) (string, error) {
	if opts == nil {
		opts = &EncodeOptions{}
	}
	return encode(v, opts.Compact)
}

// splitLines breaks data on newlines and drops lines that are blank after
// trimming. The decoder and the validator share this rule.
func splitLines(data string) []string {
	var lines []string
	for _, line := range strings.Split(data, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
