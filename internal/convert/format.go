package convert

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Format identifies a document representation.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOON Format = "toon"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatTOON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("format must be either %q or %q, got %q", FormatJSON, FormatTOON, s)
	}
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// sniffHeaderRegex recognizes a TOON header at the start of a document.
var sniffHeaderRegex = regexp.MustCompile(`^\w+\[\d+\]\{[^}]+\}:`)

// extensionRegex matches the trailing extension replaced by OutputPath.
var extensionRegex = regexp.MustCompile(`\.(json|toon)$`)

// DetectFormat guesses the format of content read from path. The extension
// wins when it is .json or .toon; otherwise a leading TOON header means
// toon, content that parses as JSON means json, and anything else is
// treated as toon.
func DetectFormat(path, content string) Format {
	switch {
	case strings.HasSuffix(path, ".json"):
		return FormatJSON
	case strings.HasSuffix(path, ".toon"):
		return FormatTOON
	}

	if sniffHeaderRegex.MatchString(strings.TrimSpace(content)) {
		return FormatTOON
	}
	if json.Valid([]byte(content)) {
		return FormatJSON
	}
	return FormatTOON
}

// OutputPath derives the output file name by swapping a trailing .json or
// .toon extension for the target's. Other names get the target extension
// appended so the input is never overwritten.
func OutputPath(input string, target Format) string {
	if !extensionRegex.MatchString(input) {
		return input + target.Extension()
	}
	return extensionRegex.ReplaceAllString(input, target.Extension())
}
