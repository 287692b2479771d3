package toon

import (
	"regexp"
	"strings"
)

// The decoder and the validator read headers with different leniency and
// the two grammars are kept apart on purpose.
var (
	// decodeHeaderRegex is unanchored: text around the header is tolerated,
	// which lets compact documents decode their header line.
	decodeHeaderRegex = regexp.MustCompile(`(\w+)\[\d+\]\{([^}]+)\}:`)

	// validateHeaderRegex must match the whole line.
	validateHeaderRegex = regexp.MustCompile(`^(\w+)\[(\d+)\]\{([^}]+)\}:$`)
)

// header is the parsed form of `root[count]{f1,f2,...}:`. The declared count
// is documentary and never compared against the rows.
type header struct {
	root   string
	fields []string
}

func parseDecodeHeader(line string) (header, bool) {
	m := decodeHeaderRegex.FindStringSubmatch(line)
	if m == nil {
		return header{}, false
	}
	return header{root: m[1], fields: strings.Split(m[2], fieldDelimiter)}, true
}

func parseValidateHeader(line string) (header, bool) {
	m := validateHeaderRegex.FindStringSubmatch(line)
	if m == nil {
		return header{}, false
	}
	return header{root: m[1], fields: strings.Split(m[3], fieldDelimiter)}, true
}
