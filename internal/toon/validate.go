package toon

import (
	"fmt"
	"strings"
)

// Diagnostic messages for the two short-circuiting checks.
const (
	MsgMissingDataRows = "missing data rows"
	MsgInvalidHeader   = "invalid TOON header"
)

// Result is the outcome of Validate. Errors is never empty when Valid is
// false and never nil.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks TOON text for structural problems and reports them as
// diagnostics instead of failing. The header must match the whole first line
// and every data row must have exactly as many columns as the header
// declares fields. Row numbers in diagnostics are 1-based and count only
// non-blank lines.
func Validate(data string) Result {
	errs := []string{}

	lines := splitLines(data)
	if len(lines) < 2 {
		return Result{Valid: false, Errors: append(errs, MsgMissingDataRows)}
	}

	h, ok := parseValidateHeader(lines[0])
	if !ok {
		return Result{Valid: false, Errors: append(errs, MsgInvalidHeader)}
	}

	expected := len(h.fields)
	for i := 1; i < len(lines); i++ {
		found := len(strings.Split(lines[i], fieldDelimiter))
		if found != expected {
			errs = append(errs, fmt.Sprintf("row %d: expected %d columns, found %d", i, expected, found))
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}
