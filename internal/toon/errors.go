package toon

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned by Decode when the text has no non-blank lines.
var ErrEmptyInput = errors.New("TOON data cannot be empty")

// InputShapeError reports a value that is not a single-key object holding a
// non-empty array of uniformly shaped records.
type InputShapeError struct {
	Reason string

	// Row and Field identify the offending record when the failure is
	// record-specific. Row is -1 otherwise.
	Row   int
	Field string
}

func (e *InputShapeError) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("row %d is missing field %q", e.Row, e.Field)
	case e.Row >= 0:
		return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
	default:
		return e.Reason
	}
}

func shapeError(reason string) *InputShapeError {
	return &InputShapeError{Reason: reason, Row: -1}
}

// InvalidHeaderError reports a first line that does not match the TOON
// header grammar.
type InvalidHeaderError struct {
	Line string
}

func (e *InvalidHeaderError) Error() string {
	return fmt.Sprintf("invalid TOON header format: %q", e.Line)
}
