// Package convert drives a single JSON <-> TOON conversion: it reads the
// input, picks the direction, runs the codec and reports token estimates.
package convert

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nvandessel/toonify/internal/ordered"
	"github.com/nvandessel/toonify/internal/tokens"
	"github.com/nvandessel/toonify/internal/toon"
)

// ErrSameFormat is returned when the source and target formats match.
var ErrSameFormat = errors.New("input is already in the target format")

// Request describes one conversion.
type Request struct {
	Input   string
	From    Format
	To      Format
	Compact bool // TOON output only
}

// Result is the outcome of a conversion.
type Result struct {
	Output string            `json:"output"`
	From   Format            `json:"from"`
	To     Format            `json:"to"`
	Tokens tokens.Comparison `json:"tokens"`
}

// Convert converts req.Input from req.From to req.To.
func Convert(req Request) (*Result, error) {
	if req.From == req.To {
		return nil, fmt.Errorf("%w: %s", ErrSameFormat, req.To)
	}

	var (
		output string
		err    error
	)
	switch req.To {
	case FormatTOON:
		output, err = ToTOON(req.Input, req.Compact)
	case FormatJSON:
		output, err = ToJSON(req.Input)
	default:
		return nil, fmt.Errorf("unsupported target format %q", req.To)
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		Output: output,
		From:   req.From,
		To:     req.To,
		Tokens: tokens.Compare(req.Input, output),
	}, nil
}

// ToTOON parses JSON text and encodes it as TOON.
func ToTOON(input string, compact bool) (string, error) {
	data, err := ordered.Decode([]byte(input))
	if err != nil {
		return "", fmt.Errorf("invalid JSON input: %w", err)
	}
	return toon.EncodeWithOptions(data, &toon.EncodeOptions{Compact: compact})
}

// ToJSON decodes TOON text and renders it as JSON indented by two spaces.
func ToJSON(input string) (string, error) {
	data, err := toon.Decode(input)
	if err != nil {
		return "", err
	}
	b, err := ordered.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return string(b), nil
}

// ReadInput reads the file at path, or standard input when path is "-" or
// empty.
func ReadInput(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("file not found: %s", path)
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(b), nil
}

// WriteOutput writes content to path.
func WriteOutput(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
