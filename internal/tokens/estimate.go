// Package tokens provides token estimation utilities for toonify.
package tokens

import "unicode/utf16"

// EstimateTokens provides a rough token count estimate for text.
// Uses the common heuristic of ~4 characters per token, rounded up.
// Characters are UTF-16 code units, so a rune outside the BMP counts twice.
func EstimateTokens(text string) int {
	n := 0
	for _, r := range text {
		n += utf16.RuneLen(r)
	}
	if n == 0 {
		return 0
	}
	return (n + 3) / 4
}

// Comparison describes how a conversion changed the estimated token count.
type Comparison struct {
	Input   int     `json:"input"`
	Output  int     `json:"output"`
	Delta   int     `json:"delta"`
	Percent float64 `json:"percent"`
}

// Compare estimates both texts and reports the change from input to output.
// Percent is relative to the input and is 0 when the input has no tokens.
func Compare(input, output string) Comparison {
	c := Comparison{
		Input:  EstimateTokens(input),
		Output: EstimateTokens(output),
	}
	c.Delta = c.Output - c.Input
	if c.Input > 0 {
		c.Percent = float64(c.Delta) / float64(c.Input) * 100
	}
	return c
}

// Saved reports whether the output is smaller than the input.
func (c Comparison) Saved() bool {
	return c.Delta < 0
}
