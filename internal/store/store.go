// Package store records conversion history.
package store

import (
	"context"
	"time"
)

const historyFile = "history.db"

// Conversion is one recorded conversion.
type Conversion struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	InputPath    string    `json:"input_path"`
	OutputPath   string    `json:"output_path"`
	From         string    `json:"from"` // "json" or "toon"
	To           string    `json:"to"`
	Compact      bool      `json:"compact"`
	InputTokens  int       `json:"input_tokens"`
	OutputTokens int       `json:"output_tokens"`
}

// Stats summarizes all recorded conversions.
type Stats struct {
	Conversions  int `json:"conversions"`
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Saved returns the tokens saved across all conversions. Negative when
// conversions added tokens overall.
func (s Stats) Saved() int {
	return s.InputTokens - s.OutputTokens
}

// HistoryStore defines the interface for storing and querying conversions.
type HistoryStore interface {
	// Record stores c, assigning ID and CreatedAt when unset, and returns the ID.
	Record(ctx context.Context, c Conversion) (string, error)

	// List returns the most recent conversions first. A limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Conversion, error)

	Stats(ctx context.Context) (Stats, error)
	Close() error
}
