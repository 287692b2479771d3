package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS conversions (
	id            TEXT PRIMARY KEY,
	created_at    TEXT NOT NULL,
	input_path    TEXT NOT NULL,
	output_path   TEXT NOT NULL,
	from_format   TEXT NOT NULL,
	to_format     TEXT NOT NULL,
	compact       INTEGER NOT NULL DEFAULT 0,
	input_tokens  INTEGER NOT NULL DEFAULT 0,
	output_tokens INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_conversions_created_at ON conversions(created_at);
`

// SQLiteHistoryStore is a HistoryStore backed by a SQLite database file.
type SQLiteHistoryStore struct {
	db        *sql.DB
	closeOnce sync.Once
	closeErr  error
}

var _ HistoryStore = (*SQLiteHistoryStore)(nil)

// NewSQLiteHistoryStore opens (creating if needed) the history database at path.
func NewSQLiteHistoryStore(path string) (*SQLiteHistoryStore, error) {
	if err := EnsureDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// A single connection serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	return &SQLiteHistoryStore{db: db}, nil
}

// Record stores a conversion.
func (s *SQLiteHistoryStore) Record(ctx context.Context, c Conversion) (string, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions
			(id, created_at, input_path, output_path, from_format, to_format, compact, input_tokens, output_tokens)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.CreatedAt.UTC().Format(time.RFC3339Nano), c.InputPath, c.OutputPath,
		c.From, c.To, c.Compact, c.InputTokens, c.OutputTokens,
	)
	if err != nil {
		return "", fmt.Errorf("failed to record conversion: %w", err)
	}
	return c.ID, nil
}

// List returns recorded conversions, newest first.
func (s *SQLiteHistoryStore) List(ctx context.Context, limit int) ([]Conversion, error) {
	query := `SELECT id, created_at, input_path, output_path, from_format, to_format, compact, input_tokens, output_tokens
		FROM conversions ORDER BY created_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	conversions := []Conversion{}
	for rows.Next() {
		var (
			c         Conversion
			createdAt string
		)
		if err := rows.Scan(&c.ID, &createdAt, &c.InputPath, &c.OutputPath,
			&c.From, &c.To, &c.Compact, &c.InputTokens, &c.OutputTokens); err != nil {
			return nil, fmt.Errorf("failed to scan conversion: %w", err)
		}
		c.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp for %s: %w", c.ID, err)
		}
		conversions = append(conversions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return conversions, nil
}

// Stats returns totals over all conversions.
func (s *SQLiteHistoryStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0) FROM conversions`,
	).Scan(&st.Conversions, &st.InputTokens, &st.OutputTokens)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to compute history stats: %w", err)
	}
	return st, nil
}

// Export writes every conversion to w as JSON lines, oldest first.
func (s *SQLiteHistoryStore) Export(ctx context.Context, w io.Writer) error {
	conversions, err := s.List(ctx, 0)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	for i := len(conversions) - 1; i >= 0; i-- {
		if err := enc.Encode(conversions[i]); err != nil {
			return fmt.Errorf("failed to export conversion %s: %w", conversions[i].ID, err)
		}
	}
	return nil
}

// Close closes the database. Calling it more than once is safe.
func (s *SQLiteHistoryStore) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.db.Close()
	})
	return s.closeErr
}
