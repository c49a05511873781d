// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists conversions in a local SQLite database and
// exports them to YAML or JSON.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/binconv/pkg/types"
)

const (
	dbFile = "history.db"

	// timeLayout is fixed-width so that created_at sorts lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store manages the history SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates dir/history.db and creates the schema if it
// does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, dir: cfg.Dir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the directory holding the database.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			direction TEXT NOT NULL,
			input TEXT NOT NULL,
			output TEXT,
			error TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_direction ON conversions(direction)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_created_at ON conversions(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

const insertSQL = `INSERT INTO conversions (direction, input, output, error, created_at)
	VALUES (?, ?, ?, ?, ?)`

// Record stores one conversion. A zero CreatedAt is replaced by the current
// time.
func (s *Store) Record(ctx context.Context, c types.Conversion) error {
	return s.RecordAll(ctx, []types.Conversion{c})
}

// RecordAll stores conversions in a single transaction.
func (s *Store) RecordAll(ctx context.Context, cs []types.Conversion) error {
	if len(cs) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range cs {
		created := c.CreatedAt
		if created.IsZero() {
			created = time.Now()
		}
		_, err := stmt.ExecContext(ctx,
			string(c.Direction), c.Input, c.Output, c.Error,
			created.UTC().Format(timeLayout),
		)
		if err != nil {
			return fmt.Errorf("inserting conversion %q: %w", c.Input, err)
		}
	}
	return tx.Commit()
}

// ListOptions filters List results.
type ListOptions struct {
	// Direction restricts results to one direction when set.
	Direction types.Direction

	// FailedOnly returns only conversions that produced an error.
	FailedOnly bool

	// Limit caps the result count. Zero uses the store default.
	Limit int
}

// List returns recorded conversions, newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.Conversion, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT direction, input, output, error, created_at FROM conversions WHERE 1=1`)
	if opts.Direction != "" {
		qb.WriteString(` AND direction = ?`)
		args = append(args, string(opts.Direction))
	}
	if opts.FailedOnly {
		qb.WriteString(` AND error IS NOT NULL AND error != ''`)
	}
	qb.WriteString(` ORDER BY created_at DESC, id DESC LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []types.Conversion
	for rows.Next() {
		var (
			c                  types.Conversion
			dir, created       string
			output, errMessage sql.NullString
		)
		if err := rows.Scan(&dir, &c.Input, &output, &errMessage, &created); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		c.Direction = types.Direction(dir)
		c.Output = output.String
		c.Error = errMessage.String
		t, err := time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("scanning row: parsing created_at %q: %w", created, err)
		}
		c.CreatedAt = t
		out = append(out, c)
	}
	return out, rows.Err()
}

// Clear deletes every recorded conversion and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM conversions`)
	if err != nil {
		return 0, fmt.Errorf("clearing history: %w", err)
	}
	return res.RowsAffected()
}
