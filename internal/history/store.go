// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite log of generated summaries so earlier runs
// can be listed and exported.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/material-summary/pkg/types"
)

const defaultLimit = 20

// timeLayout stores timestamps at fixed width so the text column sorts
// chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Entry is one generated summary.
type Entry struct {
	ID           int64                     `json:"id" yaml:"id"`
	Component    string                    `json:"component" yaml:"component"`
	SourcePath   string                    `json:"source_path" yaml:"source_path"`
	Category     types.Category            `json:"category" yaml:"category"`
	ReportDate   string                    `json:"report_date" yaml:"report_date"`
	Summary      string                    `json:"summary" yaml:"summary"`
	Observations []types.ObservationRecord `json:"observations" yaml:"observations"`
	OutputPath   string                    `json:"output_path" yaml:"output_path"`
	GeneratedAt  time.Time                 `json:"generated_at" yaml:"generated_at"`
}

// Query filters List results.
type Query struct {
	// Component restricts results to one component (case-insensitive).
	Component string
	// Limit caps the number of results; 0 uses the default (20),
	// negative means no limit.
	Limit int
}

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the history database at cfg.DBPath.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	path := cfg.DBPath
	if path == "" {
		path = "material-summary.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
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

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS summaries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			component TEXT NOT NULL,
			source_path TEXT NOT NULL,
			category TEXT NOT NULL,
			report_date TEXT,
			summary TEXT,
			observations TEXT,
			output_path TEXT NOT NULL,
			generated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_summaries_component ON summaries(component)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts e. ID is assigned by the database.
func (s *Store) Record(ctx context.Context, e Entry) error {
	obs := e.Observations
	if obs == nil {
		obs = []types.ObservationRecord{}
	}
	obsJSON, err := json.Marshal(obs)
	if err != nil {
		return fmt.Errorf("marshaling observations: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO summaries
			(component, source_path, category, report_date, summary, observations, output_path, generated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		strings.ToLower(e.Component), e.SourcePath, string(e.Category), e.ReportDate, e.Summary,
		string(obsJSON), e.OutputPath, e.GeneratedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting summary for %s: %w", e.Component, err)
	}
	return nil
}

// List returns recorded summaries, newest first.
func (s *Store) List(ctx context.Context, q Query) ([]Entry, error) {
	limit := q.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	var where string
	var args []any
	if c := strings.TrimSpace(q.Component); c != "" {
		where = "WHERE component = ?"
		args = append(args, strings.ToLower(c))
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, component, source_path, category, report_date, summary, observations, output_path, generated_at
		 FROM summaries `+where+`
		 ORDER BY generated_at DESC, id DESC
		 LIMIT ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying summaries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var category, obsJSON, generatedAt string
		var reportDate, summary sql.NullString
		if err := rows.Scan(&e.ID, &e.Component, &e.SourcePath, &category, &reportDate, &summary, &obsJSON, &e.OutputPath, &generatedAt); err != nil {
			return nil, fmt.Errorf("scanning summary: %w", err)
		}
		e.Category = types.Category(category)
		e.ReportDate = reportDate.String
		e.Summary = summary.String
		if err := json.Unmarshal([]byte(obsJSON), &e.Observations); err != nil {
			return nil, fmt.Errorf("decoding observations of summary %d: %w", e.ID, err)
		}
		if e.GeneratedAt, err = time.Parse(time.RFC3339Nano, generatedAt); err != nil {
			return nil, fmt.Errorf("decoding timestamp of summary %d: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
