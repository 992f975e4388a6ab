// Package storage persists ranked search results to SQLite.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/querent-dev/querent/pkg/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS search_results (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	query TEXT NOT NULL,
	source TEXT NOT NULL,
	title TEXT NOT NULL,
	link TEXT NOT NULL,
	excerpt TEXT NOT NULL DEFAULT '',
	channel TEXT NOT NULL DEFAULT '',
	rank_score REAL NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_search_results_query ON search_results(query);
`

// Storage owns the SQLite database holding persisted search results.
// Records are written in per-request batches and are immutable afterwards;
// there is no update or delete path.
type Storage struct {
	db *sql.DB
}

func New(dbPath string) (*Storage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 30000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// StoreResults writes a ranked batch in a single transaction. Either every
// record in the batch becomes visible or none does; a failure on any record
// rolls back the whole write. Surrogate ids are assigned by SQLite and
// written back to the records.
func (s *Storage) StoreResults(results []*core.Result) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil {
				fmt.Printf("Warning: failed to rollback transaction: %v\n", err)
			}
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO search_results (query, source, title, link, excerpt, channel, rank_score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			fmt.Printf("Warning: failed to close statement: %v\n", err)
		}
	}()

	now := time.Now().UTC()
	for _, r := range results {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("validating result %q: %w", r.Title, err)
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}

		res, err := stmt.Exec(r.Query, string(r.Source), r.Title, r.Link, r.Excerpt, r.Channel, r.RankScore, r.CreatedAt)
		if err != nil {
			return fmt.Errorf("inserting result %q: %w", r.Title, err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("getting insert id for %q: %w", r.Title, err)
		}
		r.ID = id
	}

	err = tx.Commit()
	if err == nil {
		committed = true
	}
	return err
}

// ResultsByQuery returns every stored record whose query matches exactly,
// ordered by rank_score descending. Equal scores come back in insertion
// order (ascending id).
func (s *Storage) ResultsByQuery(query string) ([]*core.Result, error) {
	rows, err := s.db.Query(`
		SELECT id, query, source, title, link, excerpt, channel, rank_score, created_at
		FROM search_results
		WHERE query = ?
		ORDER BY rank_score DESC, id ASC
	`, query)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			fmt.Printf("Warning: failed to close rows: %v\n", err)
		}
	}()

	var results []*core.Result
	for rows.Next() {
		var r core.Result
		var source string
		err = rows.Scan(&r.ID, &r.Query, &source, &r.Title, &r.Link, &r.Excerpt, &r.Channel, &r.RankScore, &r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.Source = core.Source(source)
		results = append(results, &r)
	}

	return results, rows.Err()
}

// Stats returns aggregate counters about the stored results.
func (s *Storage) Stats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var totalResults int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM search_results").Scan(&totalResults); err != nil {
		return nil, fmt.Errorf("counting results: %w", err)
	}
	stats["total_results"] = totalResults

	var totalQueries int
	if err := s.db.QueryRow("SELECT COUNT(DISTINCT query) FROM search_results").Scan(&totalQueries); err != nil {
		return nil, fmt.Errorf("counting queries: %w", err)
	}
	stats["total_queries"] = totalQueries

	return stats, nil
}
