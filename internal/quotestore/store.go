// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package quotestore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dotandev/sunfee/internal/fee"
	_ "modernc.org/sqlite"
)

// Quote is one persisted fee computation
type Quote struct {
	ID        int64         `json:"id"`
	Network   string        `json:"network"`
	Owner     string        `json:"owner"`
	Breakdown fee.Breakdown `json:"breakdown"`
	Timestamp time.Time     `json:"timestamp"`
}

// Store handles quote history database operations
type Store struct {
	db *sql.DB
}

// Open initializes the SQLite database at the given path, creating parent
// directories as needed. An empty path falls back to ~/.sunfee/history.db.
func Open(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home dir: %w", err)
		}
		path = filepath.Join(home, ".sunfee", "history.db")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS quotes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		network TEXT NOT NULL,
		owner TEXT NOT NULL,
		breakdown TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_quotes_owner ON quotes(owner);
	CREATE INDEX IF NOT EXISTS idx_quotes_network ON quotes(network);
	`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}

// Save persists a computed fee breakdown
func (s *Store) Save(quote *Quote) error {
	breakdownJSON, err := json.Marshal(quote.Breakdown)
	if err != nil {
		return fmt.Errorf("failed to marshal breakdown: %w", err)
	}

	query := `
	INSERT INTO quotes (network, owner, breakdown, timestamp)
	VALUES (?, ?, ?, ?)
	`
	_, err = s.db.Exec(query, quote.Network, quote.Owner, string(breakdownJSON), time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert quote: %w", err)
	}
	return nil
}

// SearchParams defines the criteria for listing quotes
type SearchParams struct {
	Network string
	Owner   string
	Limit   int
}

// Search lists stored quotes matching the params, newest first
func (s *Store) Search(params SearchParams) ([]Quote, error) {
	query := "SELECT id, network, owner, breakdown, timestamp FROM quotes WHERE 1=1"
	args := []interface{}{}

	if params.Network != "" {
		query += " AND network = ?"
		args = append(args, params.Network)
	}
	if params.Owner != "" {
		query += " AND owner = ?"
		args = append(args, params.Owner)
	}

	query += " ORDER BY timestamp DESC"

	if params.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, params.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var results []Quote
	for rows.Next() {
		var quote Quote
		var breakdownRaw string
		var ts time.Time

		if err := rows.Scan(&quote.ID, &quote.Network, &quote.Owner, &breakdownRaw, &ts); err != nil {
			continue
		}
		quote.Timestamp = ts

		_ = json.Unmarshal([]byte(breakdownRaw), &quote.Breakdown)

		results = append(results, quote)
	}

	return results, rows.Err()
}

// Prune removes quotes older than maxAge and reports how many were deleted
func (s *Store) Prune(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)

	result, err := s.db.Exec("DELETE FROM quotes WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune quotes: %w", err)
	}

	return result.RowsAffected()
}

// Close releases the underlying database handle
func (s *Store) Close() error {
	return s.db.Close()
}
