// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: history/history.go
// Summary: SQLite-backed visit log with frecency ranking.

package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite"
)

// VisitLog records committed navigations and ranks locations for the
// sidebar's recent list.
type VisitLog interface {
	// RecordVisit logs one committed navigation to path.
	RecordVisit(path string, at time.Time) error

	// TopLocations returns up to limit paths ranked by frecency.
	TopLocations(limit int) ([]Location, error)

	// Prune keeps only the newest keep rows.
	Prune(keep int) error

	// Close closes the database.
	Close() error
}

// Location is one ranked entry of the visit log.
type Location struct {
	Path      string
	Visits    int
	LastVisit time.Time
	Score     float64
}

// Config holds visit log settings.
type Config struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// MaxRows bounds the visits table; Prune enforces it.
	// Default: 10000
	MaxRows int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(dbPath string) Config {
	return Config{
		DBPath:  dbPath,
		MaxRows: 10000,
	}
}

const visitSchema = `
CREATE TABLE IF NOT EXISTS visits (
    id INTEGER PRIMARY KEY,
    path TEXT NOT NULL,
    timestamp INTEGER NOT NULL    -- UnixNano
);

CREATE INDEX IF NOT EXISTS idx_visits_path ON visits(path);
CREATE INDEX IF NOT EXISTS idx_visits_timestamp ON visits(timestamp);
`

// SQLiteVisitLog implements VisitLog on modernc.org/sqlite.
type SQLiteVisitLog struct {
	config Config
	db     *sql.DB
}

// New opens (or creates) the visit log at dbPath.
func New(dbPath string) (*SQLiteVisitLog, error) {
	return NewWithConfig(DefaultConfig(dbPath))
}

// NewWithConfig opens a visit log with custom settings.
func NewWithConfig(config Config) (*SQLiteVisitLog, error) {
	if err := os.MkdirAll(filepath.Dir(config.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := config.DBPath +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=temp_store(MEMORY)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(visitSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if config.MaxRows <= 0 {
		config.MaxRows = 10000
	}
	return &SQLiteVisitLog{config: config, db: db}, nil
}

// RecordVisit logs one committed navigation.
func (v *SQLiteVisitLog) RecordVisit(path string, at time.Time) error {
	_, err := v.db.Exec(`INSERT INTO visits (path, timestamp) VALUES (?, ?)`,
		path, at.UnixNano())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// TopLocations ranks paths by frecency: visit count weighted by how
// recently the path was last seen.
func (v *SQLiteVisitLog) TopLocations(limit int) ([]Location, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := v.db.Query(`
		SELECT path, COUNT(*) AS visits, MAX(timestamp) AS last
		FROM visits
		GROUP BY path
		ORDER BY last DESC
		LIMIT ?`, limit*4)
	if err != nil {
		return nil, fmt.Errorf("top locations: %w", err)
	}
	defer rows.Close()

	now := time.Now()
	var out []Location
	for rows.Next() {
		var loc Location
		var last int64
		if err := rows.Scan(&loc.Path, &loc.Visits, &last); err != nil {
			return nil, fmt.Errorf("top locations: %w", err)
		}
		loc.LastVisit = time.Unix(0, last)
		loc.Score = float64(loc.Visits) * recencyWeight(now.Sub(loc.LastVisit))
		out = append(out, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top locations: %w", err)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Prune keeps only the newest keep rows, or MaxRows when keep <= 0.
func (v *SQLiteVisitLog) Prune(keep int) error {
	if keep <= 0 {
		keep = v.config.MaxRows
	}
	_, err := v.db.Exec(`
		DELETE FROM visits WHERE id NOT IN (
			SELECT id FROM visits ORDER BY timestamp DESC LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("prune visits: %w", err)
	}
	return nil
}

// Close closes the database.
func (v *SQLiteVisitLog) Close() error {
	return v.db.Close()
}

// recencyWeight buckets age the way frecency rankers usually do: the
// fresher the last visit, the heavier each visit counts.
func recencyWeight(age time.Duration) float64 {
	switch {
	case age < time.Hour:
		return 4
	case age < 24*time.Hour:
		return 2
	case age < 7*24*time.Hour:
		return 1
	default:
		return 0.25
	}
}
