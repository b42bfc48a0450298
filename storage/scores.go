// Package storage keeps the history of completed levels in SQLite.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteTimeLayout = "2006-01-02 15:04:05"

// DefaultPath is where scores live unless --db says otherwise.
const DefaultPath = "~/.rakesh/scores.db"

type Store struct {
	db *sql.DB
}

// Run is one completed level.
type Run struct {
	ID        int64
	Level     int
	Score     int
	Stars     int
	Frames    int
	CreatedAt time.Time
}

// LevelBest is the best recorded run of a level.
type LevelBest struct {
	Level int
	Runs  int
	Best  int
	Stars int
}

// Open creates or opens the database at path, creating parent directories
// and the schema as needed. A leading ~ expands to the home directory.
func Open(path string) (*Store, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: expand home: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: create %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: connect: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level INTEGER NOT NULL,
			score INTEGER NOT NULL,
			stars INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_score ON runs(level, score DESC);
	`)
	return err
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRun records a completed level and returns its id.
func (s *Store) SaveRun(level, score, stars, frames int) (int64, error) {
	if level <= 0 || score < 0 || stars < 0 || frames < 0 {
		return 0, fmt.Errorf("storage: save run: invalid run level=%d score=%d stars=%d frames=%d", level, score, stars, frames)
	}
	res, err := s.db.Exec(
		"INSERT INTO runs (level, score, stars, frames) VALUES (?, ?, ?, ?)",
		level, score, stars, frames,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: save run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: save run id: %w", err)
	}
	return id, nil
}

// TopRuns returns the best runs of a level, highest score first and fastest
// first among equal scores. Level 0 means every level.
func (s *Store) TopRuns(level, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, level, score, stars, frames, created_at
		 FROM runs
		 WHERE ? = 0 OR level = ?
		 ORDER BY score DESC, frames ASC, id ASC
		 LIMIT ?`,
		level, level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: top runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Level, &r.Score, &r.Stars, &r.Frames, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: scan run: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterate runs: %w", err)
	}
	return runs, nil
}

// BestScore is the highest score recorded for level, or 0.
func (s *Store) BestScore(level int) (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM runs WHERE level = ?", level).Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: best score: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

// Summary lists every level that has at least one run.
func (s *Store) Summary() ([]LevelBest, error) {
	rows, err := s.db.Query(
		`SELECT level, COUNT(*), MAX(score), MAX(stars)
		 FROM runs
		 GROUP BY level
		 ORDER BY level`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: summary: %w", err)
	}
	defer rows.Close()

	var out []LevelBest
	for rows.Next() {
		var b LevelBest
		if err := rows.Scan(&b.Level, &b.Runs, &b.Best, &b.Stars); err != nil {
			return nil, fmt.Errorf("storage: scan summary: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterate summary: %w", err)
	}
	return out, nil
}

func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTimeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
