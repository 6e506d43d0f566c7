// Package storage provides SQLite-based persistence for finished matches,
// player records and tournament brackets.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// foreign keys are per connection in sqlite
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			tournament_id TEXT,
			round INTEGER NOT NULL DEFAULT 0,
			slot INTEGER NOT NULL DEFAULT 0,
			player1 TEXT NOT NULL,
			player2 TEXT NOT NULL,
			score1 INTEGER NOT NULL DEFAULT 0,
			score2 INTEGER NOT NULL DEFAULT 0,
			winner TEXT NOT NULL,
			loser TEXT NOT NULL,
			total_rallies INTEGER NOT NULL DEFAULT 0,
			total_bounces INTEGER NOT NULL DEFAULT 0,
			avg_bounces REAL NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			avg_rally_ms INTEGER NOT NULL DEFAULT 0,
			paused_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_created ON matches(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_matches_tournament ON matches(tournament_id);

		CREATE TABLE IF NOT EXISTS player_match_stats (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL REFERENCES matches(match_id) ON DELETE CASCADE,
			side INTEGER NOT NULL,
			player TEXT NOT NULL COLLATE NOCASE,
			won INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			max_consecutive_wins INTEGER NOT NULL DEFAULT 0,
			effects INTEGER NOT NULL DEFAULT 0,
			max_bounces_won_rally INTEGER NOT NULL DEFAULT 0,
			fastest_won_ms INTEGER NOT NULL DEFAULT 0,
			fastest_lost_ms INTEGER NOT NULL DEFAULT 0,
			max_speed_won REAL NOT NULL DEFAULT 0,
			max_speed_lost REAL NOT NULL DEFAULT 0,
			paddle_hits INTEGER NOT NULL DEFAULT 0,
			UNIQUE(match_id, side)
		);
		CREATE INDEX IF NOT EXISTS idx_player_stats_player ON player_match_stats(player);

		CREATE TABLE IF NOT EXISTS tournaments (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			size INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			champion TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS tournament_matches (
			tournament_id TEXT NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
			round INTEGER NOT NULL,
			slot INTEGER NOT NULL,
			player1 TEXT NOT NULL DEFAULT '',
			player2 TEXT NOT NULL DEFAULT '',
			match_id TEXT NOT NULL DEFAULT '',
			winner TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (tournament_id, round, slot)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// parseTime handles both time.Time and string datetimes returned by the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func toMillis(d time.Duration) int64 {
	return d.Milliseconds()
}

func fromMillis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
