// Package storage provides SQLite-based persistence for finished snake sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/gridsnake/internal/games/snake"
)

// Store manages the SQLite database connection for the session journal.
type Store struct {
	db *sql.DB
}

// SessionRecord is one finished session: enough to list it and to replay it.
type SessionRecord struct {
	ID        int64
	Mode      string
	Player    string
	Recording snake.Recording
	Score     int
	Reason    snake.EndReason
	CreatedAt time.Time
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
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
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			grid_count INTEGER NOT NULL,
			tick_interval_ms INTEGER NOT NULL,
			boundary TEXT NOT NULL,
			initial_length INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			score INTEGER NOT NULL,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at DESC);

		CREATE TABLE IF NOT EXISTS session_inputs (
			session_id INTEGER NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			direction TEXT NOT NULL,
			PRIMARY KEY (session_id, seq)
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

// SaveSession records a finished session and its inputs in one transaction.
// Returns the ID of the inserted session.
func (s *Store) SaveSession(rec SessionRecord) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	cfg := rec.Recording.Config
	res, err := tx.Exec(
		`INSERT INTO sessions
		 (mode, player, grid_count, tick_interval_ms, boundary, initial_length, seed, ticks, score, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Mode,
		rec.Player,
		cfg.GridCount,
		cfg.TickInterval.Milliseconds(),
		cfg.Boundary.String(),
		cfg.InitialLength,
		cfg.Seed,
		int64(rec.Recording.Ticks),
		rec.Score,
		rec.Reason.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for i, in := range rec.Recording.Inputs {
		if _, err := tx.Exec(
			"INSERT INTO session_inputs (session_id, seq, tick, direction) VALUES (?, ?, ?, ?)",
			id, i, int64(in.Tick), in.Dir.String(),
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save input %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit session: %w", err)
	}
	return id, nil
}

const sessionColumns = `id, mode, player, grid_count, tick_interval_ms, boundary,
	initial_length, seed, ticks, score, end_reason, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (SessionRecord, error) {
	var (
		rec        SessionRecord
		intervalMs int64
		boundary   string
		ticks      int64
		reason     string
		createdAt  any
	)
	cfg := &rec.Recording.Config
	if err := row.Scan(
		&rec.ID,
		&rec.Mode,
		&rec.Player,
		&cfg.GridCount,
		&intervalMs,
		&boundary,
		&cfg.InitialLength,
		&cfg.Seed,
		&ticks,
		&rec.Score,
		&reason,
		&createdAt,
	); err != nil {
		return rec, err
	}

	mode, err := snake.ParseBoundaryMode(boundary)
	if err != nil {
		return rec, fmt.Errorf("storage: session %d: %w", rec.ID, err)
	}
	cfg.Boundary = mode
	cfg.TickInterval = time.Duration(intervalMs) * time.Millisecond
	rec.Recording.Ticks = uint64(ticks)
	rec.Reason = snake.ParseEndReason(reason)
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Session retrieves a session with its inputs.
// Returns nil, nil if no session has the given ID.
func (s *Store) Session(id int64) (*SessionRecord, error) {
	rec, err := scanSession(s.db.QueryRow(
		"SELECT "+sessionColumns+" FROM sessions WHERE id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}

	rows, err := s.db.Query(
		"SELECT tick, direction FROM session_inputs WHERE session_id = ? ORDER BY seq",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query inputs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tick int64
			name string
		)
		if err := rows.Scan(&tick, &name); err != nil {
			return nil, fmt.Errorf("storage: cannot scan input: %w", err)
		}
		dir, err := snake.ParseDirection(name)
		if err != nil {
			return nil, fmt.Errorf("storage: session %d: %w", id, err)
		}
		rec.Recording.Inputs = append(rec.Recording.Inputs, snake.Input{Tick: uint64(tick), Dir: dir})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &rec, nil
}

// RecentSessions retrieves the most recent sessions, newest first.
// Inputs are not loaded; use Session for a replayable record.
func (s *Store) RecentSessions(limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT "+sessionColumns+" FROM sessions ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var results []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// DeleteSession removes a session and its inputs.
func (s *Store) DeleteSession(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM session_inputs WHERE session_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete inputs: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete session: %w", err)
	}
	return tx.Commit()
}
