// Package journal keeps a SQLite log of finished play sessions: which engine
// ran, on what board, how the session ended and how busy the loop was.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/stacker/internal/config"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("journal: record not found")

// Store manages the SQLite database connection for the session journal.
type Store struct {
	db *sql.DB
}

// Record is one finished session.
type Record struct {
	ID         int64
	Engine     string
	Surface    string // "tui", "tcell", "ssh", "headless"
	User       string // SSH user, empty for local sessions
	BoardW     int
	BoardH     int
	Reason     string // "quit", "game_over", "error"
	Error      string // Error text when Reason is "error"
	Iterations int
	Ticks      int
	Redraws    int
	Commands   int
	Duration   time.Duration
	CreatedAt  time.Time
}

// EngineSummary aggregates the sessions of one engine.
type EngineSummary struct {
	Engine   string
	Sessions int
	GameOver int
	Errors   int
	Ticks    int
	Longest  time.Duration
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath = config.ExpandHome(dbPath)

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("journal: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("journal: cannot open database: %w", err)
	}
	// SSH sessions finish concurrently; SQLite takes one writer at a time
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			engine TEXT NOT NULL,
			surface TEXT NOT NULL,
			user TEXT NOT NULL DEFAULT '',
			board_w INTEGER NOT NULL,
			board_h INTEGER NOT NULL,
			reason TEXT NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			iterations INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			redraws INTEGER NOT NULL DEFAULT 0,
			commands INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_engine ON sessions(engine);
		CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user);
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

// Save records a finished session and returns its ID.
func (s *Store) Save(r Record) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO sessions
		 (engine, surface, user, board_w, board_h, reason, error, iterations, ticks, redraws, commands, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Engine,
		r.Surface,
		r.User,
		r.BoardW,
		r.BoardH,
		r.Reason,
		r.Error,
		r.Iterations,
		r.Ticks,
		r.Redraws,
		r.Commands,
		r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("journal: cannot save session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("journal: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const selectRecord = `SELECT id, engine, surface, user, board_w, board_h, reason, error,
		        iterations, ticks, redraws, commands, duration_ms, created_at
		 FROM sessions`

// Get retrieves one session by ID.
func (s *Store) Get(id int64) (Record, error) {
	rec, err := scanRecord(s.db.QueryRow(selectRecord+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return Record{}, fmt.Errorf("journal: cannot query session: %w", err)
	}
	return rec, nil
}

// Recent retrieves the most recent sessions, newest first. A non-empty
// engine restricts the result to that engine.
func (s *Store) Recent(engine string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	var (
		rows *sql.Rows
		err  error
	)
	if engine == "" {
		rows, err = s.db.Query(selectRecord+" ORDER BY id DESC LIMIT ?", limit)
	} else {
		rows, err = s.db.Query(selectRecord+" WHERE engine = ? ORDER BY id DESC LIMIT ?", engine, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("journal: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("journal: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: row iteration error: %w", err)
	}

	return records, nil
}

// Summaries aggregates sessions per engine, sorted by engine name.
func (s *Store) Summaries() ([]EngineSummary, error) {
	rows, err := s.db.Query(
		`SELECT engine,
		        COUNT(*),
		        SUM(CASE WHEN reason = 'game_over' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN reason = 'error' THEN 1 ELSE 0 END),
		        SUM(ticks),
		        MAX(duration_ms)
		 FROM sessions
		 GROUP BY engine
		 ORDER BY engine`,
	)
	if err != nil {
		return nil, fmt.Errorf("journal: cannot query summaries: %w", err)
	}
	defer rows.Close()

	var out []EngineSummary
	for rows.Next() {
		var sum EngineSummary
		var longestMS int64
		if err := rows.Scan(&sum.Engine, &sum.Sessions, &sum.GameOver, &sum.Errors, &sum.Ticks, &longestMS); err != nil {
			return nil, fmt.Errorf("journal: cannot scan row: %w", err)
		}
		sum.Longest = time.Duration(longestMS) * time.Millisecond
		out = append(out, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: row iteration error: %w", err)
	}

	return out, nil
}

// Clear deletes every session of engine, or all sessions if engine is empty.
func (s *Store) Clear(engine string) error {
	var err error
	if engine == "" {
		_, err = s.db.Exec("DELETE FROM sessions")
	} else {
		_, err = s.db.Exec("DELETE FROM sessions WHERE engine = ?", engine)
	}
	if err != nil {
		return fmt.Errorf("journal: cannot clear sessions: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var r Record
	var durationMS int64
	var createdAt any

	err := sc.Scan(
		&r.ID,
		&r.Engine,
		&r.Surface,
		&r.User,
		&r.BoardW,
		&r.BoardH,
		&r.Reason,
		&r.Error,
		&r.Iterations,
		&r.Ticks,
		&r.Redraws,
		&r.Commands,
		&durationMS,
		&createdAt,
	)
	if err != nil {
		return Record{}, err
	}

	r.Duration = time.Duration(durationMS) * time.Millisecond

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		r.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			r.CreatedAt = parsed
		}
	}

	return r, nil
}
