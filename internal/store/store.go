// Package store records evaluation sessions and the solutions they produce
// in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	started_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS solutions (
	id         TEXT PRIMARY KEY,
	session_id TEXT NOT NULL REFERENCES sessions(id),
	problem    TEXT NOT NULL,
	idx        INTEGER NOT NULL,
	value      TEXT NOT NULL,
	exhausted  INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS solutions_session ON solutions(session_id, created_at);
`

// Solution is one recorded result. Exhausted rows mark the end of a problem
// and carry an empty value.
type Solution struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	Problem   string
	Index     int
	Value     string
	Exhausted bool
	CreatedAt time.Time
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path. ":memory:" gives a
// private in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// StartSession registers a session so its solutions can be recorded.
func (s *Store) StartSession(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO sessions (id, started_at) VALUES (?, ?)`,
		id.String(), s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("store: start session %s: %w", id, err)
	}
	return nil
}

// RecordSolution stores the index-th value produced for problem.
func (s *Store) RecordSolution(ctx context.Context, sessionID uuid.UUID, problem string, index int, value string) error {
	return s.insert(ctx, sessionID, problem, index, value, false)
}

// RecordExhausted notes that problem has no values after index.
func (s *Store) RecordExhausted(ctx context.Context, sessionID uuid.UUID, problem string, index int) error {
	return s.insert(ctx, sessionID, problem, index, "", true)
}

func (s *Store) insert(ctx context.Context, sessionID uuid.UUID, problem string, index int, value string, exhausted bool) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO solutions (id, session_id, problem, idx, value, exhausted, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), sessionID.String(), problem, index, value, exhausted, s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("store: record solution: %w", err)
	}
	return nil
}

// Solutions returns the solutions of one session, oldest first.
func (s *Store) Solutions(ctx context.Context, sessionID uuid.UUID) ([]Solution, error) {
	return s.query(ctx,
		`SELECT id, session_id, problem, idx, value, exhausted, created_at
		 FROM solutions WHERE session_id = ? ORDER BY created_at, rowid`,
		sessionID.String())
}

// Recent returns the last limit solutions across all sessions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Solution, error) {
	return s.query(ctx,
		`SELECT id, session_id, problem, idx, value, exhausted, created_at
		 FROM solutions ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit)
}

func (s *Store) query(ctx context.Context, q string, args ...interface{}) ([]Solution, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}
	defer rows.Close()

	var out []Solution
	for rows.Next() {
		var (
			sol           Solution
			id, sessionID string
			createdAt     int64
		)
		if err := rows.Scan(&id, &sessionID, &sol.Problem, &sol.Index, &sol.Value, &sol.Exhausted, &createdAt); err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		if sol.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("store: bad solution id %q: %w", id, err)
		}
		if sol.SessionID, err = uuid.Parse(sessionID); err != nil {
			return nil, fmt.Errorf("store: bad session id %q: %w", sessionID, err)
		}
		sol.CreatedAt = time.Unix(0, createdAt)
		out = append(out, sol)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}
	return out, nil
}
