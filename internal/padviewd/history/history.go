// Package history keeps a local record of countdown sessions in SQLite, for
// the status API and the control CLI.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/padview/padview/internal/padviewd/launch"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id          TEXT PRIMARY KEY,
	event_name  TEXT NOT NULL,
	event_net   TIMESTAMP NOT NULL,
	provider    TEXT NOT NULL DEFAULT '',
	location    TEXT NOT NULL DEFAULT '',
	had_image   INTEGER NOT NULL DEFAULT 0,
	started_at  TIMESTAMP NOT NULL,
	ended_at    TIMESTAMP,
	outcome     TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at DESC);
`

// Entry is one recorded countdown session.
type Entry struct {
	ID        uuid.UUID  `json:"id"`
	EventName string     `json:"eventName"`
	EventNet  time.Time  `json:"eventNet"`
	Provider  string     `json:"provider"`
	Location  string     `json:"location"`
	HadImage  bool       `json:"hadImage"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
	Outcome   string     `json:"outcome,omitempty"`
}

// Store is a SQLite-backed session log.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path and applies the
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordStart inserts a new session row at session start.
func (s *Store) RecordStart(ctx context.Context, id uuid.UUID, ev *launch.Event, hadImage bool, startedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, event_name, event_net, provider, location, had_image, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id.String(), ev.Name, ev.Net.UTC(), ev.Provider, ev.Location, hadImage, startedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording session start: %w", err)
	}
	return nil
}

// RecordEnd marks a session finished with the given outcome.
func (s *Store) RecordEnd(ctx context.Context, id uuid.UUID, outcome string, endedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET ended_at = ?, outcome = ? WHERE id = ?`,
		endedAt.UTC(), outcome, id.String(),
	)
	if err != nil {
		return fmt.Errorf("recording session end: %w", err)
	}
	return nil
}

// Recent returns up to limit sessions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, event_name, event_net, provider, location, had_image, started_at, ended_at, outcome
		FROM sessions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			rawID   string
			endedAt sql.NullTime
			outcome sql.NullString
		)
		if err := rows.Scan(&rawID, &e.EventName, &e.EventNet, &e.Provider, &e.Location, &e.HadImage, &e.StartedAt, &endedAt, &outcome); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		if id, err := uuid.Parse(rawID); err == nil {
			e.ID = id
		}
		if endedAt.Valid {
			t := endedAt.Time
			e.EndedAt = &t
		}
		e.Outcome = outcome.String
		out = append(out, e)
	}
	return out, rows.Err()
}
