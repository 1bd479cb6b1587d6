// Package store provides SQLite persistence for timers.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/breaktimer/timerd/internal/timer"
)

// Store implements timer.Store on top of a single SQLite database.
// Use ":memory:" as the path for an in-memory database.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ timer.Store = (*Store)(nil)

// New opens (or creates) the database at the given path and migrates the
// schema.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL keeps readers from blocking behind the write lock.
	_, err = db.Exec(`
		PRAGMA foreign_keys = ON;
		PRAGMA journal_mode = WAL;
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	s := &Store{db: db}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS timers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		remaining_ms INTEGER NOT NULL,
		is_running INTEGER NOT NULL DEFAULT 0,
		last_started_at TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_timers_created_at ON timers(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Timestamps are stored as RFC3339 nanosecond text in UTC so elapsed-time
// arithmetic stays correct across restarts and time zones.
const timeLayout = time.RFC3339Nano

func encodeTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func decodeTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

const timerColumns = "id, name, duration_ms, remaining_ms, is_running, last_started_at, created_at, updated_at"

func scanTimer(row interface{ Scan(...any) error }) (*timer.Timer, error) {
	var (
		t             timer.Timer
		lastStartedAt sql.NullString
		createdAt     string
		updatedAt     string
	)

	err := row.Scan(
		&t.ID, &t.Name, &t.DurationMS, &t.RemainingMS, &t.IsRunning,
		&lastStartedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastStartedAt.Valid {
		anchor, err := decodeTime(lastStartedAt.String)
		if err != nil {
			return nil, fmt.Errorf("decode last_started_at: %w", err)
		}
		t.LastStartedAt = &anchor
	}
	if t.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, fmt.Errorf("decode created_at: %w", err)
	}
	if t.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return nil, fmt.Errorf("decode updated_at: %w", err)
	}

	return &t, nil
}

// GetAll returns all timers ordered by creation time ascending.
func (s *Store) GetAll() ([]*timer.Timer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT ` + timerColumns + `
		FROM timers
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var timers []*timer.Timer
	for rows.Next() {
		t, err := scanTimer(rows)
		if err != nil {
			return nil, err
		}
		timers = append(timers, t)
	}

	return timers, rows.Err()
}

// GetByIDs returns the timers for exactly the requested ids, in request
// order. Any id that does not resolve fails the whole lookup.
func (s *Store) GetByIDs(ids []string) ([]*timer.Timer, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.Query(`
		SELECT `+timerColumns+`
		FROM timers
		WHERE id IN (`+placeholders+`)
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]*timer.Timer, len(ids))
	for rows.Next() {
		t, err := scanTimer(rows)
		if err != nil {
			return nil, err
		}
		byID[t.ID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(byID) != len(ids) {
		var missing []string
		for _, id := range ids {
			if _, ok := byID[id]; !ok {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%w: %s", timer.ErrNotFound, strings.Join(missing, ", "))
		}
		// Same id requested more than once.
		return nil, fmt.Errorf("%w: duplicate ids in request", timer.ErrNotFound)
	}

	timers := make([]*timer.Timer, len(ids))
	for i, id := range ids {
		timers[i] = byID[id]
	}
	return timers, nil
}

// Insert persists a new timer.
func (s *Store) Insert(t *timer.Timer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO timers (`+timerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Name, t.DurationMS, t.RemainingMS, t.IsRunning,
		encodeNullableTime(t.LastStartedAt), encodeTime(t.CreatedAt), encodeTime(t.UpdatedAt))

	return err
}

// UpdateBatch writes the given timers inside a single transaction.
func (s *Store) UpdateBatch(timers []*timer.Timer) error {
	if len(timers) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		UPDATE timers
		SET remaining_ms = ?, is_running = ?, last_started_at = ?, updated_at = ?
		WHERE id = ?
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range timers {
		_, err := stmt.Exec(t.RemainingMS, t.IsRunning,
			encodeNullableTime(t.LastStartedAt), encodeTime(t.UpdatedAt), t.ID)
		if err != nil {
			return fmt.Errorf("update timer %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// DeleteBatch removes the given timers inside a single transaction.
func (s *Store) DeleteBatch(timers []*timer.Timer) error {
	if len(timers) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("DELETE FROM timers WHERE id = ?")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range timers {
		if _, err := stmt.Exec(t.ID); err != nil {
			return fmt.Errorf("delete timer %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// DeleteOne removes a single timer, failing with timer.ErrNotFound if the id
// does not exist.
func (s *Store) DeleteOne(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM timers WHERE id = ?", id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", timer.ErrNotFound, id)
	}
	return nil
}

func encodeNullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return encodeTime(*t)
}
