// Package store caches fetched lineup feeds in a local SQLite database so
// repeated runs do not refetch the remote lineup.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/avivkr/lineup-tools/internal/lineup"
	"github.com/avivkr/lineup-tools/internal/migration"
	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(migration.Create); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// ReplaceEvents swaps the cached events for a weekend with a fresh feed.
// Running it twice with the same feed leaves the cache identical.
func (s *Store) ReplaceEvents(weekend string, events []lineup.Event) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM Event WHERE weekend = ?", weekend); err != nil {
		return fmt.Errorf("clearing old events for %q: %w", weekend, err)
	}

	stmt, err := tx.Prepare("INSERT INTO Event (weekend, artist, stage, start_time, end_time, link) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err := stmt.Exec(weekend, ev.Artist, ev.Stage, ev.Start, ev.End, ev.Link); err != nil {
			return fmt.Errorf("inserting event for %q: %w", ev.Artist, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing events for %q: %w", weekend, err)
	}
	return nil
}

// Events returns the cached events for one weekend in insertion order.
func (s *Store) Events(weekend string) ([]lineup.Event, error) {
	return s.queryEvents("SELECT weekend, artist, stage, start_time, end_time, link FROM Event WHERE weekend = ? ORDER BY id", weekend)
}

// AllEvents returns every cached event, weekend 1 feed first.
func (s *Store) AllEvents() ([]lineup.Event, error) {
	return s.queryEvents("SELECT weekend, artist, stage, start_time, end_time, link FROM Event ORDER BY weekend, id")
}

func (s *Store) queryEvents(query string, args ...interface{}) ([]lineup.Event, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var events []lineup.Event
	for rows.Next() {
		var ev lineup.Event
		if err := rows.Scan(&ev.Weekend, &ev.Artist, &ev.Stage, &ev.Start, &ev.End, &ev.Link); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// LastUpdated returns when a weekend's feed was last cached, zero if never.
func (s *Store) LastUpdated(weekend string) (time.Time, error) {
	var unix int64
	err := s.db.QueryRow("SELECT last_updated FROM Meta WHERE weekend = ?", weekend).Scan(&unix)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("reading last_updated for %q: %w", weekend, err)
	}
	return time.Unix(unix, 0), nil
}

func (s *Store) SetLastUpdated(weekend string, t time.Time) error {
	_, err := s.db.Exec(
		"INSERT INTO Meta (weekend, last_updated) VALUES (?, ?) ON CONFLICT(weekend) DO UPDATE SET last_updated = excluded.last_updated",
		weekend, t.Unix())
	if err != nil {
		return fmt.Errorf("recording last_updated for %q: %w", weekend, err)
	}
	return nil
}
