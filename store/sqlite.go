//go:build sqlite

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore appends every saved record to a table, so a database shared
// across runs keeps the history of best genomes. Load returns the latest.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) Save(ctx context.Context, rec Record) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO best_genomes (repulsion_radius, repulsion_weight, player_speed, fitness, saved_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.RepulsionRadius, rec.RepulsionWeight, rec.PlayerSpeed, rec.Fitness, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("saving genome: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (Record, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Record{}, false, err
	}

	var rec Record
	err = db.QueryRowContext(ctx, `
		SELECT repulsion_radius, repulsion_weight, player_speed, fitness
		FROM best_genomes ORDER BY id DESC LIMIT 1
	`).Scan(&rec.RepulsionRadius, &rec.RepulsionWeight, &rec.PlayerSpeed, &rec.Fitness)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("loading genome: %w", err)
	}
	return rec, true, nil
}

// History returns every saved record, oldest first.
func (s *SQLiteStore) History(ctx context.Context) ([]Record, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT repulsion_radius, repulsion_weight, player_speed, fitness
		FROM best_genomes ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.RepulsionRadius, &rec.RepulsionWeight, &rec.PlayerSpeed, &rec.Fitness); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("sqlite store not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS best_genomes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			repulsion_radius REAL NOT NULL,
			repulsion_weight REAL NOT NULL,
			player_speed REAL NOT NULL,
			fitness REAL NOT NULL,
			saved_at TEXT NOT NULL
		);
	`)
	return err
}
