// Package archive persists run metadata and survivor genomes to SQLite so
// runs can be compared and replayed. Genomes are stored in their canonical
// hex text form.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/gianluca-venturini/vita/genome"
)

// ErrRunNotFound is returned when a run ID has no row in the archive.
var ErrRunNotFound = errors.New("archive: run not found")

// Store is a SQLite-backed genome archive.
type Store struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

// NewStore creates a store for the given SQLite path. Init must be called
// before any other operation.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// NewRunID mints a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Init opens the database and creates the schema.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("archive: sqlite path is required")
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

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id         TEXT PRIMARY KEY,
			seed       INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS survivors (
			run_id     TEXT NOT NULL,
			generation INTEGER NOT NULL,
			idx        INTEGER NOT NULL,
			genome     TEXT NOT NULL,
			PRIMARY KEY (run_id, generation, idx),
			FOREIGN KEY (run_id) REFERENCES runs(id)
		);
	`)
	return err
}

// SaveRun registers a run with its seed. Saving the same run twice updates
// the seed.
func (s *Store) SaveRun(ctx context.Context, runID string, seed int64) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, seed, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET seed = excluded.seed
	`, runID, seed, time.Now().UTC().Format(time.RFC3339))
	return err
}

// GetRunSeed returns the seed stored for a run.
func (s *Store) GetRunSeed(ctx context.Context, runID string) (int64, error) {
	db, err := s.getDB()
	if err != nil {
		return 0, err
	}

	var seed int64
	err = db.QueryRowContext(ctx, `SELECT seed FROM runs WHERE id = ?`, runID).Scan(&seed)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return 0, err
	}
	return seed, nil
}

// SaveSurvivors stores a generation's survivor genomes in order. Rows are
// upserted so re-running a generation overwrites its previous record.
func (s *Store) SaveSurvivors(ctx context.Context, runID string, generation int, survivors []genome.Genome) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO survivors (run_id, generation, idx, genome)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(run_id, generation, idx) DO UPDATE SET genome = excluded.genome
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, g := range survivors {
		if _, err := stmt.ExecContext(ctx, runID, generation, i, g.Text()); err != nil {
			return fmt.Errorf("archive: saving survivor %d of generation %d: %w", i, generation, err)
		}
	}

	return tx.Commit()
}

// LoadSurvivors returns a generation's survivor genomes in stored order.
func (s *Store) LoadSurvivors(ctx context.Context, runID string, generation int) ([]genome.Genome, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT genome FROM survivors
		WHERE run_id = ? AND generation = ?
		ORDER BY idx
	`, runID, generation)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var survivors []genome.Genome
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		g, err := genome.ParseGenome(text)
		if err != nil {
			return nil, fmt.Errorf("archive: decoding stored genome: %w", err)
		}
		survivors = append(survivors, g)
	}
	return survivors, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("archive: store not initialized")
	}
	return s.db, nil
}
