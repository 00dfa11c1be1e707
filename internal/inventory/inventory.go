// Package inventory persists the set of managed hosts in a SQLite
// database. Commands that fan out over a session pull their default
// target list from here when no --host flags are given.
package inventory

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/rig-tools/cli/internal/domain"
	"github.com/rig-tools/cli/internal/inventory/migrations"
)

// Store wraps a SQLite database holding the target inventory.
// It implements domain.HostInventory.
type Store struct {
	db   *sql.DB
	path string
}

// New opens the inventory database at path and runs pending migrations.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open inventory: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping inventory: %w", err)
	}

	setDBPermissions(path)

	if err = migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// NewWithDB wraps an existing connection. Useful for tests with
// pre-configured in-memory databases.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db, path: ""}
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// setDBPermissions restricts the database and its WAL/SHM files.
func setDBPermissions(path string) {
	if path == ":memory:" || path == "" {
		return
	}
	_ = os.Chmod(path, 0600)
	_ = os.Chmod(path+"-wal", 0600)
	_ = os.Chmod(path+"-shm", 0600)
}

// Add stores a new target. The hostname must not already be present.
func (s *Store) Add(hostname, note string) (domain.Target, error) {
	if hostname == "" {
		return domain.Target{}, fmt.Errorf("hostname must not be empty")
	}

	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO targets (id, hostname, note) VALUES (?, ?, ?)`,
		id, hostname, note,
	)
	if err != nil {
		return domain.Target{}, fmt.Errorf("add target %q: %w", hostname, err)
	}

	var target domain.Target
	err = s.db.QueryRow(
		`SELECT id, hostname, note, created_at FROM targets WHERE id = ?`, id,
	).Scan(&target.ID, &target.Hostname, &target.Note, &target.Created)
	if err != nil {
		return domain.Target{}, fmt.Errorf("read back target %q: %w", hostname, err)
	}

	return target, nil
}

// Remove deletes a target by hostname and reports how many rows went.
func (s *Store) Remove(hostname string) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM targets WHERE hostname = ?`, hostname)
	if err != nil {
		return 0, fmt.Errorf("remove target %q: %w", hostname, err)
	}
	return result.RowsAffected()
}

// List returns all targets ordered by creation time, then hostname so
// same-second inserts come back in a stable order.
func (s *Store) List() ([]domain.Target, error) {
	rows, err := s.db.Query(
		`SELECT id, hostname, note, created_at
		 FROM targets
		 ORDER BY created_at, hostname`,
	)
	if err != nil {
		return nil, fmt.Errorf("list targets: %w", err)
	}
	defer rows.Close()

	var targets []domain.Target
	for rows.Next() {
		var target domain.Target
		if err := rows.Scan(&target.ID, &target.Hostname, &target.Note, &target.Created); err != nil {
			return nil, fmt.Errorf("scan target: %w", err)
		}
		targets = append(targets, target)
	}

	return targets, rows.Err()
}

// Hostnames returns just the hostnames, in List order.
func (s *Store) Hostnames() ([]string, error) {
	targets, err := s.List()
	if err != nil {
		return nil, err
	}

	hostnames := make([]string, 0, len(targets))
	for _, target := range targets {
		hostnames = append(hostnames, target.Hostname)
	}
	return hostnames, nil
}

var _ domain.HostInventory = (*Store)(nil)
