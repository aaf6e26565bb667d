package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"fabline/internal/config"
	"fabline/internal/reconcile"
)

const schema = `
CREATE TABLE IF NOT EXISTS employees (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    role       TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

// Store keeps a local snapshot of employee records backed by SQLite. The
// system of record stays external; this snapshot exists so edits can be
// diffed field-by-field before they are pushed out.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the snapshot database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "directory.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Get fetches one employee snapshot. A missing record returns (zero, false).
func (s *Store) Get(ctx context.Context, id string) (reconcile.Employee, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, role FROM employees WHERE id = ?`, id)
	var emp reconcile.Employee
	err := row.Scan(&emp.ID, &emp.Name, &emp.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return reconcile.Employee{}, false, nil
	}
	if err != nil {
		return reconcile.Employee{}, false, fmt.Errorf("get employee: %w", err)
	}
	return emp, true, nil
}

// RecordEdit stores the incoming snapshot and returns the change detected
// against the previous one. The first sighting of an employee stores the
// snapshot without producing a change: there is nothing to reconcile yet.
func (s *Store) RecordEdit(ctx context.Context, emp reconcile.Employee) (reconcile.ChangeRecord, bool, error) {
	emp.Name = CanonicalName(emp.Name)

	before, existed, err := s.Get(ctx, emp.ID)
	if err != nil {
		return reconcile.ChangeRecord{}, false, err
	}

	if err := s.upsert(ctx, emp); err != nil {
		return reconcile.ChangeRecord{}, false, err
	}

	if !existed {
		return reconcile.ChangeRecord{}, false, nil
	}
	change, ok := reconcile.Detect(before, emp)
	return change, ok, nil
}

// List returns every stored snapshot ordered by employee ID.
func (s *Store) List(ctx context.Context) ([]reconcile.Employee, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, role FROM employees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var employees []reconcile.Employee
	for rows.Next() {
		var emp reconcile.Employee
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Role); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *Store) upsert(ctx context.Context, emp reconcile.Employee) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO employees (id, name, role, updated_at) VALUES (?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET name = excluded.name, role = excluded.role, updated_at = excluded.updated_at`,
		emp.ID, emp.Name, emp.Role, timestamp,
	)
	if err != nil {
		return fmt.Errorf("upsert employee: %w", err)
	}
	return nil
}
