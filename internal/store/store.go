// Package store keeps named compositions in a SQLite library.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned for names that are not in the library.
var ErrNotFound = errors.New("composition not found")

const schema = `
CREATE TABLE IF NOT EXISTS compositions (
	name    TEXT PRIMARY KEY,
	text    TEXT NOT NULL,
	journal BLOB NOT NULL,
	created INTEGER NOT NULL,
	updated INTEGER NOT NULL
)`

// Composition is a stored sentence and the journal that rebuilds it.
type Composition struct {
	Name    string
	Text    string
	Journal []byte
	Created time.Time
	Updated time.Time
}

// Store is an open library.
type Store struct {
	db     *sql.DB
	logger *log.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Open opens or creates the library at path.
func Open(path string, opts ...Option) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating library directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	s := &Store{db: db, logger: log.New(io.Discard), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	s.logger.Debug("opened library", "path", path)
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts c or replaces the composition of the same name, keeping its
// creation time.
func (s *Store) Save(ctx context.Context, c Composition) error {
	if c.Name == "" {
		return errors.New("saving composition: empty name")
	}
	journal := c.Journal
	if journal == nil {
		journal = []byte{}
	}
	now := s.now().Unix()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO compositions (name, text, journal, created, updated)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			text = excluded.text,
			journal = excluded.journal,
			updated = excluded.updated`,
		c.Name, c.Text, journal, now, now)
	if err != nil {
		return fmt.Errorf("saving %q: %w", c.Name, err)
	}
	s.logger.Debug("saved composition", "name", c.Name)
	return nil
}

// Get returns the named composition.
func (s *Store) Get(ctx context.Context, name string) (Composition, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT name, text, journal, created, updated FROM compositions WHERE name = ?`, name)
	c, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Composition{}, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if err != nil {
		return Composition{}, fmt.Errorf("loading %q: %w", name, err)
	}
	return c, nil
}

// List returns every composition without journals, most recently updated
// first.
func (s *Store) List(ctx context.Context) ([]Composition, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, text, x'', created, updated FROM compositions ORDER BY updated DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("listing compositions: %w", err)
	}
	defer rows.Close()

	var out []Composition
	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("reading composition: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing compositions: %w", err)
	}
	return out, nil
}

// Delete removes the named composition.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM compositions WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	s.logger.Debug("deleted composition", "name", name)
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(r scanner) (Composition, error) {
	var (
		c                Composition
		created, updated int64
	)
	if err := r.Scan(&c.Name, &c.Text, &c.Journal, &created, &updated); err != nil {
		return Composition{}, err
	}
	c.Created = time.Unix(created, 0)
	c.Updated = time.Unix(updated, 0)
	return c, nil
}
