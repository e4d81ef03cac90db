// Package build persists the parts a user picked from the search overlay.
package build

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"partsearch/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS picks (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	category  TEXT NOT NULL,
	object_id TEXT NOT NULL,
	name      TEXT NOT NULL,
	price     TEXT NOT NULL DEFAULT '',
	payload   TEXT NOT NULL,
	picked_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS picks_category ON picks(category);
`

// Pick is one confirmed selection
type Pick struct {
	ID       int64
	Category string
	ObjectID string
	Name     string
	Price    string
	Item     domain.Item
	PickedAt time.Time
}

// Store is a SQLite backed list of picks
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("build store path required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create build directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open build store: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Add records a selection
func (s *Store) Add(ctx context.Context, sel domain.Selection) (Pick, error) {
	payload, err := json.Marshal(sel.Item)
	if err != nil {
		return Pick{}, fmt.Errorf("failed to encode item: %w", err)
	}
	price, _ := sel.Item.Price()

	p := Pick{
		Category: sel.Category,
		ObjectID: sel.Item.ID(),
		Name:     sel.Item.Name(),
		Price:    price,
		Item:     sel.Item,
		PickedAt: s.now().UTC(),
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO picks(category,object_id,name,price,payload,picked_at) VALUES(?,?,?,?,?,?)`,
		p.Category, p.ObjectID, p.Name, p.Price, string(payload), p.PickedAt.Format(time.RFC3339Nano))
	if err != nil {
		return Pick{}, fmt.Errorf("failed to insert pick: %w", err)
	}
	if p.ID, err = res.LastInsertId(); err != nil {
		return Pick{}, fmt.Errorf("failed to read pick id: %w", err)
	}
	return p, nil
}

// List returns picks, most recent first. limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Pick, error) {
	q := `SELECT id,category,object_id,name,price,payload,picked_at FROM picks ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list picks: %w", err)
	}
	defer rows.Close()

	var picks []Pick
	for rows.Next() {
		var (
			p       Pick
			payload string
			at      string
		)
		if err := rows.Scan(&p.ID, &p.Category, &p.ObjectID, &p.Name, &p.Price, &payload, &at); err != nil {
			return nil, fmt.Errorf("failed to scan pick: %w", err)
		}
		dec := json.NewDecoder(strings.NewReader(payload))
		dec.UseNumber()
		if err := dec.Decode(&p.Item); err != nil {
			return nil, fmt.Errorf("failed to decode pick %d: %w", p.ID, err)
		}
		if p.PickedAt, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("failed to parse pick time %d: %w", p.ID, err)
		}
		picks = append(picks, p)
	}
	return picks, rows.Err()
}

// Count returns the number of picks
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM picks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count picks: %w", err)
	}
	return n, nil
}

// Clear removes every pick and returns how many were removed
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM picks`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear picks: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
