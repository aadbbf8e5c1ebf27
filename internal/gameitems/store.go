package gameitems

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS game_items (
	position INTEGER PRIMARY KEY AUTOINCREMENT,
	body     TEXT NOT NULL
);
`

// Lister is what the API handler needs from a catalog backend.
type Lister interface {
	List(ctx context.Context) ([]GameItem, error)
}

// Store keeps the catalog in SQLite, one row per item in catalog order.
type Store struct {
	db *sql.DB
}

var _ Lister = (*Store)(nil)

func OpenStore(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("game item store path cannot be empty")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	// SQLite serializes writers; a single connection also keeps
	// ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	store := NewStore(db)
	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate game items: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]GameItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT body FROM game_items ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list game items: %w", err)
	}
	defer rows.Close()

	items := make([]GameItem, 0)
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan game item: %w", err)
		}
		item, err := NewGameItem([]byte(body))
		if err != nil {
			return nil, fmt.Errorf("decode stored game item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate game items: %w", err)
	}

	return items, nil
}

// Replace swaps the whole catalog for items in one transaction.
func (s *Store) Replace(ctx context.Context, items []GameItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM game_items`); err != nil {
		return fmt.Errorf("clear game items: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO game_items (body) VALUES (?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for idx, item := range items {
		body, err := item.MarshalJSON()
		if err != nil {
			return fmt.Errorf("encode game item %d: %w", idx, err)
		}
		if _, err := stmt.ExecContext(ctx, string(body)); err != nil {
			return fmt.Errorf("insert game item %d: %w", idx, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM game_items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count game items: %w", err)
	}
	return count, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
