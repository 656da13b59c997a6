package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rl1809/inventory-index/internal/core/domain"
)

const createInventoryTable = `
CREATE TABLE IF NOT EXISTS inventory (
	item_id VARCHAR(8) NOT NULL PRIMARY KEY,
	prefix  CHAR(2)    NOT NULL,
	name    VARCHAR(255) NOT NULL
)`

// SQLAdapter persists inventory in a relational table. Queries use only
// syntax shared by MySQL and SQLite.
type SQLAdapter struct {
	db *sql.DB
}

func NewSQLAdapter(db *sql.DB) *SQLAdapter {
	return &SQLAdapter{db: db}
}

func (s *SQLAdapter) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createInventoryTable); err != nil {
		return fmt.Errorf("create inventory table: %w", err)
	}
	return nil
}

func (s *SQLAdapter) Save(ctx context.Context, inv domain.Inventory) error {
	if err := checkIdentifier(inv); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		REPLACE INTO inventory (item_id, prefix, name)
		VALUES (?, ?, ?)`,
		inv.ID.String(), inv.ID.Prefix(), inv.Name,
	)
	if err != nil {
		return fmt.Errorf("save inventory: %w", err)
	}
	return nil
}

func (s *SQLAdapter) FindByID(ctx context.Context, id string) (*domain.Inventory, error) {
	parsed, ok := domain.LookupIdentifier(id)
	if !ok {
		return nil, nil
	}

	var name string
	err := s.db.QueryRowContext(ctx, `
		SELECT name FROM inventory WHERE item_id = ?`, id,
	).Scan(&name)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}

	return &domain.Inventory{ID: parsed, Name: name}, nil
}

// CountPrefix returns the number of rows sharing an identifier prefix
func (s *SQLAdapter) CountPrefix(ctx context.Context, prefix string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM inventory WHERE prefix = ?`, prefix,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count inventory: %w", err)
	}
	return count, nil
}
