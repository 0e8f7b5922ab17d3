package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/evanhooper/trolley/internal/model"
)

type ItemStore struct {
	db *sql.DB
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

func scanItem(scanner interface{ Scan(...any) error }) (*model.Item, error) {
	var item model.Item
	err := scanner.Scan(
		&item.ID, &item.ListID, &item.CategoryID, &item.UnitID,
		&item.Name, &item.Quantity, &item.Brand, &item.Comments,
		&item.Bought, &item.AddedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

const itemCols = `id, list_id, category_id, unit_id, name, quantity, brand, comments, bought, added_at`

func (s *ItemStore) Create(ctx context.Context, listID, categoryID, unitID int64, name string, quantity float64, brand, comments string) (*model.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO items (list_id, category_id, unit_id, name, quantity, brand, comments)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING `+itemCols,
		listID, categoryID, unitID, name, quantity, brand, comments,
	)
	item, err := scanItem(row)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return item, nil
}

func (s *ItemStore) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemCols+` FROM items WHERE id = $1`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// ListByListAndCategory returns a list's items within one category, sorted
// by name ascending.
func (s *ItemStore) ListByListAndCategory(ctx context.Context, listID, categoryID int64) ([]model.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemCols+` FROM items WHERE list_id = $1 AND category_id = $2 ORDER BY name ASC, id ASC`,
		listID, categoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// ListByList returns all of a list's items in insertion order. The
// statistics aggregator depends on this ordering for its grouping.
func (s *ItemStore) ListByList(ctx context.Context, listID int64) ([]model.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemCols+` FROM items WHERE list_id = $1 ORDER BY id ASC`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("list items by list: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

func collectItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (s *ItemStore) Update(ctx context.Context, id, categoryID, unitID int64, name string, quantity float64, brand, comments string) (*model.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE items SET category_id = $1, unit_id = $2, name = $3, quantity = $4, brand = $5, comments = $6
		 WHERE id = $7 RETURNING `+itemCols,
		categoryID, unitID, name, quantity, brand, comments, id,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return item, nil
}

func (s *ItemStore) SetBought(ctx context.Context, id int64, bought bool) (*model.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE items SET bought = $1 WHERE id = $2 RETURNING `+itemCols,
		bought, id,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("set bought: %w", err)
	}
	return item, nil
}

func (s *ItemStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
