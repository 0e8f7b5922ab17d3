package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/evanhooper/trolley/internal/model"
)

type CategoryStore struct {
	db *sql.DB
}

func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

func scanCategory(scanner interface{ Scan(...any) error }) (*model.Category, error) {
	var c model.Category
	err := scanner.Scan(&c.ID, &c.Name, &c.IconName)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const categoryCols = `id, name, icon_name`

func (s *CategoryStore) List(ctx context.Context) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+categoryCols+` FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (s *CategoryStore) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryCols+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (s *CategoryStore) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE name = $1)`,
		name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check category name: %w", err)
	}
	return exists, nil
}

func (s *CategoryStore) Create(ctx context.Context, name, iconName string) (*model.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO categories (name, icon_name) VALUES ($1, $2) RETURNING `+categoryCols,
		name, iconName,
	)
	c, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return c, nil
}

func (s *CategoryStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
