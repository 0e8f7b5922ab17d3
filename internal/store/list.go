package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/evanhooper/trolley/internal/model"
)

type ListStore struct {
	db *sql.DB
}

func NewListStore(db *sql.DB) *ListStore {
	return &ListStore{db: db}
}

func scanList(scanner interface{ Scan(...any) error }) (*model.List, error) {
	var l model.List
	err := scanner.Scan(&l.ID, &l.Name, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

const listCols = `id, name, created_at`

func (s *ListStore) Create(ctx context.Context, name string) (*model.List, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO lists (name) VALUES ($1) RETURNING `+listCols,
		name,
	)
	l, err := scanList(row)
	if err != nil {
		return nil, fmt.Errorf("insert list: %w", err)
	}
	return l, nil
}

func (s *ListStore) List(ctx context.Context) ([]model.List, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+listCols+` FROM lists ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	defer rows.Close()

	var lists []model.List
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		lists = append(lists, *l)
	}
	return lists, rows.Err()
}

// ListInRange returns lists created inside the half-open interval
// [start, end), ascending by creation time.
func (s *ListStore) ListInRange(ctx context.Context, start, end time.Time) ([]model.List, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+listCols+` FROM lists WHERE created_at >= $1 AND created_at < $2 ORDER BY created_at ASC, id ASC`,
		start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("list lists in range: %w", err)
	}
	defer rows.Close()

	var lists []model.List
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		lists = append(lists, *l)
	}
	return lists, rows.Err()
}

func (s *ListStore) GetByID(ctx context.Context, id int64) (*model.List, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+listCols+` FROM lists WHERE id = $1`, id)
	l, err := scanList(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}
	return l, nil
}

func (s *ListStore) Rename(ctx context.Context, id int64, name string) (*model.List, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE lists SET name = $1 WHERE id = $2 RETURNING `+listCols,
		name, id,
	)
	l, err := scanList(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("rename list: %w", err)
	}
	return l, nil
}

// Delete removes the list's items first and then the list itself, in one
// transaction. It returns the number of items removed.
func (s *ListStore) Delete(ctx context.Context, id int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin delete list: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM items WHERE list_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete list items: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM lists WHERE id = $1`, id); err != nil {
		return 0, fmt.Errorf("delete list: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete list: %w", err)
	}
	return removed, nil
}
