package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/evanhooper/trolley/internal/model"
)

type UnitStore struct {
	db *sql.DB
}

func NewUnitStore(db *sql.DB) *UnitStore {
	return &UnitStore{db: db}
}

func scanUnit(scanner interface{ Scan(...any) error }) (*model.Unit, error) {
	var u model.Unit
	err := scanner.Scan(&u.ID, &u.Name)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UnitStore) List(ctx context.Context) ([]model.Unit, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM units ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	var units []model.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		units = append(units, *u)
	}
	return units, rows.Err()
}

func (s *UnitStore) GetByID(ctx context.Context, id int64) (*model.Unit, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name FROM units WHERE id = $1`, id)
	u, err := scanUnit(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return u, nil
}
