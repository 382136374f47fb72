package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/garasiku/garasiku-server/internal/models"
	srvErrors "github.com/garasiku/garasiku-server/pkg/errors"
)

// BrandStore handles the brands reference collection. Name lookup is exact
// and case-sensitive, matching the legacy dashboard's resolution path.
type BrandStore struct {
	db Querier
}

func NewBrandStore(db Querier) *BrandStore {
	return &BrandStore{db: db}
}

func (s *BrandStore) Get(ctx context.Context, id string) (*models.Brand, error) {
	var b models.Brand
	err := s.db.QueryRowContext(ctx, queryGetBrand, id).Scan(&b.ID, &b.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewBrandNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BrandStore) GetByName(ctx context.Context, name string) (*models.Brand, error) {
	var b models.Brand
	err := s.db.QueryRowContext(ctx, queryGetBrandByName, name).Scan(&b.ID, &b.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewBrandNotFoundError(name)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BrandStore) List(ctx context.Context) ([]models.Brand, error) {
	rows, err := s.db.QueryContext(ctx, queryListBrands)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []models.Brand
	for rows.Next() {
		var b models.Brand
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func (s *BrandStore) Create(ctx context.Context, name string) (*models.Brand, error) {
	b := models.Brand{ID: uuid.NewString(), Name: name}
	if _, err := s.db.ExecContext(ctx, queryInsertBrand, b.ID, b.Name); err != nil {
		return nil, err
	}
	return &b, nil
}

// BodyTypeStore handles the body_types reference collection.
type BodyTypeStore struct {
	db Querier
}

func NewBodyTypeStore(db Querier) *BodyTypeStore {
	return &BodyTypeStore{db: db}
}

func (s *BodyTypeStore) Get(ctx context.Context, id string) (*models.BodyType, error) {
	var bt models.BodyType
	err := s.db.QueryRowContext(ctx, queryGetBodyType, id).Scan(&bt.ID, &bt.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewBodyTypeNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}
	return &bt, nil
}

func (s *BodyTypeStore) GetByName(ctx context.Context, name string) (*models.BodyType, error) {
	var bt models.BodyType
	err := s.db.QueryRowContext(ctx, queryGetBodyTypeByName, name).Scan(&bt.ID, &bt.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewBodyTypeNotFoundError(name)
	}
	if err != nil {
		return nil, err
	}
	return &bt, nil
}

func (s *BodyTypeStore) List(ctx context.Context) ([]models.BodyType, error) {
	rows, err := s.db.QueryContext(ctx, queryListBodyTypes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bodyTypes []models.BodyType
	for rows.Next() {
		var bt models.BodyType
		if err := rows.Scan(&bt.ID, &bt.Name); err != nil {
			return nil, err
		}
		bodyTypes = append(bodyTypes, bt)
	}
	return bodyTypes, rows.Err()
}

func (s *BodyTypeStore) Create(ctx context.Context, name string) (*models.BodyType, error) {
	bt := models.BodyType{ID: uuid.NewString(), Name: name}
	if _, err := s.db.ExecContext(ctx, queryInsertBodyType, bt.ID, bt.Name); err != nil {
		return nil, err
	}
	return &bt, nil
}
