package store

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/garasiku/garasiku-server/internal/models"
	srvErrors "github.com/garasiku/garasiku-server/pkg/errors"
)

// ModelStore handles the models reference collection. Models are always
// listed with their brand and body type expanded.
type ModelStore struct {
	db Querier
}

func NewModelStore(db Querier) *ModelStore {
	return &ModelStore{db: db}
}

func modelSelect() sq.SelectBuilder {
	return sq.Select(
		"models.id",
		"models.name",
		"models.brand_id",
		"models.body_type_id",
		"models.seats",
		"models.cc",
		"models.bags",
		"brands.name",
		"body_types.name",
	).From("models").
		Join("brands ON models.brand_id = brands.id").
		Join("body_types ON models.body_type_id = body_types.id")
}

func scanModel(row sq.RowScanner) (*models.Model, error) {
	var m models.Model
	var brandName, bodyTypeName string
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.BrandID,
		&m.BodyTypeID,
		&m.Seats,
		&m.CC,
		&m.Bags,
		&brandName,
		&bodyTypeName,
	)
	if err != nil {
		return nil, err
	}
	m.Brand = &models.Brand{ID: m.BrandID, Name: brandName}
	m.BodyType = &models.BodyType{ID: m.BodyTypeID, Name: bodyTypeName}
	return &m, nil
}

func (s *ModelStore) Get(ctx context.Context, id string) (*models.Model, error) {
	query, args, err := modelSelect().Where(sq.Eq{"models.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	m, err := scanModel(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewModelNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// GetByName looks a model up by exact name. This is the legacy resolution
// path; duplicate names across brands resolve to an arbitrary match.
func (s *ModelStore) GetByName(ctx context.Context, name string) (*models.Model, error) {
	query, args, err := modelSelect().Where(sq.Eq{"models.name": name}).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}
	m, err := scanModel(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewModelNotFoundError(name)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// List returns models sorted by name, optionally restricted to one brand.
// The brand restriction backs the dependent dropdown in the car form.
func (s *ModelStore) List(ctx context.Context, brandID string) ([]models.Model, error) {
	builder := modelSelect().OrderBy("models.name")
	if brandID != "" {
		builder = builder.Where(sq.Eq{"models.brand_id": brandID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Model
	for rows.Next() {
		m, err := scanModel(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *m)
	}
	return list, rows.Err()
}

func (s *ModelStore) Create(ctx context.Context, m *models.Model) (*models.Model, error) {
	created := *m
	created.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx, queryInsertModel,
		created.ID,
		created.Name,
		created.BrandID,
		created.BodyTypeID,
		created.Seats,
		created.CC,
		created.Bags,
	)
	if err != nil {
		return nil, err
	}
	return &created, nil
}
