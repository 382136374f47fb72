package store

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/garasiku/garasiku-server/internal/models"
	srvErrors "github.com/garasiku/garasiku-server/pkg/errors"
)

// CarStore handles the car inventory. List queries join through the model to
// its brand and body type so filters can traverse the references, and
// aggregate the ordered image filenames.
type CarStore struct {
	db Querier
}

func NewCarStore(db Querier) *CarStore {
	return &CarStore{db: db}
}

var carColumns = []string{
	"cars.id",
	"cars.model_id",
	"cars.condition",
	"cars.transmission",
	"cars.mileage",
	"cars.buy_price",
	"cars.sell_price",
	"cars.year",
	"cars.description",
	"cars.sold",
	"cars.created_at",
	"cars.updated_at",
	"models.name",
	"models.brand_id",
	"models.body_type_id",
	"models.seats",
	"models.cc",
	"models.bags",
	"brands.name",
	"body_types.name",
}

func carSelect() sq.SelectBuilder {
	cols := append([]string{}, carColumns...)
	cols = append(cols, "LIST(car_images.filename ORDER BY car_images.position) AS images")
	return sq.Select(cols...).
		From("cars").
		Join("models ON cars.model_id = models.id").
		Join("brands ON models.brand_id = brands.id").
		Join("body_types ON models.body_type_id = body_types.id").
		LeftJoin("car_images ON car_images.car_id = cars.id").
		GroupBy(carColumns...)
}

func (s *CarStore) List(ctx context.Context, opts ...ListOption) ([]models.Car, error) {
	builder := carSelect()
	for _, opt := range opts {
		builder = opt(builder)
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

	var cars []models.Car
	for rows.Next() {
		c, err := scanCarWithImages(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, *c)
	}
	return cars, rows.Err()
}

func scanCarWithImages(rows *sql.Rows) (*models.Car, error) {
	var c models.Car
	var m models.Model
	var brandName, bodyTypeName string
	var images any
	err := rows.Scan(
		&c.ID,
		&c.ModelID,
		&c.Condition,
		&c.Transmission,
		&c.Mileage,
		&c.BuyPrice,
		&c.SellPrice,
		&c.Year,
		&c.Description,
		&c.Sold,
		&c.CreatedAt,
		&c.UpdatedAt,
		&m.Name,
		&m.BrandID,
		&m.BodyTypeID,
		&m.Seats,
		&m.CC,
		&m.Bags,
		&brandName,
		&bodyTypeName,
		&images,
	)
	if err != nil {
		return nil, err
	}
	c.Images = toStringSlice(images)
	m.ID = c.ModelID
	m.Brand = &models.Brand{ID: m.BrandID, Name: brandName}
	m.BodyType = &models.BodyType{ID: m.BodyTypeID, Name: bodyTypeName}
	c.Model = &m
	return &c, nil
}

func (s *CarStore) Count(ctx context.Context, opts ...ListOption) (int, error) {
	builder := sq.Select("COUNT(*)").
		From("cars").
		Join("models ON cars.model_id = models.id").
		Join("brands ON models.brand_id = brands.id").
		Join("body_types ON models.body_type_id = body_types.id")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

func (s *CarStore) Get(ctx context.Context, id string) (*models.Car, error) {
	cars, err := s.List(ctx, ByID(id))
	if err != nil {
		return nil, err
	}
	if len(cars) == 0 {
		return nil, srvErrors.NewCarNotFoundError(id)
	}
	return &cars[0], nil
}

func (s *CarStore) Create(ctx context.Context, c *models.Car) (*models.Car, error) {
	created := *c
	created.ID = uuid.NewString()
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cars (id, model_id, condition, transmission, mileage,
			buy_price, sell_price, year, description, sold, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		created.ID,
		created.ModelID,
		created.Condition,
		string(created.Transmission),
		created.Mileage,
		created.BuyPrice,
		created.SellPrice,
		created.Year,
		created.Description,
		created.Sold,
		created.CreatedAt,
		created.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := s.replaceImages(ctx, created.ID, created.Images); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *CarStore) Update(ctx context.Context, c *models.Car) (*models.Car, error) {
	updated := *c
	updated.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		UPDATE cars SET model_id = ?, condition = ?, transmission = ?,
			mileage = ?, buy_price = ?, sell_price = ?, year = ?,
			description = ?, sold = ?, updated_at = ?
		WHERE id = ?`,
		updated.ModelID,
		updated.Condition,
		string(updated.Transmission),
		updated.Mileage,
		updated.BuyPrice,
		updated.SellPrice,
		updated.Year,
		updated.Description,
		updated.Sold,
		updated.UpdatedAt,
		updated.ID,
	)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, srvErrors.NewCarNotFoundError(updated.ID)
	}
	if err := s.replaceImages(ctx, updated.ID, updated.Images); err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetSold flips the sold flag, the side effect of creating or cancelling a
// sale.
func (s *CarStore) SetSold(ctx context.Context, id string, sold bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE cars SET sold = ?, updated_at = ? WHERE id = ?`,
		sold, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return srvErrors.NewCarNotFoundError(id)
	}
	return nil
}

func (s *CarStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, queryDeleteCarImages, id); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM cars WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return srvErrors.NewCarNotFoundError(id)
	}
	return nil
}

func (s *CarStore) replaceImages(ctx context.Context, carID string, images []string) error {
	if _, err := s.db.ExecContext(ctx, queryDeleteCarImages, carID); err != nil {
		return err
	}
	for i, filename := range images {
		if _, err := s.db.ExecContext(ctx, queryInsertCarImage, carID, filename, i); err != nil {
			return err
		}
	}
	return nil
}

// ListOption narrows or orders a car query. Options compose with AND; an
// unset filter dimension adds no clause.
type ListOption func(sq.SelectBuilder) sq.SelectBuilder

func ByID(id string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Eq{"cars.id": id})
	}
}

// BySearch matches the free-text search case-insensitively against the model
// name or the brand name. Parameter binding handles quoting.
func BySearch(search string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if search == "" {
			return b
		}
		pattern := "%" + search + "%"
		return b.Where(sq.Or{
			sq.Expr("models.name ILIKE ?", pattern),
			sq.Expr("brands.name ILIKE ?", pattern),
		})
	}
}

func ByBrand(brandID string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if brandID == "" {
			return b
		}
		return b.Where(sq.Eq{"models.brand_id": brandID})
	}
}

func ByBodyType(bodyTypeID string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if bodyTypeID == "" {
			return b
		}
		return b.Where(sq.Eq{"models.body_type_id": bodyTypeID})
	}
}

func ByTransmission(t models.Transmission) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if t == "" {
			return b
		}
		return b.Where(sq.Eq{"cars.transmission": string(t)})
	}
}

// ByMaxSellPrice is the single-bound price control: the preset buckets in
// the storefront ("< Rp 100 Juta" and friends) are upper bounds.
func ByMaxSellPrice(max int64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.LtOrEq{"cars.sell_price": max})
	}
}

// BySellPriceRange is the closed interval [min, max], used when both bounds
// are supplied.
func BySellPriceRange(min, max int64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.And{
			sq.GtOrEq{"cars.sell_price": min},
			sq.LtOrEq{"cars.sell_price": max},
		})
	}
}

// ByAvailable keeps unsold cars only, for the sale-creation selector.
func ByAvailable() ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Eq{"cars.sold": false})
	}
}

func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

func WithOffset(offset uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Offset(offset)
	}
}

type SortParam struct {
	Field string
	Desc  bool
}

var apiFieldToDBColumn = map[string]string{
	"year":      "cars.year",
	"mileage":   "cars.mileage",
	"sellPrice": "cars.sell_price",
	"condition": "cars.condition",
	"created":   "cars.created_at",
}

// WithDefaultSort orders by most recently created first.
func WithDefaultSort() ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.OrderBy("cars.created_at DESC", "cars.id")
	}
}

func WithSort(sorts []SortParam) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		var orderClauses []string
		for _, s := range sorts {
			col, ok := apiFieldToDBColumn[s.Field]
			if !ok {
				continue
			}
			if s.Desc {
				orderClauses = append(orderClauses, col+" DESC")
			} else {
				orderClauses = append(orderClauses, col+" ASC")
			}
		}
		orderClauses = append(orderClauses, "cars.id")
		return b.OrderBy(orderClauses...)
	}
}

func toStringSlice(v any) []string {
	if v == nil {
		return nil
	}
	slice, ok := v.([]any)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(slice))
	for _, item := range slice {
		if item == nil {
			continue
		}
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}
