package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/garasiku/garasiku-server/internal/models"
	srvErrors "github.com/garasiku/garasiku-server/pkg/errors"
)

// SaleStore handles sales records. Lists join the sold car through its model
// and brand so the dashboard can show the car name without a second fetch.
type SaleStore struct {
	db Querier
}

func NewSaleStore(db Querier) *SaleStore {
	return &SaleStore{db: db}
}

func saleSelect() sq.SelectBuilder {
	return sq.Select(
		"sales.id",
		"sales.customer_name",
		"sales.car_id",
		"sales.price",
		"sales.payment_method",
		"sales.notes",
		"sales.status",
		"sales.created_by",
		"sales.created_at",
		"sales.updated_at",
		"models.name",
		"brands.name",
	).From("sales").
		Join("cars ON sales.car_id = cars.id").
		Join("models ON cars.model_id = models.id").
		Join("brands ON models.brand_id = brands.id")
}

func scanSale(row sq.RowScanner) (*models.Sale, error) {
	var s models.Sale
	var modelName, brandName string
	err := row.Scan(
		&s.ID,
		&s.CustomerName,
		&s.CarID,
		&s.Price,
		&s.PaymentMethod,
		&s.Notes,
		&s.Status,
		&s.CreatedByID,
		&s.CreatedAt,
		&s.UpdatedAt,
		&modelName,
		&brandName,
	)
	if err != nil {
		return nil, err
	}
	s.Car = &models.Car{
		ID: s.CarID,
		Model: &models.Model{
			Name:  modelName,
			Brand: &models.Brand{Name: brandName},
		},
	}
	return &s, nil
}

func (s *SaleStore) List(ctx context.Context, opts ...SaleListOption) ([]models.Sale, error) {
	builder := saleSelect()
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

	var sales []models.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, *sale)
	}
	return sales, rows.Err()
}

func (s *SaleStore) Get(ctx context.Context, id string) (*models.Sale, error) {
	sales, err := s.List(ctx, SaleByID(id))
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, srvErrors.NewSaleNotFoundError(id)
	}
	return &sales[0], nil
}

func (s *SaleStore) Create(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	created := *sale
	created.ID = uuid.NewString()
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sales (id, customer_name, car_id, price, payment_method,
			notes, status, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		created.ID,
		created.CustomerName,
		created.CarID,
		created.Price,
		created.PaymentMethod,
		created.Notes,
		string(created.Status),
		created.CreatedByID,
		created.CreatedAt,
		created.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *SaleStore) Update(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	updated := *sale
	updated.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		UPDATE sales SET customer_name = ?, price = ?, payment_method = ?,
			notes = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		updated.CustomerName,
		updated.Price,
		updated.PaymentMethod,
		updated.Notes,
		string(updated.Status),
		updated.UpdatedAt,
		updated.ID,
	)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, srvErrors.NewSaleNotFoundError(updated.ID)
	}
	return &updated, nil
}

func (s *SaleStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sales WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return srvErrors.NewSaleNotFoundError(id)
	}
	return nil
}

// Summary aggregates the dashboard counters in one query. Revenue counts
// completed sales only.
func (s *SaleStore) Summary(ctx context.Context) (*models.SalesSummary, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COALESCE(SUM(price) FILTER (WHERE status = 'completed'), 0)
		FROM sales`)

	var summary models.SalesSummary
	err := row.Scan(
		&summary.TotalSales,
		&summary.CompletedSales,
		&summary.PendingSales,
		&summary.TotalRevenue,
	)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// SaleListOption narrows or orders a sales query.
type SaleListOption func(sq.SelectBuilder) sq.SelectBuilder

func SaleByID(id string) SaleListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Eq{"sales.id": id})
	}
}

// SaleBySearch matches the customer name or the sale id, case-insensitively.
func SaleBySearch(search string) SaleListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if search == "" {
			return b
		}
		pattern := "%" + search + "%"
		return b.Where(sq.Or{
			sq.Expr("sales.customer_name ILIKE ?", pattern),
			sq.Expr("sales.id ILIKE ?", pattern),
		})
	}
}

func SaleByStatus(status models.SaleStatus) SaleListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if status == "" {
			return b
		}
		return b.Where(sq.Eq{"sales.status": string(status)})
	}
}

func SaleByPaymentMethod(method string) SaleListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if method == "" {
			return b
		}
		return b.Where(sq.Eq{"sales.payment_method": method})
	}
}

func SaleByDateFrom(from time.Time) SaleListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.GtOrEq{"sales.created_at": from})
	}
}

func SaleByDateTo(to time.Time) SaleListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.LtOrEq{"sales.created_at": to})
	}
}

var saleFieldToDBColumn = map[string]string{
	"customerName": "sales.customer_name",
	"price":        "sales.price",
	"status":       "sales.status",
	"created":      "sales.created_at",
}

// SaleWithDefaultSort orders by most recent sale first.
func SaleWithDefaultSort() SaleListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.OrderBy("sales.created_at DESC", "sales.id")
	}
}

func SaleWithSort(field string, desc bool) SaleListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		col, ok := saleFieldToDBColumn[field]
		if !ok {
			return b.OrderBy("sales.created_at DESC", "sales.id")
		}
		dir := " ASC"
		if desc {
			dir = " DESC"
		}
		return b.OrderBy(col+dir, "sales.id")
	}
}
