package store

import (
	"context"
	"database/sql"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/garasiku/garasiku-server/internal/store/migrations"
)

// Querier is the subset of *sql.DB the per-entity stores need.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// NewDB opens the embedded DuckDB database at path. Use ":memory:" for an
// ephemeral database in tests.
func NewDB(path string) (*sql.DB, error) {
	dsn := path
	if dsn == ":memory:" {
		dsn = ""
	}
	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Store provides access to all storage repositories.
type Store struct {
	db       *sql.DB
	brand    *BrandStore
	bodyType *BodyTypeStore
	model    *ModelStore
	car      *CarStore
	sale     *SaleStore
	user     *UserStore
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:       db,
		brand:    NewBrandStore(db),
		bodyType: NewBodyTypeStore(db),
		model:    NewModelStore(db),
		car:      NewCarStore(db),
		sale:     NewSaleStore(db),
		user:     NewUserStore(db),
	}
}

// Migrate creates or upgrades the schema.
func (s *Store) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, s.db)
}

func (s *Store) Brand() *BrandStore {
	return s.brand
}

func (s *Store) BodyType() *BodyTypeStore {
	return s.bodyType
}

func (s *Store) Model() *ModelStore {
	return s.model
}

func (s *Store) Car() *CarStore {
	return s.car
}

func (s *Store) Sale() *SaleStore {
	return s.sale
}

func (s *Store) User() *UserStore {
	return s.user
}

func (s *Store) Close() error {
	return s.db.Close()
}
