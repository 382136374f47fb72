// Package store implements the data access layer for the garasiku-server.
//
// This package provides persistent storage using DuckDB. All collections the
// dashboard and storefront operate on live in locally-migrated tables.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                         Store (facade)                          │
//	├──────────────┬──────────────┬───────────────┬───────────────────┤
//	│  BrandStore  │ BodyTypeStore│  ModelStore   │     UserStore     │
//	│      ▼       │      ▼       │      ▼        │        ▼          │
//	│    brands    │  body_types  │    models     │      users        │
//	├──────────────┴──────────────┴───────────────┴───────────────────┤
//	│              CarStore               │        SaleStore          │
//	│                 ▼                   │           ▼               │
//	│        cars, car_images             │          sales            │
//	└─────────────────────────────────────┴───────────────────────────┘
//
// # Tables
//
// All tables are created by local migrations (internal/store/migrations/sql/):
//
//	┌────────────────────┬─────────────────────────────────────────────┐
//	│  Table             │  Purpose                                    │
//	├────────────────────┼─────────────────────────────────────────────┤
//	│  brands            │  Reference data, lazily created by name     │
//	│  body_types        │  Reference data, lazily created by name     │
//	│  models            │  Car models (brand + body type + specs)     │
//	│  cars              │  Inventory records                          │
//	│  car_images        │  Ordered image filenames per car            │
//	│  sales             │  Sales records with status                  │
//	│  users             │  Pre-registered dashboard users             │
//	│  schema_migrations │  Migration version tracking                 │
//	└────────────────────┴─────────────────────────────────────────────┘
//
// # Query Building
//
// List queries are assembled with squirrel. Filters are functional options
// appended to a base SELECT; every option contributes one AND clause, and an
// unset dimension contributes nothing, so an empty filter set matches all
// records. Car queries join cars → models → brands/body_types so filters can
// traverse the reference chain (the record-store equivalent of the
// "model.brand.name" dot-path), and aggregate image filenames with LIST().
//
//	cars, err := store.Car().List(ctx,
//	    store.BySearch("avanza"),
//	    store.ByBrand(toyotaID),
//	    store.ByMaxSellPrice(200_000_000),
//	    store.WithDefaultSort(),
//	    store.WithLimit(20),
//	)
//
// # Initialization Flow
//
//	db, _ := store.NewDB(path)     // ":memory:" in tests
//	s := store.NewStore(db)
//	s.Migrate(ctx)                 // applies embedded SQL migrations
package store
