// Package services implements the business logic layer for the
// garasiku-server.
//
// This package contains services that act as intermediaries between HTTP
// handlers and the data store. Each service encapsulates one domain area and
// manages its own state where applicable.
//
// # Service Dependency Graph
//
//	Handlers (HTTP endpoints)
//	    │
//	    ▼
//	Services Layer
//	    ├── CarService ────────► Store, ReferenceResolver, Files, Hub
//	    ├── ReferenceResolver ─► Store
//	    ├── SaleService ───────► Store, Hub
//	    ├── AuthService ───────► Store, Google client, worker pool
//	    ├── LiveSearch ────────► CarService, Debouncer
//	    └── Hub                 (record-change fan-out)
//
// # ReferenceResolver
//
// The resolver guarantees Brand, BodyType and Model exist before a car is
// written, creating missing entities by name.
//
// Resolution order:
//
//	┌───────┐     ┌──────────┐     ┌───────┐
//	│ Brand │────►│ BodyType │────►│ Model │
//	└───────┘     └──────────┘     └───────┘
//
// Each step is either (a) an id picked from a dropdown, trusted as-is, or
// (b) a name: an exact, case-sensitive lookup followed by a create when
// absent. Lookup-before-create makes each step idempotent, but the sequence
// is not transactional; a model-create failure leaves a freshly created
// brand in place. The result reports which steps created entities so the
// caller can see exactly what a partial failure left behind.
//
// # CarService
//
// List translates filter parameters into store options; every unset or
// "all" dimension contributes no clause, so an empty filter matches the
// whole inventory, newest first. A single price bound is an upper bound
// (the storefront's preset buckets are "< Rp N"); two bounds form a closed
// interval.
//
// Create/Update run the resolver first and halt on its failure. Update
// additionally rejects submissions that change nothing (dirty check) and
// rebuilds the image list as surviving existing images, in order, followed
// by new uploads.
//
// # SaleService
//
// Creating a sale marks the car sold; cancelling returns it to the
// available pool. The car reference is immutable after creation, so an
// update naming a different car is rejected. Both are two separate writes without a transaction; a
// failure of the second write is reported, not rolled back. Summary
// aggregates total/completed/pending counts and revenue (completed only) in
// one query. Export renders the filtered list as an xlsx workbook.
//
// # AuthService
//
// The in-memory session set is the single authority on who is logged in;
// cookies only carry the token. Password logins verify bcrypt hashes;
// Google logins exchange the OAuth code server-side and require the email
// to belong to a pre-registered user. A periodic sweep drops expired
// sessions.
//
// # Live updates
//
// Hub fans record-change events out to SSE subscribers. LiveSearch keeps
// one car query live per subscriber: inputs and change events are
// debounced, a new dispatch cancels the previous in-flight query, and
// superseded results are discarded rather than delivered.
package services
