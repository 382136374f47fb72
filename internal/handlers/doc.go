// Package handlers implements the HTTP layer of the dealership API. Each
// endpoint is a method on a single Handler that parses and validates request
// input, delegates to the service layer, and translates domain errors into
// HTTP status codes.
//
// # Endpoints
//
// Public (no session required):
//
//	+--------+----------------------------------+--------------------------------------+
//	| Method | Path                             | Handler                              |
//	+--------+----------------------------------+--------------------------------------+
//	| GET    | /cars                            | GetCars          (filtered listing)  |
//	| GET    | /cars/:id                        | GetCar                               |
//	| GET    | /cars/stream                     | StreamCars       (live SSE feed)     |
//	| GET    | /brands                          | GetBrands                            |
//	| GET    | /body-types                      | GetBodyTypes                         |
//	| GET    | /models                          | GetModels        (?brand= filter)    |
//	| GET    | /files/cars/:id/:file            | ServeCarImage                        |
//	| GET    | /events                          | StreamEvents     (?collection=)      |
//	| POST   | /auth/login                      | Login                                |
//	| POST   | /auth/google/callback            | GoogleCallback                       |
//	+--------+----------------------------------+--------------------------------------+
//
// Guarded by RequireAuth:
//
//	+--------+----------------------------------+--------------------------------------+
//	| Method | Path                             | Handler                              |
//	+--------+----------------------------------+--------------------------------------+
//	| POST   | /cars                            | CreateCar        (multipart form)    |
//	| PATCH  | /cars/:id                        | UpdateCar        (multipart form)    |
//	| DELETE | /cars/:id                        | DeleteCar                            |
//	| GET    | /sales                           | GetSales                             |
//	| GET    | /sales/summary                   | GetSalesSummary                      |
//	| GET    | /sales/available-cars            | GetAvailableCars                     |
//	| GET    | /sales/export                    | ExportSales      (xlsx)              |
//	| GET    | /sales/:id                       | GetSale                              |
//	| POST   | /sales                           | CreateSale                           |
//	| PATCH  | /sales/:id                       | UpdateSale                           |
//	| POST   | /sales/:id/cancel                | CancelSale                           |
//	| DELETE | /sales/:id                       | DeleteSale                           |
//	| POST   | /auth/logout                     | Logout                               |
//	| GET    | /auth/me                         | Me                                   |
//	+--------+----------------------------------+--------------------------------------+
//
// # Error translation
//
// Services return typed errors from pkg/errors; respondError maps them:
//
//	validation error            -> 400
//	resource not found          -> 404
//	user not registered         -> 404
//	unauthorized                -> 401
//	anything else               -> 500
//
// # Listing conventions
//
// List endpoints accept page and pageSize query parameters. pageSize defaults
// to 20 and is clamped to 100. The response carries the page, the total record
// count and the derived page count so clients can paginate without a second
// request.
//
// Car create and update accept multipart forms so image uploads travel with
// the scalar fields. Reference fields come in paired variants (brand_id or
// brand, and so on): an id is trusted as-is while a bare name is resolved,
// creating the referenced record when no exact match exists.
package handlers
