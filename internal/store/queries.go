package store

// Brand queries
const (
	queryGetBrand        = `SELECT id, name FROM brands WHERE id = ?`
	queryGetBrandByName  = `SELECT id, name FROM brands WHERE name = ?`
	queryListBrands      = `SELECT id, name FROM brands ORDER BY name`
	queryInsertBrand     = `INSERT INTO brands (id, name) VALUES (?, ?)`
)

// BodyType queries
const (
	queryGetBodyType       = `SELECT id, name FROM body_types WHERE id = ?`
	queryGetBodyTypeByName = `SELECT id, name FROM body_types WHERE name = ?`
	queryListBodyTypes     = `SELECT id, name FROM body_types ORDER BY name`
	queryInsertBodyType    = `INSERT INTO body_types (id, name) VALUES (?, ?)`
)

// Model queries
const (
	queryInsertModel = `
		INSERT INTO models (id, name, brand_id, body_type_id, seats, cc, bags)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
)

// Car image queries
const (
	queryInsertCarImage  = `INSERT INTO car_images (car_id, filename, position) VALUES (?, ?, ?)`
	queryDeleteCarImages = `DELETE FROM car_images WHERE car_id = ?`
)

// User queries
const (
	queryGetUserByEmail = `
		SELECT id, email, name, password_hash, verified, created_at, updated_at
		FROM users WHERE email = ?`

	queryGetUser = `
		SELECT id, email, name, password_hash, verified, created_at, updated_at
		FROM users WHERE id = ?`

	queryInsertUser = `
		INSERT INTO users (id, email, name, password_hash, verified, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
)
