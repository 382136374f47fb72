// Package config defines the configuration structure for the dealership
// server.
//
// Configuration is organized into logical sections (Server, Database, Auth)
// and uses code generation via optgen to create functional option helpers.
//
// # Configuration Structure
//
//	Configuration
//	├── Server         - HTTP server settings
//	├── Database       - Persistent storage location
//	├── Auth           - Sessions and Google sign-in
//	├── NumWorkers     - Background worker pool size
//	├── LogLevel       - Logging verbosity
//	└── LogFormat      - Logging format
//
// # Server Configuration
//
//	┌──────────────────┬─────────┬────────────────────────────────────────┐
//	│ Field            │ Default │ Description                            │
//	├──────────────────┼─────────┼────────────────────────────────────────┤
//	│ ServerMode       │ "dev"   │ Server mode: "prod" or "dev"           │
//	│ HTTPPort         │ 8000    │ HTTP server listen port                │
//	│ StaticsFolder    │ ""      │ Path to static files for UI            │
//	└──────────────────┴─────────┴────────────────────────────────────────┘
//
// Server modes:
//   - prod: HTTPS with a self-signed certificate, serves the UI bundle
//   - dev: plain HTTP, API endpoints only
//
// # Database Configuration
//
//	┌────────────┬─────────┬──────────────────────────────────────────────┐
//	│ Field      │ Default │ Description                                  │
//	├────────────┼─────────┼──────────────────────────────────────────────┤
//	│ DataFolder │ "data"  │ Directory for the DuckDB file and car images │
//	└────────────┴─────────┴──────────────────────────────────────────────┘
//
// # Auth Configuration
//
//	┌────────────────────┬─────────┬──────────────────────────────────────┐
//	│ Field              │ Default │ Description                          │
//	├────────────────────┼─────────┼──────────────────────────────────────┤
//	│ JWTSecret          │ ""      │ HMAC key for session tokens          │
//	│ TokenTTL           │ 24h     │ Session lifetime                     │
//	│ GoogleClientID     │ ""      │ OAuth client id                      │
//	│ GoogleClientSecret │ ""      │ OAuth client secret                  │
//	│ GoogleRedirectURL  │ ""      │ OAuth redirect URI                   │
//	└────────────────────┴─────────┴──────────────────────────────────────┘
//
// Google sign-in is optional: when the client id is empty the callback
// endpoint rejects requests and password login remains the only path.
//
// # Code Generation
//
// The package uses optgen to generate functional option helpers:
//
//	//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Database Auth
//
// Generated helpers include:
//
//   - NewConfigurationWithOptions(...ConfigurationOption) - Create with options
//   - NewConfigurationWithOptionsAndDefaults(...ConfigurationOption) - Create with defaults + options
//   - WithServer(Server), WithDatabase(Database), etc. - Set nested structs
//   - DebugMap() - Returns map for debug logging (respects debugmap tags)
//
// # Usage Example
//
// Create configuration with defaults and overrides:
//
//	cfg := config.NewConfigurationWithOptionsAndDefaults(
//	    config.WithServer(config.Server{
//	        ServerMode: "prod",
//	        HTTPPort:   8443,
//	    }),
//	    config.WithLogLevel("debug"),
//	)
//
// # Debug Logging
//
// Fields are tagged with `debugmap:"visible"` (or `debugmap:"sensitive"` for
// secrets) so the loaded configuration can be logged safely via DebugMap():
//
//	log.Infow("configuration loaded", "config", cfg.DebugMap())
package config
