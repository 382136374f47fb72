package config

import "time"

//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Database Auth

// Configuration holds all runtime settings for the dealership server.
type Configuration struct {
	Server     Server   `yaml:"server" json:"server" debugmap:"visible"`
	Database   Database `yaml:"database" json:"database" debugmap:"visible"`
	Auth       Auth     `yaml:"auth" json:"auth" debugmap:"visible"`
	NumWorkers int      `yaml:"numWorkers" json:"numWorkers" default:"3" debugmap:"visible"`
	LogLevel   string   `yaml:"logLevel" json:"logLevel" default:"info" debugmap:"visible"`
	LogFormat  string   `yaml:"logFormat" json:"logFormat" default:"console" debugmap:"visible"`
}

// Server configures the HTTP listener.
type Server struct {
	// ServerMode is "dev" (plain HTTP, API only) or "prod" (TLS with a
	// self-signed certificate plus static file serving).
	ServerMode    string `yaml:"serverMode" json:"serverMode" default:"dev" debugmap:"visible"`
	HTTPPort      int    `yaml:"httpPort" json:"httpPort" default:"8000" debugmap:"visible"`
	StaticsFolder string `yaml:"staticsFolder" json:"staticsFolder" debugmap:"visible"`
}

// Database configures persistent storage. DataFolder holds the DuckDB file
// and the uploaded car images.
type Database struct {
	DataFolder string `yaml:"dataFolder" json:"dataFolder" default:"data" debugmap:"visible"`
}

// Auth configures session issuance and the Google sign-in integration.
type Auth struct {
	JWTSecret          string        `yaml:"jwtSecret" json:"jwtSecret" debugmap:"sensitive"`
	TokenTTL           time.Duration `yaml:"tokenTTL" json:"tokenTTL" default:"24h" debugmap:"visible"`
	GoogleClientID     string        `yaml:"googleClientId" json:"googleClientId" debugmap:"visible"`
	GoogleClientSecret string        `yaml:"googleClientSecret" json:"googleClientSecret" debugmap:"sensitive"`
	GoogleRedirectURL  string        `yaml:"googleRedirectUrl" json:"googleRedirectUrl" debugmap:"visible"`
}
