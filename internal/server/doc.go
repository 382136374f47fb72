// Package server provides the HTTP server for the dealership API.
//
// The server uses the Gin web framework and supports two modes of operation:
// development (HTTP) and production (HTTPS with auto-generated TLS certificates).
//
// # Architecture Overview
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                         HTTP Server                           │
//	├───────────────────────────────────────────────────────────────┤
//	│                                                               │
//	│  Production Mode (TLS)          Development Mode              │
//	│  ┌─────────────────────┐        ┌─────────────────────┐       │
//	│  │ HTTPS :8000         │        │ HTTP :8000          │       │
//	│  │ Self-signed cert    │        │ No TLS              │       │
//	│  │ Static file serving │        │ API only            │       │
//	│  │ SPA fallback        │        │                     │       │
//	│  └─────────────────────┘        └─────────────────────┘       │
//	│                                                               │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Middleware Stack                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  Logger (request/response logging via ginzap)           │  │
//	│  │  Recovery (panic recovery with zap logging)             │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Router (/api/v1)                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  Handlers (registered via callback)                     │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	└───────────────────────────────────────────────────────────────┘
//
// # Server Modes
//
// Development Mode (ServerMode = "dev"):
//   - HTTP only (no TLS)
//   - Gin runs in debug mode
//   - API endpoints only
//
// Production Mode (ServerMode = "prod"):
//   - HTTPS with auto-generated self-signed certificate (1 year validity)
//   - Gin runs in release mode
//   - Static file serving from StaticsFolder
//   - SPA fallback: non-API routes serve index.html
//   - API 404s return JSON error response
//
// # Server Lifecycle
//
// Creation:
//
//	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
//	    handler.Register(router)
//	})
//
// The registerHandlerFn callback receives a RouterGroup prefixed with /api/v1.
//
// Starting:
//
//	// Blocks until error or shutdown
//	err := srv.Start()
//
// Start automatically chooses HTTP or HTTPS based on the server mode.
//
// Stopping:
//
//	srv.Stop(ctx)
//
// Performs graceful shutdown, waiting for in-flight requests to complete.
//
// # Middleware
//
// The server applies two middleware to all routes:
//
// Logger Middleware (ginzap.Ginzap):
//   - Logs each request: method, path, query, IP, user-agent, status, latency
//   - Uses zap structured logging with "http" logger name
//
// Recovery Middleware (ginzap.RecoveryWithZap):
//   - Recovers from panics in handlers
//   - Logs panic details with stack trace
//   - Returns 500 Internal Server Error
//
// # Static File Serving (Production Only)
//
// In production mode, the server serves:
//
//	/any/existing/file  → StaticsFolder/any/existing/file
//	/any/other/path     → StaticsFolder/index.html (SPA fallback)
//	/api/*              → 404 JSON error (if route not found)
//
// # TLS Configuration
//
// In production mode, TLS is configured with:
//   - Self-signed certificate generated at startup
//   - RSA private key
//   - 1 year certificate validity
//   - Certificate generated via pkg/certificates
package server
