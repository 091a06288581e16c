// Package logger provides a structured logging facility based on Zap.
//
// It builds a logger from the log section of the configuration and plugs
// into Fiber through a request logging middleware.
//
// # Context Awareness
//
// WithRayID extracts the RayID set by core/middleware/rayid from a Fiber
// context and attaches it to the log entry, so every line written while
// serving a request can be correlated.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	app.Use(logger.Middleware(log))
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
