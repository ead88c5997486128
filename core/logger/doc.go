// Package logger provides a structured logging facility based on Zap.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// The debug level selects Zap's development configuration (ISO8601 timestamps,
// caller info); other levels use the production configuration. All output is
// written to stderr.
//
// # Request Correlation
//
// WithRayID extracts the RayID set by the rayid middleware from a Fiber
// context and attaches it to the log entry.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
