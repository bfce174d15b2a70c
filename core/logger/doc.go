// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production). Import runs log one structured record per
// record outcome plus a final run summary, so the JSON encoding is the
// recommended format for anything feeding a log aggregator.
//
// # Context Awareness
//
// When running in service mode, the WithRayID helper extracts the RayID
// (request ID) from a Fiber context and attaches it to the log entry, ensuring
// that all logs related to a specific import request can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Import started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Import failed", zap.Error(err))
package logger
