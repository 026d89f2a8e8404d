// Package logger provides a structured logging facility based on Zap.
//
// The importer logs one entry per rejected country record and a final summary;
// the HTTP server additionally tags request logs with the RayID assigned by the
// rayid middleware (see WithRayID).
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Imported countries", zap.Int("count", n))
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Import failed", zap.Error(err))
package logger
