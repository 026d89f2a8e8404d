// Package metrics defines the Prometheus collectors of the import pipeline.
// The HTTP server exposes them on /metrics.
package metrics
