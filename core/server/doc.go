// Package server holds the HTTP server configuration.
//
// The start command serves the country read API, the import trigger, the
// integrity checks and the Prometheus metrics on Config.Address().
package server
