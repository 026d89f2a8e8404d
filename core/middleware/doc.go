// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key header or api_key query parameter).
//     An empty key disables the check.
//   - rayid: assigns a ray id to every request, stores it in the context for
//     logger.WithRayID and echoes it in the X-Ray-ID response header.
package middleware
