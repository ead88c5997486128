// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key) protecting the object endpoints.
//   - rayid: assigns a RayID to every request, stores it in the context locals
//     and echoes it in the X-Ray-ID response header for tracing.
//
// RayID must be registered first so every later log line carries it.
package middleware
