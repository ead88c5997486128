// Package server holds the HTTP server configuration.
//
// The serve command exposes the bucket over HTTP; this package defines the
// listen port, the API key protecting the endpoints and the graceful shutdown
// timeout. It is embedded by core/config.
package server
