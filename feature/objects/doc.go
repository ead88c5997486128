// Package objects implements upload, download, listing and deletion of
// objects in a single bucket.
//
// # Service
//
// Service is bound to one bucket for its whole life and exposes Put, Get,
// List and Delete (the Store interface) plus streaming variants used by the
// HTTP API. It never retries and never terminates the process: every failure
// is returned as an *Error whose Kind is one of
//
//   - ErrLocalFileNotFound: the upload source does not exist
//   - ErrRemoteObjectNotFound: the key is absent from the bucket
//   - ErrTransport: network, authentication or service failure
//   - ErrInvalidInput: empty key or path
//   - ErrLocalIO: a local file could not be read or written
//
// Use errors.Is to test the kind; errors.Unwrap yields the cause.
//
// Put overwrites (last write wins). Delete of an absent key succeeds.
// Get never replaces the destination file unless the whole body arrived.
//
// # HTTP Endpoints
//
//   - GET /objects : List keys (supports ?prefix=).
//   - GET /objects/*key : Download (supports ?meta=true for metadata only).
//   - PUT /objects/*key : Upload the multipart field "file".
//   - DELETE /objects/*key : Delete.
package objects
