// Package audit keeps an optional journal of object operations.
//
// Service implements objects.Recorder: once installed with
// objects.Service.SetRecorder, every Put, Get, List and Delete is stored as an
// Event row with its outcome ("ok" or the error kind) and, for HTTP requests,
// the RayID. The journal is write-only from the point of view of the object
// operations; it never changes their result.
//
// # HTTP Endpoints
//
//   - GET /audit : Most recent events, newest first (supports ?limit=).
package audit
