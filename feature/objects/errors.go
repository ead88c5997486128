package objects

import (
	"errors"
	"strings"
)

// Error kinds. Match them with errors.Is.
var (
	// ErrLocalFileNotFound is returned when an upload source does not exist.
	ErrLocalFileNotFound = errors.New("local file not found")
	// ErrRemoteObjectNotFound is returned when a requested key is absent from the bucket.
	ErrRemoteObjectNotFound = errors.New("remote object not found")
	// ErrTransport covers network, authentication and remote service failures.
	ErrTransport = errors.New("transport failure")
	// ErrInvalidInput is returned for empty keys or paths, or a directory given as upload source.
	ErrInvalidInput = errors.New("invalid input")
	// ErrLocalIO is returned when a local file exists but cannot be read, or a
	// download destination cannot be written.
	ErrLocalIO = errors.New("local i/o failure")
)

// ErrBucketNotFound is the cause wrapped by ErrTransport when the bound bucket is missing.
var ErrBucketNotFound = errors.New("bucket does not exist")

// Error describes a failed storage operation.
type Error struct {
	// Op is the operation name: put, get, list, delete, stat or check.
	Op string
	// Key is the remote object key, if any.
	Key string
	// Path is the local file path, if any.
	Path string
	// Kind is one of the Err* sentinels above.
	Kind error
	// Err is the underlying cause. May be nil for precondition failures.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Key != "" {
		b.WriteString(" ")
		b.WriteString(e.Key)
	}
	if e.Path != "" {
		b.WriteString(" (")
		b.WriteString(e.Path)
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the kind of e.
func (e *Error) Is(target error) bool { return target == e.Kind }

// KindOf returns the kind sentinel of err, or nil if err did not come from this package.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return nil
}
