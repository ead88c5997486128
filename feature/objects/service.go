package objects

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"mime"
	"os"
	"path/filepath"
	"time"

	"bucket-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Store is the operation set the interactive menu and the CLI drive.
type Store interface {
	// Put uploads the file at localPath under key, replacing any existing object.
	Put(ctx context.Context, localPath, key string) error
	// Get downloads key into localPath, replacing any existing file.
	Get(ctx context.Context, key, localPath string) error
	// List returns every key in the bucket.
	List(ctx context.Context) ([]string, error)
	// Delete removes key. Absent keys are not an error.
	Delete(ctx context.Context, key string) error
}

// Make sure *Service satisfies Store.
var _ Store = (*Service)(nil)

// ObjectInfo is the metadata of a stored object.
type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ETag         string    `json:"etag"`
	ContentType  string    `json:"content_type"`
	LastModified time.Time `json:"last_modified"`
}

// Recorder receives the outcome of each Put, Get, List and Delete.
// Implementations must not block for long and must not fail the operation.
type Recorder interface {
	Record(ctx context.Context, op, key, path string, err error)
}

// Service runs object operations against a single bucket.
type Service struct {
	client   storage.Client
	bucket   string
	logger   *zap.Logger
	recorder Recorder
}

// NewService creates a new object service bound to bucket.
func NewService(client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// SetRecorder installs r to observe operation outcomes. Nil disables recording.
func (s *Service) SetRecorder(r Recorder) {
	s.recorder = r
}

func (s *Service) record(ctx context.Context, op, key, path string, err error) {
	if s.recorder != nil {
		s.recorder.Record(ctx, op, key, path, err)
	}
}

// Bucket returns the bucket every operation is bound to.
func (s *Service) Bucket() string {
	return s.bucket
}

// Check verifies that the bound bucket exists and is reachable.
func (s *Service) Check(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return s.fail(&Error{Op: "check", Kind: ErrTransport, Err: err})
	}
	if !exists {
		return s.fail(&Error{Op: "check", Kind: ErrTransport, Err: fmt.Errorf("%w: %s", ErrBucketNotFound, s.bucket)})
	}
	return nil
}

// Put uploads the file at localPath under key.
// The source is checked before any remote call is made.
func (s *Service) Put(ctx context.Context, localPath, key string) (err error) {
	defer func() { s.record(ctx, "put", key, localPath, err) }()

	if localPath == "" {
		return s.fail(&Error{Op: "put", Key: key, Kind: ErrInvalidInput, Err: errors.New("local path is empty")})
	}
	if key == "" {
		return s.fail(&Error{Op: "put", Path: localPath, Kind: ErrInvalidInput, Err: errors.New("key is empty")})
	}

	fi, err := os.Stat(localPath)
	if err != nil {
		kind := ErrLocalIO
		if errors.Is(err, fs.ErrNotExist) {
			kind = ErrLocalFileNotFound
		}
		return s.fail(&Error{Op: "put", Key: key, Path: localPath, Kind: kind, Err: err})
	}
	if fi.IsDir() {
		return s.fail(&Error{Op: "put", Key: key, Path: localPath, Kind: ErrInvalidInput, Err: errors.New("source is a directory")})
	}

	f, err := os.Open(localPath)
	if err != nil {
		return s.fail(&Error{Op: "put", Key: key, Path: localPath, Kind: ErrLocalIO, Err: err})
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(localPath))
	return s.put(ctx, key, localPath, f, fi.Size(), contentType)
}

// PutReader uploads size bytes from r under key. A negative size streams until EOF.
func (s *Service) PutReader(ctx context.Context, key string, r io.Reader, size int64, contentType string) (err error) {
	defer func() { s.record(ctx, "put", key, "", err) }()

	if key == "" {
		return s.fail(&Error{Op: "put", Kind: ErrInvalidInput, Err: errors.New("key is empty")})
	}
	return s.put(ctx, key, "", r, size, contentType)
}

func (s *Service) put(ctx context.Context, key, localPath string, r io.Reader, size int64, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return s.fail(&Error{Op: "put", Key: key, Path: localPath, Kind: ErrTransport, Err: err})
	}
	s.logger.Debug("Object uploaded",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int64("size", info.Size),
		zap.String("etag", info.ETag),
	)
	return nil
}

// Get downloads key into localPath.
// The body is written to a temporary file next to localPath and renamed into
// place only once complete, so a failed download never clobbers an existing file.
// Missing parent directories are not created.
func (s *Service) Get(ctx context.Context, key, localPath string) (err error) {
	defer func() { s.record(ctx, "get", key, localPath, err) }()

	if key == "" {
		return s.fail(&Error{Op: "get", Path: localPath, Kind: ErrInvalidInput, Err: errors.New("key is empty")})
	}
	if localPath == "" {
		return s.fail(&Error{Op: "get", Key: key, Kind: ErrInvalidInput, Err: errors.New("local path is empty")})
	}

	rc, info, err := s.open(ctx, key)
	if err != nil {
		return err
	}
	defer rc.Close()

	tmp, err := os.CreateTemp(filepath.Dir(localPath), "."+filepath.Base(localPath)+".*.part")
	if err != nil {
		return s.fail(&Error{Op: "get", Key: key, Path: localPath, Kind: ErrLocalIO, Err: err})
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	n, err := io.Copy(tmp, rc)
	if err != nil {
		return s.fail(&Error{Op: "get", Key: key, Path: localPath, Kind: classifyCopy(err), Err: err})
	}
	if info.Size >= 0 && n != info.Size {
		return s.fail(&Error{Op: "get", Key: key, Path: localPath, Kind: ErrTransport,
			Err: fmt.Errorf("short body: got %d of %d bytes", n, info.Size)})
	}
	if err := tmp.Chmod(0o644); err != nil {
		return s.fail(&Error{Op: "get", Key: key, Path: localPath, Kind: ErrLocalIO, Err: err})
	}
	if err := tmp.Close(); err != nil {
		return s.fail(&Error{Op: "get", Key: key, Path: localPath, Kind: ErrLocalIO, Err: err})
	}
	if err := os.Rename(tmpName, localPath); err != nil {
		return s.fail(&Error{Op: "get", Key: key, Path: localPath, Kind: ErrLocalIO, Err: err})
	}
	committed = true

	s.logger.Debug("Object downloaded",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.String("path", localPath),
		zap.Int64("size", n),
	)
	return nil
}

// Open returns a reader over the body of key with its metadata.
// The caller must close the reader.
func (s *Service) Open(ctx context.Context, key string) (rc io.ReadCloser, info ObjectInfo, err error) {
	defer func() { s.record(ctx, "get", key, "", err) }()

	if key == "" {
		return nil, ObjectInfo{}, s.fail(&Error{Op: "get", Kind: ErrInvalidInput, Err: errors.New("key is empty")})
	}
	return s.open(ctx, key)
}

func (s *Service) open(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	info, err := s.stat(ctx, "get", key)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	rc, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectInfo{}, s.fail(&Error{Op: "get", Key: key, Kind: remoteKind(err), Err: err})
	}
	return rc, info, nil
}

// Stat returns the metadata of key.
func (s *Service) Stat(ctx context.Context, key string) (ObjectInfo, error) {
	if key == "" {
		return ObjectInfo{}, s.fail(&Error{Op: "stat", Kind: ErrInvalidInput, Err: errors.New("key is empty")})
	}
	return s.stat(ctx, "stat", key)
}

func (s *Service) stat(ctx context.Context, op, key string) (ObjectInfo, error) {
	oi, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return ObjectInfo{}, s.fail(&Error{Op: op, Key: key, Kind: remoteKind(err), Err: err})
	}
	return ObjectInfo{
		Key:          key,
		Size:         oi.Size,
		ETag:         oi.ETag,
		ContentType:  oi.ContentType,
		LastModified: oi.LastModified,
	}, nil
}

// List returns a snapshot of every key in the bucket, in store order.
// An empty bucket yields an empty, non-nil slice.
func (s *Service) List(ctx context.Context) (keys []string, err error) {
	defer func() { s.record(ctx, "list", "", "", err) }()

	keys = []string{}
	for key, iterErr := range s.Keys(ctx, "") {
		if iterErr != nil {
			return nil, iterErr
		}
		keys = append(keys, key)
	}
	s.logger.Debug("Objects listed", zap.String("bucket", s.bucket), zap.Int("count", len(keys)))
	return keys, nil
}

// Keys iterates over the keys under prefix. Pages are fetched lazily as the
// sequence is consumed; ranging over it again starts a fresh listing.
// On failure the sequence yields a single error and stops.
func (s *Service) Keys(ctx context.Context, prefix string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: true}
		for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
			if obj.Err != nil {
				yield("", s.fail(&Error{Op: "list", Kind: ErrTransport, Err: obj.Err}))
				return
			}
			if !yield(obj.Key, nil) {
				return
			}
		}
	}
}

// Delete removes key from the bucket. Deleting an absent key succeeds.
func (s *Service) Delete(ctx context.Context, key string) (err error) {
	defer func() { s.record(ctx, "delete", key, "", err) }()

	if key == "" {
		return s.fail(&Error{Op: "delete", Kind: ErrInvalidInput, Err: errors.New("key is empty")})
	}
	if rmErr := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); rmErr != nil && !storage.IsNotFound(rmErr) {
		return s.fail(&Error{Op: "delete", Key: key, Kind: ErrTransport, Err: rmErr})
	}
	s.logger.Debug("Object deleted", zap.String("bucket", s.bucket), zap.String("key", key))
	return nil
}

func (s *Service) fail(e *Error) error {
	s.logger.Warn("Storage operation failed",
		zap.String("op", e.Op),
		zap.String("bucket", s.bucket),
		zap.String("key", e.Key),
		zap.String("kind", e.Kind.Error()),
		zap.Error(e.Err),
	)
	return e
}

func remoteKind(err error) error {
	if storage.IsNotFound(err) {
		return ErrRemoteObjectNotFound
	}
	return ErrTransport
}

// classifyCopy separates local write failures from remote read failures.
func classifyCopy(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return ErrLocalIO
	}
	return remoteKind(err)
}
