// Package memstore provides an in-memory storage.Client.
//
// It behaves like a single S3 bucket closely enough for behavioural tests:
// missing keys produce NoSuchKey error responses, deletes of absent keys
// succeed, and listings are returned in lexical key order.
package memstore

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"bucket-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

// Make sure *Client satisfies storage.Client.
var _ storage.Client = (*Client)(nil)

type object struct {
	data        []byte
	contentType string
	modified    time.Time
	etag        string
}

// Client is an in-memory bucket set. Only buckets passed to New exist.
type Client struct {
	mu      sync.Mutex
	buckets map[string]map[string]object

	// Err, when set, is returned by every operation.
	Err error
	// Calls counts operations that reached the store, keyed by method name.
	Calls map[string]int
}

// New creates a Client holding the named, empty buckets.
func New(buckets ...string) *Client {
	c := &Client{
		buckets: make(map[string]map[string]object),
		Calls:   make(map[string]int),
	}
	for _, b := range buckets {
		c.buckets[b] = make(map[string]object)
	}
	return c
}

func (c *Client) begin(op string) error {
	c.Calls[op]++
	return c.Err
}

func noSuchKey(bucket, key string) error {
	return minio.ErrorResponse{
		Code:       "NoSuchKey",
		Message:    "The specified key does not exist.",
		BucketName: bucket,
		Key:        key,
		StatusCode: http.StatusNotFound,
	}
}

func noSuchBucket(bucket string) error {
	return minio.ErrorResponse{
		Code:       "NoSuchBucket",
		Message:    "The specified bucket does not exist",
		BucketName: bucket,
		StatusCode: http.StatusNotFound,
	}
}

func (c *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.begin("BucketExists"); err != nil {
		return false, err
	}
	_, ok := c.buckets[bucketName]
	return ok, nil
}

func (c *Client) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	// Read outside the lock, the reader may be slow.
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.begin("PutObject"); err != nil {
		return minio.UploadInfo{}, err
	}
	b, ok := c.buckets[bucketName]
	if !ok {
		return minio.UploadInfo{}, noSuchBucket(bucketName)
	}
	sum := md5.Sum(data)
	obj := object{
		data:        data,
		contentType: opts.ContentType,
		modified:    time.Now().UTC(),
		etag:        hex.EncodeToString(sum[:]),
	}
	b[objectName] = obj
	return minio.UploadInfo{
		Bucket:       bucketName,
		Key:          objectName,
		ETag:         obj.etag,
		Size:         int64(len(data)),
		LastModified: obj.modified,
	}, nil
}

func (c *Client) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.begin("GetObject"); err != nil {
		return nil, err
	}
	b, ok := c.buckets[bucketName]
	if !ok {
		return nil, noSuchBucket(bucketName)
	}
	obj, ok := b[objectName]
	if !ok {
		return nil, noSuchKey(bucketName, objectName)
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (c *Client) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.begin("StatObject"); err != nil {
		return minio.ObjectInfo{}, err
	}
	b, ok := c.buckets[bucketName]
	if !ok {
		return minio.ObjectInfo{}, noSuchBucket(bucketName)
	}
	obj, ok := b[objectName]
	if !ok {
		return minio.ObjectInfo{}, noSuchKey(bucketName, objectName)
	}
	return info(objectName, obj), nil
}

func (c *Client) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	c.mu.Lock()
	var (
		infos []minio.ObjectInfo
		err   = c.begin("ListObjects")
	)
	if err == nil {
		if b, ok := c.buckets[bucketName]; ok {
			for key, obj := range b {
				if strings.HasPrefix(key, opts.Prefix) {
					infos = append(infos, info(key, obj))
				}
			}
		} else {
			err = noSuchBucket(bucketName)
		}
	}
	c.mu.Unlock()

	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	if opts.MaxKeys > 0 && len(infos) > opts.MaxKeys {
		infos = infos[:opts.MaxKeys]
	}

	ch := make(chan minio.ObjectInfo)
	go func() {
		defer close(ch)
		if err != nil {
			select {
			case ch <- minio.ObjectInfo{Err: err}:
			case <-ctx.Done():
			}
			return
		}
		for _, oi := range infos {
			select {
			case ch <- oi:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func (c *Client) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.begin("RemoveObject"); err != nil {
		return err
	}
	b, ok := c.buckets[bucketName]
	if !ok {
		return noSuchBucket(bucketName)
	}
	// S3 answers 204 for absent keys too.
	delete(b, objectName)
	return nil
}

// Count returns how many times op reached the store.
func (c *Client) Count(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Calls[op]
}

func info(key string, obj object) minio.ObjectInfo {
	return minio.ObjectInfo{
		Key:          key,
		Size:         int64(len(obj.data)),
		ETag:         obj.etag,
		ContentType:  obj.contentType,
		LastModified: obj.modified,
	}
}
