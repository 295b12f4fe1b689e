package storage

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// ObjectInfo describes a single object in a bucket.
type ObjectInfo struct {
	// Key is the full object key.
	Key string
	// ETag is the entity tag with surrounding quotes removed.
	ETag string
	// Size is the object size in bytes.
	Size int64
	// LastModified is the time the object was last written.
	LastModified time.Time
	// Err is set when a listing fails. No further items follow it.
	Err error
}

// MaxSinglePutSize is the largest object S3 accepts in a single PUT.
// Larger uploads are multipart and get composite ETags.
const MaxSinglePutSize int64 = 5 << 30

// PutOptions holds optional metadata for uploads.
type PutOptions struct {
	// ContentType is stored as the object's Content-Type header.
	ContentType string
}

// Client defines the interface for storage operations.
type Client interface {
	// BucketExists checks if a bucket exists.
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	// ListObjects lists every object under prefix, following pagination.
	// The channel is closed when the listing ends or fails.
	ListObjects(ctx context.Context, bucketName, prefix string) <-chan ObjectInfo
	// StatObject returns the metadata of a single object.
	StatObject(ctx context.Context, bucketName, objectName string) (ObjectInfo, error)
	// PutObject uploads an object.
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts PutOptions) error
	// GetObject downloads an object.
	GetObject(ctx context.Context, bucketName, objectName string) (io.ReadCloser, error)
	// RemoveObject deletes an object from a bucket.
	RemoveObject(ctx context.Context, bucketName, objectName string) error
}

// NewClient creates a storage client for the configured driver.
// Clients connect lazily; use Connect to verify the bucket and credentials.
func NewClient(cfg Config) (Client, error) {
	if cfg.Driver == "" {
		cfg.Driver = DriverMinio
	}
	if !cfg.IsValidDriver() {
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}

	// Ensure timeout defaults if not set
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	if cfg.Driver == DriverS3 {
		return newS3Client(cfg, time.Duration(timeout)*time.Second)
	}
	return newMinioClient(cfg, newTransport(time.Duration(timeout)*time.Second))
}

// Connect verifies that the bucket is reachable with the client's credentials.
// It returns ErrBucketNotFound, ErrAuth or ErrConnectivity on failure.
func Connect(ctx context.Context, client Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		return fmt.Errorf("bucket %s: %w", bucket, ErrBucketNotFound)
	}
	return nil
}

// newTransport creates a transport with strict timeouts so a dead endpoint
// fails the connection instead of hanging the pass.
func newTransport(timeout time.Duration) *http.Transport {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout, // Connection setup timeout
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	tuneTransport(t, timeout)
	return t
}

// tuneTransport applies the timeouts shared by both backends.
func tuneTransport(t *http.Transport, timeout time.Duration) {
	t.MaxIdleConnsPerHost = 32
	t.TLSHandshakeTimeout = timeout
	t.ResponseHeaderTimeout = timeout
}

// splitEndpoint returns the host part of an endpoint and whether TLS applies.
// An explicit scheme wins over the UseSSL flag.
func splitEndpoint(endpoint string, useSSL bool) (string, bool) {
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		return strings.TrimSuffix(strings.TrimPrefix(endpoint, "https://"), "/"), true
	case strings.HasPrefix(endpoint, "http://"):
		return strings.TrimSuffix(strings.TrimPrefix(endpoint, "http://"), "/"), false
	default:
		return strings.TrimSuffix(endpoint, "/"), useSSL
	}
}

// endpointURL returns the endpoint with a scheme, as the AWS SDK expects.
func endpointURL(endpoint string, useSSL bool) string {
	if endpoint == "" {
		return ""
	}
	host, secure := splitEndpoint(endpoint, useSSL)
	if secure {
		return "https://" + host
	}
	return "http://" + host
}

func trimETag(etag string) string {
	return strings.Trim(etag, `"`)
}
