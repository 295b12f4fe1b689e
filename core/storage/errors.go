package storage

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Sentinel errors for storage failures. Backends wrap provider errors with
// one of these so callers can use errors.Is regardless of the driver.
var (
	// ErrBucketNotFound indicates the bucket does not exist. It is permanent.
	ErrBucketNotFound = errors.New("storage: bucket not found")
	// ErrObjectNotFound indicates the requested object does not exist.
	ErrObjectNotFound = errors.New("storage: object not found")
	// ErrAuth indicates the credentials were rejected.
	ErrAuth = errors.New("storage: authentication failed")
	// ErrConnectivity indicates the service could not be reached.
	ErrConnectivity = errors.New("storage: service unreachable")
)

var authCodes = map[string]bool{
	"AccessDenied":          true,
	"InvalidAccessKeyId":    true,
	"SignatureDoesNotMatch": true,
	"ExpiredToken":          true,
	"InvalidToken":          true,
	"Unauthorized":          true,
}

// classify maps a provider error code and HTTP status onto the sentinel errors.
// Errors it cannot place are returned unchanged.
func classify(err error, code string, status int) error {
	if err == nil {
		return nil
	}
	if isClassified(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	switch {
	case code == "NoSuchBucket":
		return fmt.Errorf("%w: %w", ErrBucketNotFound, err)
	case code == "NoSuchKey" || (code == "NotFound" && status == 404):
		return fmt.Errorf("%w: %w", ErrObjectNotFound, err)
	case authCodes[code] || status == 401 || status == 403:
		return fmt.Errorf("%w: %w", ErrAuth, err)
	}

	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %w", ErrConnectivity, err)
	}

	return err
}

func isClassified(err error) bool {
	return errors.Is(err, ErrBucketNotFound) ||
		errors.Is(err, ErrObjectNotFound) ||
		errors.Is(err, ErrAuth) ||
		errors.Is(err, ErrConnectivity)
}
