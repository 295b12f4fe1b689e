package mocks

import (
	"context"
	"io"

	"bucket-sync/core/storage"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of storage.Client
type Client struct {
	mock.Mock
}

func (m *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *Client) ListObjects(ctx context.Context, bucketName, prefix string) <-chan storage.ObjectInfo {
	args := m.Called(ctx, bucketName, prefix)
	if ch, ok := args.Get(0).(<-chan storage.ObjectInfo); ok {
		return ch
	}
	ch := make(chan storage.ObjectInfo)
	close(ch)
	return ch
}

func (m *Client) StatObject(ctx context.Context, bucketName, objectName string) (storage.ObjectInfo, error) {
	args := m.Called(ctx, bucketName, objectName)
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *Client) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts storage.PutOptions) error {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Error(0)
}

func (m *Client) GetObject(ctx context.Context, bucketName, objectName string) (io.ReadCloser, error) {
	args := m.Called(ctx, bucketName, objectName)
	if obj, ok := args.Get(0).(io.ReadCloser); ok {
		return obj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	args := m.Called(ctx, bucketName, objectName)
	return args.Error(0)
}

// Listing returns a closed, buffered channel carrying objs, ready to be
// passed to On("ListObjects").Return.
func Listing(objs ...storage.ObjectInfo) <-chan storage.ObjectInfo {
	ch := make(chan storage.ObjectInfo, len(objs))
	for _, obj := range objs {
		ch <- obj
	}
	close(ch)
	return ch
}
