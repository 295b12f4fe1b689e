package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type minioClient struct {
	client *minio.Client
}

func newMinioClient(cfg Config, transport http.RoundTripper) (Client, error) {
	// Minio expects endpoint without scheme
	endpoint, secure := splitEndpoint(cfg.Endpoint, cfg.UseSSL)

	creds := credentials.NewEnvAWS()
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		creds = credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, cfg.SessionToken)
	}

	lookup := minio.BucketLookupAuto
	if cfg.PathStyle {
		lookup = minio.BucketLookupPath
	}

	mc, err := minio.New(endpoint, &minio.Options{
		Creds:        creds,
		Secure:       secure,
		Region:       cfg.Region,
		Transport:    transport,
		BucketLookup: lookup,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	// Note: Minio client performs lazy connection; Connect issues the first request.

	return &minioClient{client: mc}, nil
}

func (c *minioClient) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	exists, err := c.client.BucketExists(ctx, bucketName)
	if err != nil {
		return false, classifyMinio(err)
	}
	return exists, nil
}

func (c *minioClient) ListObjects(ctx context.Context, bucketName, prefix string) <-chan ObjectInfo {
	out := make(chan ObjectInfo)

	go func() {
		defer close(out)

		opts := minio.ListObjectsOptions{
			Prefix:    prefix,
			Recursive: true,
		}

		for obj := range c.client.ListObjects(ctx, bucketName, opts) {
			info := ObjectInfo{
				Key:          obj.Key,
				ETag:         trimETag(obj.ETag),
				Size:         obj.Size,
				LastModified: obj.LastModified,
			}
			if obj.Err != nil {
				info = ObjectInfo{Err: classifyMinio(obj.Err)}
			}

			select {
			case out <- info:
			case <-ctx.Done():
				return
			}

			if info.Err != nil {
				return
			}
		}
	}()

	return out
}

func (c *minioClient) StatObject(ctx context.Context, bucketName, objectName string) (ObjectInfo, error) {
	obj, err := c.client.StatObject(ctx, bucketName, objectName, minio.StatObjectOptions{})
	if err != nil {
		return ObjectInfo{}, classifyMinio(err)
	}
	return ObjectInfo{
		Key:          obj.Key,
		ETag:         trimETag(obj.ETag),
		Size:         obj.Size,
		LastModified: obj.LastModified,
	}, nil
}

func (c *minioClient) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts PutOptions) error {
	_, err := c.client.PutObject(ctx, bucketName, objectName, reader, objectSize, minioPutOptions(objectSize, opts))
	return classifyMinio(err)
}

// minioPutOptions keeps uploads up to MaxSinglePutSize in a single PUT so
// the stored ETag stays the plain MD5 of the content.
func minioPutOptions(objectSize int64, opts PutOptions) minio.PutObjectOptions {
	return minio.PutObjectOptions{
		ContentType:      opts.ContentType,
		DisableMultipart: objectSize >= 0 && objectSize <= MaxSinglePutSize,
	}
}

func (c *minioClient) GetObject(ctx context.Context, bucketName, objectName string) (io.ReadCloser, error) {
	obj, err := c.client.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, classifyMinio(err)
	}
	// GetObject is lazy; Stat surfaces a missing object before the caller creates files.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, classifyMinio(err)
	}
	return obj, nil
}

func (c *minioClient) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	return classifyMinio(c.client.RemoveObject(ctx, bucketName, objectName, minio.RemoveObjectOptions{}))
}

func classifyMinio(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	return classify(err, resp.Code, resp.StatusCode)
}
