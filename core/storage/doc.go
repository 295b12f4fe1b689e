// Package storage provides an abstraction layer for S3-compatible object storage.
//
// It is the transfer boundary of the sync engine: everything the engine needs
// from a remote bucket (existence check, paginated listing, head, put, get and
// delete) goes through the Client interface. Two implementations exist:
//
//   - minio: wraps the MinIO Go client (default). Works with AWS S3, MinIO,
//     Cloudflare R2 and Backblaze B2.
//   - s3: wraps the AWS SDK for Go v2.
//
// Credential shape, endpoint, region and addressing style are configuration
// concerns handled here; the engine never sees them.
//
// # Errors
//
// Provider errors are classified into sentinel errors so callers can decide
// between fatal and per-item handling with errors.Is:
//
//   - ErrBucketNotFound: the bucket is missing (permanent).
//   - ErrAuth: the credentials were rejected.
//   - ErrConnectivity: the endpoint could not be reached.
//   - ErrObjectNotFound: a single object is missing.
//
// # Usage
//
//	client, err := storage.NewClient(cfg)
//	if err := storage.Connect(ctx, client, "assets"); err != nil {
//	    return err
//	}
//	for obj := range client.ListObjects(ctx, "assets", "site/") {
//	    if obj.Err != nil {
//	        return obj.Err
//	    }
//	}
package storage
