package sync

import "bucket-sync/core/reconcile"

// Config holds the sync section of the application configuration.
type Config struct {
	// LocalDir is the directory served by the HTTP routes.
	LocalDir string `mapstructure:"local_dir" default:""`
	// Prefix is the remote directory inside the bucket.
	Prefix string `mapstructure:"prefix" default:""`
	// Workers bounds fingerprinting and transfer concurrency.
	Workers int `mapstructure:"workers" default:"4"`
	// DeleteMissing removes remote keys that no longer exist locally.
	DeleteMissing bool `mapstructure:"delete_missing" default:"false"`
}

// Request builds the default request for bucket.
func (c Config) Request(bucket string) Request {
	return Request{
		LocalDir:      c.LocalDir,
		Bucket:        bucket,
		Prefix:        c.Prefix,
		DeleteMissing: c.DeleteMissing,
	}
}

// WorkerCount returns Workers, or the default when it is not positive.
func (c Config) WorkerCount() int {
	if c.Workers <= 0 {
		return reconcile.DefaultWorkers
	}
	return c.Workers
}
