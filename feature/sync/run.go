package sync

import (
	"context"
	"fmt"

	"bucket-sync/core/reconcile"
	"bucket-sync/core/storage"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Run connects to the storage described by cfg and pushes req.LocalDir.
// An empty req.Bucket falls back to cfg.Bucket. Events flow to sink; the
// returned error covers only failures that abort the pass.
func Run(ctx context.Context, cfg storage.Config, req Request, sink reconcile.Sink) error {
	if req.Bucket == "" {
		req.Bucket = cfg.Bucket
	}

	client, err := storage.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}

	svc := NewService(client, afero.NewOsFs(), zap.L(), nil, reconcile.DefaultWorkers)
	_, err = svc.Push(ctx, req, sink)
	return err
}
