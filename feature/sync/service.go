package sync

import (
	"context"
	"errors"
	"fmt"
	"os"

	"bucket-sync/core/inventory"
	"bucket-sync/core/logger"
	"bucket-sync/core/reconcile"
	"bucket-sync/core/storage"
	"bucket-sync/feature/history"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Journal stores finished passes.
type Journal interface {
	Record(ctx context.Context, run *history.Run) error
}

// Result describes a finished pass.
type Result struct {
	// Plan is the plan that was executed.
	Plan *reconcile.Plan `json:"plan"`
	// Run holds the event counts and timing of the pass.
	Run *history.Run `json:"run"`
	// Executed is the number of actions that ran.
	Executed int `json:"executed"`
}

// Failed reports whether any action ended in an error event.
func (r *Result) Failed() bool {
	return r != nil && r.Run != nil && r.Run.Errors > 0
}

// Service runs sync passes.
type Service struct {
	client  storage.Client
	fs      afero.Fs
	logger  *zap.Logger
	journal Journal
	workers int
}

// NewService creates a new sync service. journal may be nil.
func NewService(client storage.Client, fs afero.Fs, l *zap.Logger, journal Journal, workers int) *Service {
	if l == nil {
		l = logger.Nop()
	}
	return &Service{
		client:  client,
		fs:      fs,
		logger:  l,
		journal: journal,
		workers: workers,
	}
}

// Push makes the bucket prefix mirror req.LocalDir.
// It fails with inventory.ErrDirectoryNotFound, storage.ErrBucketNotFound,
// storage.ErrAuth or storage.ErrConnectivity before any action runs.
func (s *Service) Push(ctx context.Context, req Request, sink reconcile.Sink) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := inventory.CheckDir(s.fs, req.LocalDir); err != nil {
		return nil, err
	}
	return s.pass(ctx, reconcile.Push, req, sink)
}

// Pull makes req.LocalDir mirror the bucket prefix. The directory is created
// when missing, except on dry runs where it is treated as empty.
func (s *Service) Pull(ctx context.Context, req Request, sink reconcile.Sink) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	err := inventory.CheckDir(s.fs, req.LocalDir)
	switch {
	case err == nil:
	case errors.Is(err, inventory.ErrDirectoryNotFound) && !isFile(s.fs, req.LocalDir):
		if !req.DryRun {
			if err := s.fs.MkdirAll(req.LocalDir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create %s: %w", req.LocalDir, err)
			}
		}
	default:
		return nil, err
	}

	return s.pass(ctx, reconcile.Pull, req, sink)
}

func (s *Service) pass(ctx context.Context, dir reconcile.Direction, req Request, sink reconcile.Sink) (*Result, error) {
	prefix := NormalizePrefix(req.Prefix)
	log := s.logger.With(
		zap.String("direction", string(dir)),
		zap.String("bucket", req.Bucket),
		zap.String("prefix", prefix),
		zap.Bool("dry_run", req.DryRun),
	)

	// 1. Verify bucket and credentials
	if err := storage.Connect(ctx, s.client, req.Bucket); err != nil {
		return nil, err
	}

	// 2. Take the complete remote listing
	remote, err := inventory.Remote(ctx, s.client, req.Bucket, prefix)
	if err != nil {
		return nil, err
	}

	// 3. Walk the local tree
	var local []inventory.LocalEntry
	if exists, _ := afero.DirExists(s.fs, req.LocalDir); exists {
		local, err = inventory.Local(s.fs, req.LocalDir)
		if err != nil {
			return nil, err
		}
	}

	// 4. Plan
	opts := reconcile.Options{
		Direction:     dir,
		DeleteMissing: req.DeleteMissing,
		DryRun:        req.DryRun,
		Workers:       s.workers,
	}
	plan, err := reconcile.BuildPlan(ctx, s.fs, reconcile.Inventories{
		Root:   req.LocalDir,
		Local:  local,
		Remote: remote,
	}, opts)
	if err != nil {
		return nil, err
	}

	log.Info("Sync pass started",
		zap.Int("local", len(local)),
		zap.Int("remote", len(remote)),
		zap.Int("actions", len(plan.Actions)),
	)

	// 5. Execute
	run := history.NewRun(dir, req.Bucket, prefix, req.DryRun)
	exec := &reconcile.Executor{
		Client:  s.client,
		FS:      s.fs,
		Bucket:  req.Bucket,
		Prefix:  prefix,
		Workers: s.workers,
		Logger:  log,
	}
	executed, applyErr := exec.Apply(ctx, plan, reconcile.Tee(sink, run))
	run.Finish()

	log.Info("Sync pass finished",
		zap.String("run_id", run.RunID),
		zap.Int("executed", executed),
		zap.Int("uploaded", run.Uploaded),
		zap.Int("downloaded", run.Downloaded),
		zap.Int("skipped", run.Skipped),
		zap.Int("deleted", run.Deleted),
		zap.Int("errors", run.Errors),
		zap.Duration("took", run.FinishedAt.Sub(run.StartedAt)),
	)

	// 6. Journal (never fails the pass)
	if s.journal != nil {
		if err := s.journal.Record(context.WithoutCancel(ctx), run); err != nil {
			log.Warn("Failed to record sync pass", zap.Error(err))
		}
	}

	return &Result{Plan: plan, Run: run, Executed: executed}, applyErr
}

func isFile(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	if err != nil {
		return !errors.Is(err, os.ErrNotExist)
	}
	return !info.IsDir()
}
