package reconcile

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"sync"
	"sync/atomic"

	"bucket-sync/core/logger"
	"bucket-sync/core/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Executor applies plans against a bucket prefix and a local filesystem.
type Executor struct {
	// Client performs remote calls.
	Client storage.Client
	// FS is the local filesystem.
	FS afero.Fs
	// Bucket is the remote bucket.
	Bucket string
	// Prefix is prepended to every relative key to form the object key.
	Prefix string
	// Workers bounds concurrent actions. Zero means DefaultWorkers.
	Workers int
	// Logger receives per-action diagnostics. Nil disables logging.
	Logger *zap.Logger
}

// Apply performs every action in plan and emits one event per action.
// Per-action failures become error events and do not stop the pass.
// It returns the number of actions performed and, if ctx was cancelled
// before every action was dispatched, the context error.
func (e *Executor) Apply(ctx context.Context, plan *Plan, sink Sink) (int, error) {
	sink = Serialize(sink)
	log := e.Logger
	if log == nil {
		log = logger.Nop()
	}

	workers := e.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	// In-flight transfers are allowed to finish after cancellation.
	work := context.WithoutCancel(ctx)

	var (
		wg       sync.WaitGroup
		executed atomic.Int64
		sem      = make(chan struct{}, workers)
	)

	for _, action := range plan.Actions {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
		}
		// Checked after a slot is free so a cancel during the wait is seen.
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return int(executed.Load()), err
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			event := e.run(work, plan.Direction, action)
			if event.Kind == EventError {
				log.Warn("Sync action failed",
					zap.String("key", action.Key),
					zap.String("action", string(action.Type)),
					zap.String("error", event.Detail))
			} else {
				log.Debug("Sync action",
					zap.String("key", action.Key),
					zap.String("event", string(event.Kind)),
					zap.String("reason", action.Reason))
			}
			sink.Emit(event)
			executed.Add(1)
		}()
	}

	wg.Wait()
	return int(executed.Load()), nil
}

func (e *Executor) run(ctx context.Context, dir Direction, a Action) Event {
	switch a.Type {
	case ActionSkip:
		return Event{Kind: EventSkipped, Key: a.Key}

	case ActionFail:
		return errorEvent(a.Key, a.Err)

	case ActionUpload:
		if a.DryRun {
			return Event{Kind: EventDryRunUpload, Key: a.Key}
		}
		if err := e.upload(ctx, a); err != nil {
			return errorEvent(a.Key, err)
		}
		return Event{Kind: EventUploaded, Key: a.Key}

	case ActionDownload:
		if a.DryRun {
			return Event{Kind: EventDryRunDownload, Key: a.Key}
		}
		if err := e.download(ctx, a); err != nil {
			return errorEvent(a.Key, err)
		}
		return Event{Kind: EventDownloaded, Key: a.Key}

	case ActionDelete:
		if a.DryRun {
			return Event{Kind: EventDryRunDelete, Key: a.Key}
		}
		var err error
		if dir == Pull {
			err = e.FS.Remove(a.LocalPath)
		} else {
			err = e.Client.RemoveObject(ctx, e.Bucket, e.Prefix+a.Key)
		}
		if err != nil {
			return errorEvent(a.Key, err)
		}
		return Event{Kind: EventDeleted, Key: a.Key}
	}

	return errorEvent(a.Key, fmt.Errorf("unknown action %q", a.Type))
}

func (e *Executor) upload(ctx context.Context, a Action) error {
	f, err := e.FS.Open(a.LocalPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", a.LocalPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", a.LocalPath, err)
	}

	contentType, err := detectContentType(a.Key, f)
	if err != nil {
		return fmt.Errorf("failed to detect content type of %s: %w", a.LocalPath, err)
	}

	err = e.Client.PutObject(ctx, e.Bucket, e.Prefix+a.Key, f, info.Size(), storage.PutOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload: %w", err)
	}
	return nil
}

// download writes the object to a temporary file next to the target and
// renames it into place, so a failed transfer never leaves a truncated file.
func (e *Executor) download(ctx context.Context, a Action) error {
	body, err := e.Client.GetObject(ctx, e.Bucket, e.Prefix+a.Key)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer body.Close()

	dir := filepath.Dir(a.LocalPath)
	if err := e.FS.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(e.FS, dir, ".bucket-sync-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, body); err != nil {
		_ = tmp.Close()
		_ = e.FS.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", a.LocalPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = e.FS.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", a.LocalPath, err)
	}
	if err := e.FS.Rename(tmpName, a.LocalPath); err != nil {
		_ = e.FS.Remove(tmpName)
		return fmt.Errorf("failed to move %s into place: %w", a.LocalPath, err)
	}
	return nil
}

// detectContentType resolves the Content-Type from the key's extension and
// falls back to sniffing the file header. The reader is rewound afterwards.
func detectContentType(key string, f io.ReadSeeker) (string, error) {
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct, nil
	}

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return mt.String(), nil
}

func errorEvent(key string, err error) Event {
	detail := "unknown error"
	if err != nil {
		detail = err.Error()
	}
	return Event{Kind: EventError, Key: key, Detail: detail}
}
