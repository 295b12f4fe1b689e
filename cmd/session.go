package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"bucket-sync/core/config"
	"bucket-sync/core/database"
	"bucket-sync/core/logger"
	"bucket-sync/core/reconcile"
	"bucket-sync/core/storage"
	"bucket-sync/feature/history"
	bucketsync "bucket-sync/feature/sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// websiteDir is the generated site inside a bucket directory.
const websiteDir = "_website"

// session bundles everything a bucket directory command needs.
type session struct {
	cfg    *config.Config
	client storage.Client
	bucket string
	logger *zap.Logger
}

// openSession loads configuration, overlays the credentials found in
// bucketDir and creates a storage client for the bucket named after it.
func openSession(bucketDir string) (*session, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	creds, err := config.LoadCredentials(afero.NewOsFs(), bucketDir)
	if err != nil {
		return nil, err
	}
	creds.Apply(&cfg.Storage)

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &session{
		cfg:    cfg,
		client: client,
		bucket: bucketName(bucketDir),
		logger: l,
	}, nil
}

// service creates a sync service journaling to the database when enabled.
func (s *session) service(workers int) *bucketsync.Service {
	if workers <= 0 {
		workers = s.cfg.Sync.WorkerCount()
	}
	return bucketsync.NewService(s.client, afero.NewOsFs(), s.logger, openJournal(s.cfg.Database, s.logger), workers)
}

// bucketName is the base name of the bucket directory.
func bucketName(bucketDir string) string {
	return filepath.Base(filepath.Clean(bucketDir))
}

// openJournal connects the history journal. Failures are logged and the
// pass runs without a journal.
func openJournal(cfg database.Config, l *zap.Logger) bucketsync.Journal {
	if !cfg.Enabled {
		return nil
	}

	db, err := database.Connect(cfg)
	if err != nil {
		l.Warn("History journal unavailable", zap.Error(err))
		return nil
	}

	repo := history.NewRepository(db)
	if err := repo.Migrate(); err != nil {
		l.Warn("History journal migration failed", zap.Error(err))
		return nil
	}
	return repo
}

// signalContext is canceled on interrupt so no new actions start.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// printer renders sync events as terminal lines.
type printer struct {
	out     io.Writer
	verbose bool
	failed  int
}

func newPrinter(out io.Writer, verbose bool) *printer {
	return &printer{out: out, verbose: verbose}
}

// Emit prints e. Skips are shown only in verbose mode.
func (p *printer) Emit(e reconcile.Event) {
	switch e.Kind {
	case reconcile.EventUploaded:
		fmt.Fprintf(p.out, "Uploaded: %s\n", e.Key)
	case reconcile.EventDownloaded:
		fmt.Fprintf(p.out, "Downloaded: %s\n", e.Key)
	case reconcile.EventDeleted:
		fmt.Fprintf(p.out, "Deleted: %s\n", e.Key)
	case reconcile.EventDryRunUpload:
		fmt.Fprintf(p.out, "Dry run upload: %s\n", e.Key)
	case reconcile.EventDryRunDownload:
		fmt.Fprintf(p.out, "Dry run download: %s\n", e.Key)
	case reconcile.EventDryRunDelete:
		fmt.Fprintf(p.out, "Dry run delete: %s\n", e.Key)
	case reconcile.EventSkipped:
		if p.verbose {
			fmt.Fprintf(p.out, "Skipped: %s\n", e.Key)
		}
	case reconcile.EventError:
		p.failed++
		if e.Key == "" {
			fmt.Fprintf(p.out, "Error: %s\n", e.Detail)
		} else {
			fmt.Fprintf(p.out, "Error with %s: %s\n", e.Key, e.Detail)
		}
	}
}

// err reports the per-item failures seen so far as a single error.
func (p *printer) err() error {
	if p.failed == 0 {
		return nil
	}
	return fmt.Errorf("%d action(s) failed", p.failed)
}
