package history

import (
	"time"

	"bucket-sync/core/reconcile"

	"github.com/google/uuid"
)

// Run is one journaled sync pass.
type Run struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	RunID      string    `gorm:"column:run_id;size:36;uniqueIndex" json:"run_id"`
	Direction  string    `gorm:"column:direction;size:8" json:"direction"`
	Bucket     string    `gorm:"column:bucket;size:255" json:"bucket"`
	Prefix     string    `gorm:"column:prefix;size:1024" json:"prefix"`
	DryRun     bool      `gorm:"column:dry_run" json:"dry_run"`
	Uploaded   int       `gorm:"column:uploaded" json:"uploaded"`
	Downloaded int       `gorm:"column:downloaded" json:"downloaded"`
	Skipped    int       `gorm:"column:skipped" json:"skipped"`
	Deleted    int       `gorm:"column:deleted" json:"deleted"`
	Errors     int       `gorm:"column:errors" json:"errors"`
	StartedAt  time.Time `gorm:"column:started_at;index" json:"started_at"`
	FinishedAt time.Time `gorm:"column:finished_at" json:"finished_at"`
}

// TableName returns the table name for GORM.
func (Run) TableName() string {
	return "sync_runs"
}

// NewRun starts a journal entry with a fresh run id.
func NewRun(direction reconcile.Direction, bucket, prefix string, dryRun bool) *Run {
	return &Run{
		RunID:     uuid.NewString(),
		Direction: string(direction),
		Bucket:    bucket,
		Prefix:    prefix,
		DryRun:    dryRun,
		StartedAt: time.Now().UTC(),
	}
}

// Emit counts e. Dry-run events count toward the action they preview.
// Calls must be serialized, which reconcile.Executor guarantees.
func (r *Run) Emit(e reconcile.Event) {
	switch e.Kind {
	case reconcile.EventUploaded, reconcile.EventDryRunUpload:
		r.Uploaded++
	case reconcile.EventDownloaded, reconcile.EventDryRunDownload:
		r.Downloaded++
	case reconcile.EventSkipped:
		r.Skipped++
	case reconcile.EventDeleted, reconcile.EventDryRunDelete:
		r.Deleted++
	case reconcile.EventError:
		r.Errors++
	}
}

// Finish stamps the end of the pass.
func (r *Run) Finish() {
	r.FinishedAt = time.Now().UTC()
}
