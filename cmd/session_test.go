package cmd

import (
	"bytes"
	"testing"

	"bucket-sync/core/database"
	"bucket-sync/core/reconcile"
	"bucket-sync/feature/history"
	bucketsync "bucket-sync/feature/sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, false)

	p.Emit(reconcile.Event{Kind: reconcile.EventUploaded, Key: "index.html"})
	p.Emit(reconcile.Event{Kind: reconcile.EventSkipped, Key: "style.css"})
	p.Emit(reconcile.Event{Kind: reconcile.EventDeleted, Key: "old.html"})
	p.Emit(reconcile.Event{Kind: reconcile.EventDryRunUpload, Key: "new.html"})
	p.Emit(reconcile.Event{Kind: reconcile.EventDryRunDelete, Key: "gone.html"})
	p.Emit(reconcile.Event{Kind: reconcile.EventError, Key: "bad.bin", Detail: "access denied"})

	assert.Equal(t, "Uploaded: index.html\n"+
		"Deleted: old.html\n"+
		"Dry run upload: new.html\n"+
		"Dry run delete: gone.html\n"+
		"Error with bad.bin: access denied\n", buf.String())
	assert.EqualError(t, p.err(), "1 action(s) failed")
}

func TestPrinter_Verbose(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, true)

	p.Emit(reconcile.Event{Kind: reconcile.EventSkipped, Key: "style.css"})
	p.Emit(reconcile.Event{Kind: reconcile.EventDownloaded, Key: "a.txt"})
	p.Emit(reconcile.Event{Kind: reconcile.EventDryRunDownload, Key: "b.txt"})

	assert.Equal(t, "Skipped: style.css\nDownloaded: a.txt\nDry run download: b.txt\n", buf.String())
	assert.NoError(t, p.err())
}

func TestBucketName(t *testing.T) {
	assert.Equal(t, "example.com", bucketName("buckets/example.com"))
	assert.Equal(t, "example.com", bucketName("buckets/example.com/"))
}

func TestPassFlags_Request(t *testing.T) {
	f := passFlags{prefix: "docs", delete: true, dryRun: true}
	assert.Equal(t, bucketsync.Request{
		LocalDir:      "site/_website",
		Bucket:        "site",
		Prefix:        "docs",
		DeleteMissing: true,
		DryRun:        true,
	}, f.request("site/_website", "site"))
}

func TestPrintSummary_ReportsOutcome(t *testing.T) {
	var buf bytes.Buffer
	run := history.NewRun(reconcile.Push, "site", "", false)
	run.Emit(reconcile.Event{Kind: reconcile.EventUploaded, Key: "a.html"})
	run.Emit(reconcile.Event{Kind: reconcile.EventError, Key: "b.html", Detail: "access denied"})
	run.Emit(reconcile.Event{Kind: reconcile.EventSkipped, Key: "c.html"})

	res := &bucketsync.Result{
		Plan: &reconcile.Plan{
			Direction: reconcile.Push,
			Summary:   reconcile.PlanSummary{Uploads: 2, Skips: 1, BytesToTransfer: 2048},
		},
		Run: run,
	}

	printSummary(&buf, res)
	assert.Equal(t, "1 uploaded, 0 downloaded, 1 skipped, 0 deleted, 1 errors (2.0 kB planned)\n", buf.String())
}

func TestPrintSummary_DryRun(t *testing.T) {
	var buf bytes.Buffer
	res := &bucketsync.Result{
		Plan: &reconcile.Plan{
			Direction: reconcile.Push,
			Summary:   reconcile.PlanSummary{Uploads: 2, Skips: 3, Deletes: 1, BytesToTransfer: 2048},
		},
		Run: history.NewRun(reconcile.Push, "site", "", true),
	}

	printSummary(&buf, res)
	assert.Equal(t, "Dry run: 2 uploads, 0 downloads, 3 skipped, 1 deletes, 0 failures (2.0 kB to transfer)\n", buf.String())
}

func TestOpenJournal_Disabled(t *testing.T) {
	assert.Nil(t, openJournal(database.Config{Enabled: false}, nil))
}

func TestOpenSession_MissingCredentials(t *testing.T) {
	configPath = t.TempDir()
	t.Cleanup(func() { configPath = "." })

	_, err := openSession(t.TempDir())
	require.Error(t, err)
	assert.ErrorContains(t, err, "credentials file not found")
}

func TestRootCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range RootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"upload", "download", "plan", "stat", "history", "start"} {
		assert.True(t, names[want], want)
	}
}
