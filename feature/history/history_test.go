package history

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"bucket-sync/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func runColumns() []string {
	return []string{"id", "run_id", "direction", "bucket", "prefix", "dry_run",
		"uploaded", "downloaded", "skipped", "deleted", "errors", "started_at", "finished_at"}
}

func TestRun_Emit(t *testing.T) {
	run := NewRun(reconcile.Push, "site", "www/", false)
	assert.Len(t, run.RunID, 36)
	assert.False(t, run.StartedAt.IsZero())

	for _, kind := range []reconcile.EventKind{
		reconcile.EventUploaded,
		reconcile.EventDryRunUpload,
		reconcile.EventDownloaded,
		reconcile.EventSkipped,
		reconcile.EventSkipped,
		reconcile.EventDeleted,
		reconcile.EventDryRunDelete,
		reconcile.EventError,
	} {
		run.Emit(reconcile.Event{Kind: kind, Key: "k"})
	}
	run.Finish()

	assert.Equal(t, 2, run.Uploaded)
	assert.Equal(t, 1, run.Downloaded)
	assert.Equal(t, 2, run.Skipped)
	assert.Equal(t, 2, run.Deleted)
	assert.Equal(t, 1, run.Errors)
	assert.False(t, run.FinishedAt.Before(run.StartedAt))
}

func TestRepository_Record(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `sync_runs`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	run := NewRun(reconcile.Push, "site", "", true)
	run.Finish()

	require.NoError(t, repo.Record(context.Background(), run))
	assert.Equal(t, uint(1), run.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_RecordError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `sync_runs`").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Record(context.Background(), NewRun(reconcile.Pull, "site", "", false))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestRepository_Recent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(runColumns()).
		AddRow(2, "run-2", "push", "site", "", false, 3, 0, 1, 0, 0, now, now).
		AddRow(1, "run-1", "pull", "site", "www/", true, 0, 2, 0, 1, 1, now.Add(-time.Hour), now.Add(-time.Hour))
	mock.ExpectQuery("SELECT \\* FROM `sync_runs` ORDER BY started_at DESC LIMIT").WillReturnRows(rows)

	runs, err := repo.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].RunID)
	assert.Equal(t, 3, runs[0].Uploaded)
	assert.Equal(t, "pull", runs[1].Direction)
	assert.True(t, runs[1].DryRun)
}

func TestHandleList(t *testing.T) {
	t.Run("Without Database", func(t *testing.T) {
		app := fiber.New()
		NewHandler(nil, zap.NewNop()).RegisterRoutes(app)

		resp, err := app.Test(httptest.NewRequest("GET", "/sync/history", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("Lists Runs", func(t *testing.T) {
		db, mock := setupMockDB(t)
		app := fiber.New()
		NewHandler(NewRepository(db), zap.NewNop()).RegisterRoutes(app)

		now := time.Now()
		mock.ExpectQuery("SELECT \\* FROM `sync_runs`").
			WillReturnRows(sqlmock.NewRows(runColumns()).
				AddRow(1, "run-1", "push", "site", "", false, 1, 0, 0, 0, 0, now, now))

		resp, err := app.Test(httptest.NewRequest("GET", "/sync/history?limit=5", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body struct {
			Runs []Run `json:"runs"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body.Runs, 1)
		assert.Equal(t, "run-1", body.Runs[0].RunID)
	})

	t.Run("Query Failure", func(t *testing.T) {
		db, mock := setupMockDB(t)
		app := fiber.New()
		NewHandler(NewRepository(db), zap.NewNop()).RegisterRoutes(app)

		mock.ExpectQuery("SELECT").WillReturnError(assert.AnError)

		resp, err := app.Test(httptest.NewRequest("GET", "/sync/history", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}

func TestLoader(t *testing.T) {
	feature := NewFeature(nil, zap.NewNop())

	assert.Equal(t, "history", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.Nil(t, feature.Repository())

	app := fiber.New()
	assert.NoError(t, feature.Load(app))
}
