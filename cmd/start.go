package cmd

import (
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"bucket-sync/core/config"
	"bucket-sync/core/database"
	"bucket-sync/core/loader"
	"bucket-sync/core/logger"
	"bucket-sync/core/middleware/auth"
	"bucket-sync/core/middleware/rayid"
	"bucket-sync/core/storage"

	"bucket-sync/feature/history"
	bucketsync "bucket-sync/feature/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var startBucketDir string

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sync HTTP server",
	Long: `Starts the HTTP server exposing plan previews, triggered syncs and the pass history.

The synchronized directory and bucket come from SYNC_LOCAL_DIR and STORAGE_BUCKET,
or from --bucket-dir which also supplies credentials.toml.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		if startBucketDir != "" {
			creds, err := config.LoadCredentials(afero.NewOsFs(), startBucketDir)
			if err != nil {
				log.Fatalf("Failed to load credentials: %v", err)
			}
			creds.Apply(&cfg.Storage)
			cfg.Storage.Bucket = bucketName(startBucketDir)
			if cfg.Sync.LocalDir == "" {
				cfg.Sync.LocalDir = filepath.Join(startBucketDir, websiteDir)
			}
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (Optional)
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			if cfg.Database.Enabled {
				logg.Warn("Optional database connection failed", zap.Error(err))
			}
		} else {
			db = conn
			logg.Info("Connected to history database", zap.String("driver", cfg.Database.Driver))
		}

		// 4. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 5. Register Features
		// History first so its table exists before sync passes are journaled
		hist := history.NewFeature(db, logg)
		var journal bucketsync.Journal
		if repo := hist.Repository(); repo != nil {
			journal = repo
		}

		mgr := loader.NewManager(logg)
		mgr.Register(hist)
		mgr.Register(bucketsync.NewFeature(store, afero.NewOsFs(), logg, journal, cfg.Sync.WorkerCount(), cfg.Sync.Request(cfg.Storage.Bucket)))

		// 6. Middleware
		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		if !cfg.Server.IsProtected() {
			logg.Warn("SERVER_API_KEY is empty, API is unprotected")
		}
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("address", cfg.Server.Address()),
				zap.String("bucket", cfg.Storage.Bucket),
				zap.String("local_dir", cfg.Sync.LocalDir),
			)
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	startCmd.Flags().StringVar(&startBucketDir, "bucket-dir", "", "Bucket directory providing credentials.toml and _website")
	RootCmd.AddCommand(startCmd)
}
