package sync

import (
	"bucket-sync/core/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new sync feature serving the directory and target in
// defaults. journal may be nil.
func NewFeature(client storage.Client, fs afero.Fs, logger *zap.Logger, journal Journal, workers int, defaults Request) *Feature {
	svc := NewService(client, fs, logger, journal, workers)
	h := NewHandler(svc, defaults)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "sync"
}

// IsEnabled reports whether a local directory and bucket are configured.
func (f *Feature) IsEnabled() bool {
	return f.handler.defaults.Validate() == nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
