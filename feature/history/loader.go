package history

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	repo    *Repository
	handler *Handler
}

// NewFeature creates the history feature. db may be nil, in which case the
// routes report the journal as unavailable.
func NewFeature(db *gorm.DB, logger *zap.Logger) *Feature {
	var repo *Repository
	if db != nil {
		repo = NewRepository(db)
	}
	return &Feature{repo: repo, handler: NewHandler(repo, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "history"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load migrates the journal table and registers the routes.
func (f *Feature) Load(app fiber.Router) error {
	if f.repo != nil {
		if err := f.repo.Migrate(); err != nil {
			return err
		}
	}
	f.handler.RegisterRoutes(app)
	return nil
}

// Repository returns the journal, or nil without a database.
func (f *Feature) Repository() *Repository {
	return f.repo
}
