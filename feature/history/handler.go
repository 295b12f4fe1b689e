package history

import (
	"bucket-sync/core/logger"
	"bucket-sync/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the journal.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler. repo may be nil.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// RegisterRoutes registers the history routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Get("/history", h.HandleList)
}

// HandleList returns the most recent runs.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	if h.repo == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "history journal requires a database",
		})
	}

	limit := utils.ToInt(c.Query("limit"))
	runs, err := h.repo.Recent(c.Context(), limit)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to load history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"runs": runs})
}
