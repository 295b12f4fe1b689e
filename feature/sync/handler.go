package sync

import (
	"errors"
	"fmt"

	"bucket-sync/core/inventory"
	"bucket-sync/core/logger"
	"bucket-sync/core/reconcile"
	"bucket-sync/core/storage"
	"bucket-sync/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Report is the JSON body returned by the sync routes.
type Report struct {
	RunID     string                `json:"run_id"`
	Direction reconcile.Direction   `json:"direction"`
	DryRun    bool                  `json:"dry_run"`
	Summary   reconcile.PlanSummary `json:"summary"`
	Events    []reconcile.Event     `json:"events"`
}

// TriggerBody is the body accepted by POST /sync.
type TriggerBody struct {
	DryRun        bool  `json:"dry_run"`
	DeleteMissing *bool `json:"delete_missing"`
}

// Handler handles HTTP requests for sync passes.
type Handler struct {
	service  *Service
	defaults Request
	previews singleflight.Group
}

// NewHandler creates a new HTTP handler. defaults names the directory,
// bucket and prefix every request operates on.
func NewHandler(service *Service, defaults Request) *Handler {
	return &Handler{service: service, defaults: defaults}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Get("/plan", h.HandlePlan)
	group.Post("/", h.HandleTrigger)
}

// HandlePlan previews a push without changing the bucket.
// ?delete_missing= overrides the configured default for the preview.
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	req := h.defaults
	req.DryRun = true
	if v := c.Query("delete_missing"); v != "" {
		req.DeleteMissing = utils.ToBool(v)
	}

	l.Info("Previewing sync plan", zap.Bool("delete_missing", req.DeleteMissing))

	key := fmt.Sprintf("%s|%s|%s|%t", req.LocalDir, req.Bucket, req.Prefix, req.DeleteMissing)
	v, err, shared := h.previews.Do(key, func() (any, error) {
		return h.push(c, req)
	})
	if err != nil {
		return h.fail(c, l, err)
	}
	if shared {
		l.Debug("Shared plan preview with a concurrent request")
	}
	return c.JSON(v)
}

// HandleTrigger runs a push pass.
func (h *Handler) HandleTrigger(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var body TriggerBody
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body: " + err.Error()})
		}
	}

	req := h.defaults
	req.DryRun = body.DryRun
	if body.DeleteMissing != nil {
		req.DeleteMissing = *body.DeleteMissing
	}

	l.Info("Triggering sync", zap.Bool("dry_run", req.DryRun), zap.Bool("delete_missing", req.DeleteMissing))

	report, err := h.push(c, req)
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(report)
}

func (h *Handler) push(c *fiber.Ctx, req Request) (*Report, error) {
	events := &reconcile.Collector{}
	result, err := h.service.Push(c.Context(), req, events)
	if err != nil {
		return nil, err
	}
	return &Report{
		RunID:     result.Run.RunID,
		Direction: result.Plan.Direction,
		DryRun:    req.DryRun,
		Summary:   result.Plan.Summary,
		Events:    events.Events(),
	}, nil
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	l.Error("Sync pass failed", zap.Error(err))
	return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
}

// statusFor maps pass-aborting errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, storage.ErrBucketNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, storage.ErrAuth), errors.Is(err, storage.ErrConnectivity):
		return fiber.StatusBadGateway
	case errors.Is(err, inventory.ErrDirectoryNotFound):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
