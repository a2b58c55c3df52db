package streams

import (
	"stream-manager/core/logger"
	"stream-manager/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for streams.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the stream routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/streams")
	group.Post("/fixup", h.HandleFixup)
}

// fixupRequest is the body of a fixup trigger.
type fixupRequest struct {
	UserID     uint64 `json:"user_id"`
	ProviderID uint64 `json:"provider_id"`
	Ignore     string `json:"ignore"`
	DryRun     bool   `json:"dry_run"`
}

// HandleFixup runs a metadata fixup and returns its report.
func (h *Handler) HandleFixup(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req fixupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	report, err := h.service.FixupSerialized(c.Context(), FixupParams{
		UserID:     req.UserID,
		ProviderID: req.ProviderID,
		Ignore:     reconcile.ParseFields(req.Ignore),
		DryRun:     req.DryRun,
	})
	if err != nil {
		l.Error("Stream fixup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Info("Stream fixup finished",
		zap.String("run_id", report.RunID),
		zap.Int("updated", report.Updated),
		zap.Int("failed", report.Failed))
	return c.JSON(report)
}
