package matching

import (
	"errors"

	"licensee-matcher/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for matching runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the matching routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/match")
	group.Post("/", h.HandleMatch)
	group.Post("/combine", h.HandleCombine)
	group.Get("/counts", h.HandleCounts)
	group.Get("/runs", h.HandleRuns)
}

// HandleMatch runs both matching tracks and returns the run report.
// ?refresh=true reloads the report even when a cached copy is fresh.
func (h *Handler) HandleMatch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if c.QueryBool("refresh") {
		h.service.RefreshReport()
		l.Debug("Report cache dropped")
	}

	report, err := h.service.Match(c.Context())
	if err != nil {
		l.Error("Match run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(report)
}

// HandleCombine combines the stored track results.
func (h *Handler) HandleCombine(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Combine(c.Context())
	if err != nil {
		l.Error("Combine failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(report)
}

// HandleCounts returns the record count of every dataset under ?prefix=.
func (h *Handler) HandleCounts(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Count(c.Context(), c.Query("prefix"))
	if err != nil {
		l.Error("Count failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(report)
}

// HandleRuns returns the latest recorded outputs, ?limit= defaulting to 50.
func (h *Handler) HandleRuns(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 1000 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "limit must be between 1 and 1000",
		})
	}

	runs, err := h.service.Runs(c.Context(), limit)
	if errors.Is(err, ErrHistoryDisabled) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Run history query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(runs)
}
