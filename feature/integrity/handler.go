package integrity

import (
	"geotree/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/translations", h.HandleTranslationsCheck)
	group.Get("/snapshots", h.HandleSnapshotsCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs all available integrity checks (Schema, Translations, Snapshots).
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	return c.JSON(h.service.Report(c.Context()))
}

// HandleSchemaCheck checks the taxonomy tables.
// @Summary Check Schema
// @Description Verify that the taxonomy tables exist with the expected columns.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting schema check")

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}

// HandleTranslationsCheck checks that every term is translated into every registry language.
// @Summary Check Translations
// @Description Verify that every country term has exactly one translation per registered language.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.TranslationReport "Translation Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/translations [get]
func (h *Handler) HandleTranslationsCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting translation check")

	report, err := h.service.CheckTranslations(c.Context())
	if err != nil {
		l.Error("Translation check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.Matched {
		l.Warn("Terms with incomplete translations detected", zap.Int("count", len(report.Gaps)))
	}
	return c.JSON(report)
}

// HandleSnapshotsCheck reports archived snapshots. 404 when archiving is not configured.
// @Summary Check Snapshots
// @Description Verify the snapshot bucket and report the archived country documents.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.SnapshotReport "Snapshot Report"
// @Failure 404 {object} map[string]string "Snapshots disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/snapshots [get]
func (h *Handler) HandleSnapshotsCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if !h.service.SnapshotsEnabled() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "snapshots are disabled"})
	}

	report, err := h.service.CheckSnapshots(c.Context())
	if err != nil {
		l.Error("Snapshot check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}
