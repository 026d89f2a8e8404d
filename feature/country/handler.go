package country

import (
	"errors"
	"strconv"

	"geotree/core/logger"
	"geotree/core/taxonomy"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for countries.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the country routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/countries")
	group.Get("/", h.HandleList)
	group.Post("/import", h.HandleImport)
	group.Get("/import/plan", h.HandlePlan)
	group.Get("/:id", h.HandleGet)
}

// HandleList lists every country, named in the language given by ?lang.
// @Summary List Countries
// @Description List every country term, named in the requested language with fallback to the term's default.
// @Tags countries
// @Accept json
// @Produce json
// @Param lang query string false "Langcode of the names (e.g. 'de')"
// @Success 200 {object} map[string]interface{} "Count and countries"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /countries [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	countries, err := h.service.List(c.Context(), c.Query("lang"))
	if err != nil {
		l.Error("Country list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"count":     len(countries),
		"countries": countries,
	})
}

// HandleGet returns one country with all translations.
// @Summary Get Country
// @Description Get one country term with all of its translations.
// @Tags countries
// @Accept json
// @Produce json
// @Param id path int true "Term ID"
// @Success 200 {object} country.CountryDetail "Country"
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /countries/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := strconv.ParseUint(c.Params("id"), 10, 0)
	if err != nil || id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid country id"})
	}

	detail, err := h.service.Get(c.Context(), uint(id))
	if errors.Is(err, taxonomy.ErrTermNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Country lookup failed", zap.Uint64("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(detail)
}

// HandleImport runs a full import and returns its summary.
// Responds 409 while another import is running.
// @Summary Import Countries
// @Description Fetch the country dataset and create or update one term per country. Invalid records are skipped and reported.
// @Tags countries
// @Accept json
// @Produce json
// @Success 200 {object} country.Summary "Import Summary"
// @Failure 409 {object} map[string]string "Import already running"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 502 {object} map[string]string "Source unreachable or malformed"
// @Router /countries/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering country import")

	summary, err := h.service.Import(c.Context())
	if errors.Is(err, ErrImportRunning) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Country import failed", zap.Error(err))
		return c.Status(sourceErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(summary)
}

// HandlePlan reports what an import would change without writing.
// @Summary Plan Country Import
// @Description Fetch the country dataset and report the creates and updates an import would perform, without writing.
// @Tags countries
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Plan and invalid records"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 502 {object} map[string]string "Source unreachable or malformed"
// @Router /countries/import/plan [get]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	plan, failures, err := h.service.Plan(c.Context())
	if err != nil {
		l.Error("Country import plan failed", zap.Error(err))
		return c.Status(sourceErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"plan":     plan,
		"failures": failures,
	})
}

// sourceErrorStatus maps an unreachable or malformed source to 502.
func sourceErrorStatus(err error) int {
	var fetchErr *FetchError
	var decodeErr *DecodeError
	if errors.As(err, &fetchErr) || errors.As(err, &decodeErr) {
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}
