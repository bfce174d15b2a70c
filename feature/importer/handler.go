package importer

import (
	"patron-import/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for import runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the import routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/patron-import", h.HandleImport)
}

// HandleImport runs a full import for the posted record array.
//
// The response is the run summary. Individual record failures do not fail
// the request; only malformed input (400) or an unauthenticatable session
// (502) do.
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	records, err := ParseRecords(c.Body())
	if err != nil {
		l.Warn("rejecting unparsable import request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx := c.Context()

	if err := h.service.Login(ctx); err != nil {
		l.Error("identity service login failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("import request accepted", zap.Int("records", len(records)))

	tables := h.service.ResolveReferenceTables(ctx)
	summary, err := h.service.Run(ctx, records, tables)
	if err != nil {
		l.Error("import run aborted", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(summary)
}
