package handlers

import (
	"rentdir/internal/models"
	"rentdir/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AlertHandler handles HTTP requests for alerts.
type AlertHandler struct {
	service  *services.AlertService
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(service *services.AlertService, logger *zap.SugaredLogger) *AlertHandler {
	return &AlertHandler{
		service:  service,
		validate: newValidator(),
		logger:   orNop(logger),
	}
}

// RegisterRoutes registers the alert routes with the Fiber app.
func (h *AlertHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	alertRoutes := router.Group("/alerts", auth)
	alertRoutes.Get("/", h.HandleListAlerts)
	alertRoutes.Post("/", h.HandleCreateAlert)
	alertRoutes.Get("/:id", h.HandleGetAlert)
	alertRoutes.Patch("/:id", h.HandleUpdateAlert)
	alertRoutes.Delete("/:id", h.HandleDeleteAlert)
	alertRoutes.Get("/:id/matches", h.HandleAlertMatches)
}

func (h *AlertHandler) HandleListAlerts(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, h.logger, "Not authenticated", err)
	}
	alerts, err := h.service.ListAlerts(c.UserContext(), userID)
	if err != nil {
		return fail(c, h.logger, "Could not retrieve alerts", err)
	}
	return c.JSON(alerts)
}

// AlertRequest represents the request body for a new alert. Enabled
// defaults to true.
type AlertRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Enabled *bool  `json:"enabled"`
	CriteriaRequest
}

func (h *AlertHandler) HandleCreateAlert(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, h.logger, "Not authenticated", err)
	}

	var req AlertRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	alert := models.Alert{
		UserID:         userID,
		Name:           req.Name,
		SearchCriteria: req.criteria(),
		Enabled:        req.Enabled == nil || *req.Enabled,
	}
	if err := h.service.CreateAlert(c.UserContext(), &alert); err != nil {
		return fail(c, h.logger, "Could not create alert", err)
	}
	return c.Status(fiber.StatusCreated).JSON(alert)
}

func (h *AlertHandler) HandleGetAlert(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, h.logger, "Not authenticated", err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, h.logger, "Invalid alert id", err)
	}

	alert, err := h.service.GetAlert(c.UserContext(), id, userID)
	if err != nil {
		return fail(c, h.logger, "Alert not found", err)
	}
	return c.JSON(alert)
}

// HandleUpdateAlert applies a partial update. A filters map in the body
// replaces the stored one.
func (h *AlertHandler) HandleUpdateAlert(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, h.logger, "Not authenticated", err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, h.logger, "Invalid alert id", err)
	}

	var patch models.AlertPatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(patch); err != nil {
		return validationFailed(c, err)
	}

	alert, err := h.service.UpdateAlert(c.UserContext(), id, userID, patch)
	if err != nil {
		return fail(c, h.logger, "Could not update alert", err)
	}
	return c.JSON(alert)
}

func (h *AlertHandler) HandleDeleteAlert(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, h.logger, "Not authenticated", err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, h.logger, "Invalid alert id", err)
	}

	if err := h.service.DeleteAlert(c.UserContext(), id, userID); err != nil {
		return fail(c, h.logger, "Alert not found", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAlertMatches lists the current listings the alert selects.
func (h *AlertHandler) HandleAlertMatches(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, h.logger, "Not authenticated", err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, h.logger, "Invalid alert id", err)
	}

	props, err := h.service.Matches(c.UserContext(), id, userID)
	if err != nil {
		return fail(c, h.logger, "Could not match alert", err)
	}
	return c.JSON(props)
}
