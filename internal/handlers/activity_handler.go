package handlers

import (
	"strconv"

	"rentdir/internal/models"
	"rentdir/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ActivityHandler handles HTTP requests for the activity feed.
type ActivityHandler struct {
	service  *services.ActivityService
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(service *services.ActivityService, logger *zap.SugaredLogger) *ActivityHandler {
	return &ActivityHandler{
		service:  service,
		validate: newValidator(),
		logger:   orNop(logger),
	}
}

// RegisterRoutes registers the activity routes with the Fiber app.
func (h *ActivityHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	activityRoutes := router.Group("/activities", auth)
	activityRoutes.Get("/", h.HandleRecentActivities)
	activityRoutes.Post("/", h.HandleRecordActivity)
}

// HandleRecentActivities returns the newest activities; ?limit overrides the
// default page size.
func (h *ActivityHandler) HandleRecentActivities(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, h.logger, "Not authenticated", err)
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid limit",
			})
		}
	}

	activities, err := h.service.Recent(c.UserContext(), userID, limit)
	if err != nil {
		return fail(c, h.logger, "Could not retrieve activities", err)
	}
	return c.JSON(activities)
}

// ActivityRequest represents the request body for recording an activity.
type ActivityRequest struct {
	Type       models.ActivityType `json:"type" validate:"required,oneof=favorite search view alert"`
	PropertyID *int64              `json:"propertyId" validate:"omitempty,gt=0"`
	Details    map[string]any      `json:"details"`
}

func (h *ActivityHandler) HandleRecordActivity(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, h.logger, "Not authenticated", err)
	}

	var req ActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	activity := models.Activity{
		UserID:     userID,
		Type:       req.Type,
		PropertyID: req.PropertyID,
		Details:    req.Details,
	}
	if err := h.service.Record(c.UserContext(), &activity); err != nil {
		return fail(c, h.logger, "Could not record activity", err)
	}
	return c.Status(fiber.StatusCreated).JSON(activity)
}
