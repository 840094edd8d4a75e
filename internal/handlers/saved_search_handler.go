package handlers

import (
	"rentdir/internal/models"
	"rentdir/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SavedSearchHandler handles HTTP requests for saved searches.
type SavedSearchHandler struct {
	service  *services.SavedSearchService
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

// NewSavedSearchHandler creates a new SavedSearchHandler.
func NewSavedSearchHandler(service *services.SavedSearchService, logger *zap.SugaredLogger) *SavedSearchHandler {
	return &SavedSearchHandler{
		service:  service,
		validate: newValidator(),
		logger:   orNop(logger),
	}
}

// RegisterRoutes registers the saved search routes with the Fiber app.
func (h *SavedSearchHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	searchRoutes := router.Group("/saved-searches", auth)
	searchRoutes.Get("/", h.HandleListSavedSearches)
	searchRoutes.Post("/", h.HandleCreateSavedSearch)
	searchRoutes.Get("/:id", h.HandleGetSavedSearch)
	searchRoutes.Delete("/:id", h.HandleDeleteSavedSearch)
	searchRoutes.Get("/:id/results", h.HandleSavedSearchResults)
}

func (h *SavedSearchHandler) HandleListSavedSearches(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, h.logger, "Not authenticated", err)
	}
	searches, err := h.service.ListSavedSearches(c.UserContext(), userID)
	if err != nil {
		return fail(c, h.logger, "Could not retrieve saved searches", err)
	}
	return c.JSON(searches)
}

// SavedSearchRequest represents the request body for saving a search.
type SavedSearchRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	CriteriaRequest
}

func (h *SavedSearchHandler) HandleCreateSavedSearch(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, h.logger, "Not authenticated", err)
	}

	var req SavedSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	saved := models.SavedSearch{UserID: userID, Name: req.Name, SearchCriteria: req.criteria()}
	if err := h.service.CreateSavedSearch(c.UserContext(), &saved); err != nil {
		return fail(c, h.logger, "Could not save search", err)
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

func (h *SavedSearchHandler) HandleGetSavedSearch(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, h.logger, "Not authenticated", err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, h.logger, "Invalid saved search id", err)
	}

	saved, err := h.service.GetSavedSearch(c.UserContext(), id, userID)
	if err != nil {
		return fail(c, h.logger, "Saved search not found", err)
	}
	return c.JSON(saved)
}

func (h *SavedSearchHandler) HandleDeleteSavedSearch(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, h.logger, "Not authenticated", err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, h.logger, "Invalid saved search id", err)
	}

	if err := h.service.DeleteSavedSearch(c.UserContext(), id, userID); err != nil {
		return fail(c, h.logger, "Saved search not found", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleSavedSearchResults re-runs a saved search against current listings.
func (h *SavedSearchHandler) HandleSavedSearchResults(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, h.logger, "Not authenticated", err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, h.logger, "Invalid saved search id", err)
	}

	props, err := h.service.Results(c.UserContext(), id, userID)
	if err != nil {
		return fail(c, h.logger, "Could not run saved search", err)
	}
	return c.JSON(props)
}
