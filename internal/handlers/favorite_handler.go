package handlers

import (
	"rentdir/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FavoriteHandler handles HTTP requests for the signed-in user's favorites.
type FavoriteHandler struct {
	service  *services.FavoriteService
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(service *services.FavoriteService, logger *zap.SugaredLogger) *FavoriteHandler {
	return &FavoriteHandler{
		service:  service,
		validate: newValidator(),
		logger:   orNop(logger),
	}
}

// RegisterRoutes registers the favorite routes with the Fiber app.
func (h *FavoriteHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	favoriteRoutes := router.Group("/favorites", auth)
	favoriteRoutes.Get("/", h.HandleListFavorites)
	favoriteRoutes.Post("/", h.HandleAddFavorite)
	favoriteRoutes.Get("/:propertyId", h.HandleIsFavorite)
	favoriteRoutes.Delete("/:propertyId", h.HandleRemoveFavorite)
}

// HandleListFavorites returns the favorited properties, oldest favorite first.
func (h *FavoriteHandler) HandleListFavorites(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, h.logger, "Not authenticated", err)
	}
	props, err := h.service.ListFavorites(c.UserContext(), userID)
	if err != nil {
		return fail(c, h.logger, "Could not retrieve favorites", err)
	}
	return c.JSON(props)
}

// AddFavoriteRequest represents the request body for adding a favorite.
type AddFavoriteRequest struct {
	PropertyID int64 `json:"propertyId" validate:"required,gt=0"`
}

func (h *FavoriteHandler) HandleAddFavorite(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, h.logger, "Not authenticated", err)
	}

	var req AddFavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	fav, err := h.service.AddFavorite(c.UserContext(), userID, req.PropertyID)
	if err != nil {
		return fail(c, h.logger, "Could not add favorite", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fav)
}

func (h *FavoriteHandler) HandleIsFavorite(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, h.logger, "Not authenticated", err)
	}
	propertyID, err := paramID(c, "propertyId")
	if err != nil {
		return fail(c, h.logger, "Invalid property id", err)
	}

	ok, err := h.service.IsFavorite(c.UserContext(), userID, propertyID)
	if err != nil {
		return fail(c, h.logger, "Could not check favorite", err)
	}
	return c.JSON(fiber.Map{"propertyId": propertyID, "favorite": ok})
}

func (h *FavoriteHandler) HandleRemoveFavorite(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, h.logger, "Not authenticated", err)
	}
	propertyID, err := paramID(c, "propertyId")
	if err != nil {
		return fail(c, h.logger, "Invalid property id", err)
	}

	if err := h.service.RemoveFavorite(c.UserContext(), userID, propertyID); err != nil {
		return fail(c, h.logger, "Could not remove favorite", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
