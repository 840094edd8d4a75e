package handlers

import (
	"time"

	"rentdir/internal/geo"
	"rentdir/internal/models"
	"rentdir/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PropertyHandler handles HTTP requests for properties. Reads are public;
// writes need a signed-in user.
type PropertyHandler struct {
	service  *services.PropertyService
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(service *services.PropertyService, logger *zap.SugaredLogger) *PropertyHandler {
	return &PropertyHandler{
		service:  service,
		validate: newValidator(),
		logger:   orNop(logger),
	}
}

// RegisterRoutes registers the property routes with the Fiber app.
func (h *PropertyHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	propertyRoutes := router.Group("/properties")
	propertyRoutes.Get("/", h.HandleListProperties)
	// Registered before "/:id" so that "nearby" is not taken for an id.
	propertyRoutes.Get("/nearby", h.HandleNearbyProperties)
	propertyRoutes.Get("/:id", h.HandleGetProperty)
	propertyRoutes.Post("/", auth, h.HandleCreateProperty)
	propertyRoutes.Patch("/:id", auth, h.HandleUpdateProperty)
	propertyRoutes.Delete("/:id", auth, h.HandleDeleteProperty)
}

// HandleListProperties filters and sorts the listings from query parameters.
func (h *PropertyHandler) HandleListProperties(c *fiber.Ctx) error {
	var filter models.PropertyFilter
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid query parameters",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(filter); err != nil {
		return validationFailed(c, err)
	}

	sort, ok := models.ParseSortOption(c.Query("sort"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid sort option",
			"error":   "sort must be one of recommended, price-asc, price-desc, newest",
		})
	}

	props, err := h.service.ListProperties(c.UserContext(), filter, sort)
	if err != nil {
		return fail(c, h.logger, "Could not retrieve properties", err)
	}
	return c.JSON(props)
}

// NearbyQuery is the query of a radius search. Radius is in miles.
type NearbyQuery struct {
	Lat    *float64 `query:"lat" validate:"required,gte=-90,lte=90"`
	Lon    *float64 `query:"lon" validate:"required,gte=-180,lte=180"`
	Radius *float64 `query:"radius" validate:"required,gte=0"`
}

// HandleNearbyProperties lists properties within a radius, nearest first.
func (h *PropertyHandler) HandleNearbyProperties(c *fiber.Ctx) error {
	var q NearbyQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid query parameters",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(q); err != nil {
		return validationFailed(c, err)
	}

	nearby, err := h.service.NearbyProperties(c.UserContext(), geo.Point{Lat: *q.Lat, Lon: *q.Lon}, *q.Radius)
	if err != nil {
		return fail(c, h.logger, "Could not search nearby properties", err)
	}
	return c.JSON(nearby)
}

// HandleGetProperty retrieves a single property by its ID.
func (h *PropertyHandler) HandleGetProperty(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, h.logger, "Invalid property id", err)
	}
	property, err := h.service.GetProperty(c.UserContext(), id)
	if err != nil {
		return fail(c, h.logger, "Could not retrieve property", err)
	}
	return c.JSON(property)
}

// CreatePropertyRequest represents the request body for a new listing.
type CreatePropertyRequest struct {
	Title         string                `json:"title" validate:"required,min=3,max=200"`
	Address       string                `json:"address" validate:"required"`
	City          string                `json:"city" validate:"required"`
	State         string                `json:"state" validate:"required"`
	ZipCode       string                `json:"zipCode" validate:"required"`
	Price         int                   `json:"price" validate:"gte=0"`
	Beds          int                   `json:"beds" validate:"gte=0"`
	Baths         float64               `json:"baths" validate:"gte=0"`
	Sqft          int                   `json:"sqft" validate:"gte=0"`
	Description   string                `json:"description"`
	Images        []string              `json:"images" validate:"omitempty,dive,url"`
	Amenities     []string              `json:"amenities" validate:"omitempty,dive,required"`
	PetFriendly   bool                  `json:"petFriendly"`
	AvailableFrom *time.Time            `json:"availableFrom"`
	LeaseLength   *int                  `json:"leaseLength" validate:"omitempty,gte=0"`
	Status        models.PropertyStatus `json:"status" validate:"omitempty,oneof=active inactive rented"`
}

// HandleCreateProperty creates a new listing.
func (h *PropertyHandler) HandleCreateProperty(c *fiber.Ctx) error {
	var req CreatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	property := models.Property{
		Title:         req.Title,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		Price:         req.Price,
		Beds:          req.Beds,
		Baths:         req.Baths,
		Sqft:          req.Sqft,
		Description:   req.Description,
		Images:        req.Images,
		Amenities:     req.Amenities,
		PetFriendly:   req.PetFriendly,
		AvailableFrom: req.AvailableFrom,
		LeaseLength:   req.LeaseLength,
		Status:        req.Status,
	}
	if err := h.service.CreateProperty(c.UserContext(), &property); err != nil {
		return fail(c, h.logger, "Could not create property", err)
	}
	h.logger.Infow("Created property", "propertyID", property.ID, "title", property.Title)
	return c.Status(fiber.StatusCreated).JSON(property)
}

// HandleUpdateProperty merges the fields present in the body into a listing.
func (h *PropertyHandler) HandleUpdateProperty(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, h.logger, "Invalid property id", err)
	}

	var patch models.PropertyPatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(patch); err != nil {
		return validationFailed(c, err)
	}

	property, err := h.service.UpdateProperty(c.UserContext(), id, patch)
	if err != nil {
		return fail(c, h.logger, "Could not update property", err)
	}
	return c.JSON(property)
}

// HandleDeleteProperty deletes a listing.
func (h *PropertyHandler) HandleDeleteProperty(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, h.logger, "Invalid property id", err)
	}
	if err := h.service.DeleteProperty(c.UserContext(), id); err != nil {
		return fail(c, h.logger, "Could not delete property", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
