package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"storefront/internal/models"
	"storefront/internal/services"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service *services.ProductService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Post("/", h.HandleUpdateInventory)
}

// HandleGetProducts lists the catalog.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		h.logger.Error("listing products failed", zap.Error(err))
		return failure(c, fiber.StatusInternalServerError, "Failed to fetch products")
	}
	return c.JSON(products)
}

// HandleUpdateInventory takes units out of the in-memory inventory.
func (h *ProductHandler) HandleUpdateInventory(c *fiber.Ctx) error {
	var req models.InventoryUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid request body")
	}

	remaining, err := h.service.UpdateInventory(req.ProductID, req.Quantity)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrProductNotFound):
		return failure(c, fiber.StatusNotFound, "Product not found")
	case errors.Is(err, services.ErrInsufficientInventory):
		return failure(c, fiber.StatusBadRequest, "Insufficient inventory")
	case errors.Is(err, services.ErrInvalidRequest):
		return failure(c, fiber.StatusBadRequest, "Quantity must be at least 1")
	default:
		h.logger.Error("inventory update failed", zap.String("product_id", req.ProductID), zap.Error(err))
		return failure(c, fiber.StatusInternalServerError, "Failed to update product")
	}

	return c.JSON(fiber.Map{
		"success":            true,
		"message":            "Inventory updated",
		"remainingInventory": remaining,
	})
}
