package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"storefront/internal/models"
	"storefront/internal/services"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
	logger  *zap.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Get("/:id/confirmation", h.HandleGetConfirmation)
}

// HandleCreateOrder creates a new order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req models.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Debug("unparsable order request", zap.Error(err))
		return failure(c, fiber.StatusBadRequest, "Invalid request body")
	}
	return createOrder(c, h.service, h.logger, req)
}

// HandleGetOrderByID returns the full order record.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, status, message := h.lookup(c)
	if order == nil {
		return failure(c, status, message)
	}
	return c.JSON(order)
}

// HandleGetConfirmation returns the order with the thank-you headline for its status.
func (h *OrderHandler) HandleGetConfirmation(c *fiber.Ctx) error {
	order, status, message := h.lookup(c)
	if order == nil {
		return failure(c, status, message)
	}
	confirmation := services.ConfirmationFor(order.Status)
	return c.JSON(fiber.Map{
		"order":   order,
		"title":   confirmation.Title,
		"message": confirmation.Message,
	})
}

// lookup loads the order named by the :id parameter. On failure it returns
// a nil order with the status and message to answer with.
func (h *OrderHandler) lookup(c *fiber.Ctx) (*models.Order, int, string) {
	orderID := c.Params("id")

	order, err := h.service.GetOrder(c.UserContext(), orderID)
	switch {
	case err == nil:
		return order, fiber.StatusOK, ""
	case errors.Is(err, services.ErrInvalidIdentifier):
		return nil, fiber.StatusBadRequest, "Invalid order ID"
	case errors.Is(err, services.ErrNotFound):
		return nil, fiber.StatusNotFound, "Order not found"
	default:
		h.logger.Error("order fetch failed", zap.String("order_id", orderID), zap.Error(err))
		return nil, fiber.StatusInternalServerError, "Failed to fetch order"
	}
}

// createOrder runs order creation and writes the response shared by
// POST /orders and POST /checkout.
func createOrder(c *fiber.Ctx, service *services.OrderService, logger *zap.Logger, req models.CreateOrderRequest) error {
	result, err := service.CreateOrder(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRequest) {
			return failure(c, fiber.StatusBadRequest, "Invalid order request")
		}
		logger.Error("order creation failed", zap.Error(err))
		return failure(c, fiber.StatusInternalServerError, "Failed to create order")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"orderId": result.OrderID,
		"status":  result.Status,
	})
}
