package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"storefront/internal/checkout"
	"storefront/internal/services"
)

// CheckoutHandler accepts the raw checkout form, validates it and places the order.
type CheckoutHandler struct {
	orders    *services.OrderService
	products  *services.ProductService
	validator *checkout.Validator
	logger    *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(orders *services.OrderService, products *services.ProductService, validator *checkout.Validator, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		orders:    orders,
		products:  products,
		validator: validator,
		logger:    logger,
	}
}

// RegisterRoutes registers the checkout route with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleCheckout)
}

// HandleCheckout validates the form field by field before creating the order.
func (h *CheckoutHandler) HandleCheckout(c *fiber.Ctx) error {
	var submission checkout.Submission
	if err := c.BodyParser(&submission); err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validator.Validate(submission); err != nil {
		var fields checkout.FieldErrors
		if errors.As(err, &fields) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Validation failed",
				"errors":  fields,
			})
		}
		h.logger.Error("checkout validation failed", zap.Error(err))
		return failure(c, fiber.StatusBadRequest, "Invalid request body")
	}

	// Name and price come from the catalog, not from the client.
	product, err := h.products.GetProduct(submission.Product.ProductID)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrProductNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  checkout.FieldErrors{"productId": checkout.UnknownProductMessage},
		})
	default:
		h.logger.Error("checkout product lookup failed", zap.String("product_id", submission.Product.ProductID), zap.Error(err))
		return failure(c, fiber.StatusInternalServerError, "Failed to create order")
	}

	return createOrder(c, h.orders, h.logger, submission.PricedFrom(*product).OrderRequest())
}
