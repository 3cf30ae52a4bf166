package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"storefront/internal/models"
	"storefront/internal/notification"
	"storefront/internal/repositories"
)

// Notifier tells the customer about a created order. Implementations are
// best-effort: the returned outcome is informational and a failed
// notification never affects the order.
type Notifier interface {
	Notify(ctx context.Context, n models.OrderNotification) notification.Outcome
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	notifier  Notifier
	validate  *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, notifier Notifier, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		notifier:  notifier,
		validate:  validator.New(),
		logger:    logger,
		now:       time.Now,
	}
}

// CreateOrder prices the order, decides its status from the simulation code,
// persists it and then notifies the customer.
func (s *OrderService) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.CreateOrderResult, error) {
	if err := s.checkShape(req); err != nil {
		return nil, err
	}

	// Client totals are not trusted; they are recomputed from the product line.
	order := &models.Order{
		Customer:  *req.Customer,
		Payment:   *req.Payment,
		Product:   *req.Product,
		Totals:    ComputeTotals(req.Product.Price, req.Product.Quantity),
		Status:    SimulatePayment(req.SimulationCode),
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("status", string(order.Status)),
		zap.Float64("total", order.Totals.Total),
	)
	s.logger.Info("updating inventory",
		zap.String("product_id", order.Product.ID),
		zap.Int("reduce_by", order.Product.Quantity),
	)

	// Notification outcome never affects the response.
	outcome := s.notifier.Notify(context.WithoutCancel(ctx), models.OrderNotification{
		OrderID:  order.ID,
		Customer: order.Customer,
		Product:  order.Product,
		Totals:   order.Totals,
		Status:   order.Status,
	})
	s.logger.Debug("order notification",
		zap.String("order_id", order.ID),
		zap.Stringer("outcome", outcome),
	)

	return &models.CreateOrderResult{
		OrderID: order.ID,
		Status:  order.Status,
	}, nil
}

// GetOrder retrieves a persisted order by its store identifier.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	switch {
	case err == nil:
		return order, nil
	case errors.Is(err, repositories.ErrInvalidOrderID):
		return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	case errors.Is(err, repositories.ErrOrderNotFound):
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	default:
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
}

func (s *OrderService) checkShape(req models.CreateOrderRequest) error {
	if req.Customer == nil || req.Payment == nil || req.Product == nil || req.Totals == nil {
		return fmt.Errorf("%w: customer, payment, product and totals are required", ErrInvalidRequest)
	}
	for _, part := range []any{req.Customer, req.Payment, req.Product} {
		if err := s.validate.Struct(part); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	}
	return nil
}

// Confirmation is the headline shown for an order on the thank-you view.
type Confirmation struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// ConfirmationFor returns the thank-you headline for status.
func ConfirmationFor(status models.OrderStatus) Confirmation {
	switch status {
	case models.OrderStatusDeclined:
		return Confirmation{
			Title:   "Payment Declined",
			Message: "Your payment was declined. Please check your payment details and try again.",
		}
	case models.OrderStatusError:
		return Confirmation{
			Title:   "Gateway Error",
			Message: "We encountered an error processing your payment. Please try again later or contact support.",
		}
	default:
		return Confirmation{
			Title:   "Order Confirmed!",
			Message: "Thank you for your purchase. Your order has been successfully processed.",
		}
	}
}
