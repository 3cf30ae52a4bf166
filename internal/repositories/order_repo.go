package repositories

import (
	"context"
	"errors"

	"storefront/internal/models"
)

var (
	// ErrOrderNotFound is returned when no order matches a well-formed identifier.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidOrderID is returned when an identifier is not in the store's format.
	ErrInvalidOrderID = errors.New("invalid order id")
)

// OrderRepository defines the interface for order data access. Orders are
// write-once: there is no update or delete.
type OrderRepository interface {
	// Create persists the order and assigns order.ID.
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
}
