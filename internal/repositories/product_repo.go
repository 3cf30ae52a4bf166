package repositories

import (
	"errors"

	"storefront/internal/models"
)

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrInsufficientInventory = errors.New("insufficient inventory")
)

// ProductRepository defines the interface for catalog access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	// DecrementInventory removes quantity units and returns what is left.
	DecrementInventory(id string, quantity int) (int, error)
}
