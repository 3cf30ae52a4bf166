package services

import (
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProduct returns the catalog entry for productID.
func (s *ProductService) GetProduct(productID string) (*models.Product, error) {
	product, err := s.repo.GetByID(productID)
	switch {
	case errors.Is(err, repositories.ErrProductNotFound):
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	case err != nil:
		return nil, fmt.Errorf("failed to load product %s: %w", productID, err)
	}
	return product, nil
}

// UpdateInventory takes quantity units of a product out of the in-memory
// inventory and returns the remaining count.
func (s *ProductService) UpdateInventory(productID string, quantity int) (int, error) {
	if quantity < 1 {
		return 0, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidRequest)
	}

	remaining, err := s.repo.DecrementInventory(productID, quantity)
	switch {
	case errors.Is(err, repositories.ErrProductNotFound):
		return 0, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	case errors.Is(err, repositories.ErrInsufficientInventory):
		return remaining, fmt.Errorf("%w: requested %d, available %d", ErrInsufficientInventory, quantity, remaining)
	case err != nil:
		return 0, fmt.Errorf("failed to update inventory for %s: %w", productID, err)
	}
	return remaining, nil
}
