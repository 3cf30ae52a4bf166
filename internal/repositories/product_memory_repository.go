package repositories

import (
	"sync"

	"storefront/internal/models"
)

// MemoryProductRepository keeps the catalog in process memory. Inventory
// changes are lost on restart; nothing here is persisted.
type MemoryProductRepository struct {
	products []models.Product
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a catalog holding a copy of products.
func NewMemoryProductRepository(products []models.Product) *MemoryProductRepository {
	catalog := make([]models.Product, len(products))
	for i, p := range products {
		p.Variants = append([]string(nil), p.Variants...)
		catalog[i] = p
	}
	return &MemoryProductRepository{
		products: catalog,
	}
}

// GetAll returns all products in catalog order.
func (r *MemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, len(r.products))
	copy(productList, r.products)
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrProductNotFound
	}
	product := r.products[i]
	return &product, nil
}

// DecrementInventory reduces the product's inventory by quantity.
func (r *MemoryProductRepository) DecrementInventory(id string, quantity int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return 0, ErrProductNotFound
	}
	if r.products[i].Inventory < quantity {
		return r.products[i].Inventory, ErrInsufficientInventory
	}
	r.products[i].Inventory -= quantity
	return r.products[i].Inventory, nil
}

func (r *MemoryProductRepository) indexOf(id string) int {
	for i := range r.products {
		if r.products[i].ID == id {
			return i
		}
	}
	return -1
}

// DefaultCatalog is the storefront's single product.
func DefaultCatalog() []models.Product {
	return []models.Product{
		{
			ID:          "prod_001",
			Name:        "Premium Wireless Headphones",
			Description: "Experience crystal-clear sound with our premium wireless headphones. Features noise cancellation, 30-hour battery life, and comfortable over-ear design.",
			Price:       149.99,
			Image:       "/placeholder.svg?height=400&width=400",
			Variants:    []string{"Black", "White", "Blue"},
			Inventory:   500,
		},
	}
}
