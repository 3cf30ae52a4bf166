package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryProductRepository_GetAll(t *testing.T) {
	repo := NewMemoryProductRepository(DefaultCatalog())

	products, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "prod_001", products[0].ID)
	assert.Equal(t, 149.99, products[0].Price)
	assert.Equal(t, []string{"Black", "White", "Blue"}, products[0].Variants)
	assert.Equal(t, 500, products[0].Inventory)
}

func TestMemoryProductRepository_DecrementInventory(t *testing.T) {
	repo := NewMemoryProductRepository(DefaultCatalog())

	remaining, err := repo.DecrementInventory("prod_001", 3)
	require.NoError(t, err)
	assert.Equal(t, 497, remaining)

	product, err := repo.GetByID("prod_001")
	require.NoError(t, err)
	assert.Equal(t, 497, product.Inventory)

	remaining, err = repo.DecrementInventory("prod_001", 1000)
	assert.ErrorIs(t, err, ErrInsufficientInventory)
	assert.Equal(t, 497, remaining)

	_, err = repo.DecrementInventory("prod_999", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestMemoryProductRepository_DoesNotAliasSeed(t *testing.T) {
	seed := DefaultCatalog()
	repo := NewMemoryProductRepository(seed)

	_, err := repo.DecrementInventory("prod_001", 10)
	require.NoError(t, err)
	seed[0].Variants[0] = "Red"

	product, err := repo.GetByID("prod_001")
	require.NoError(t, err)
	assert.Equal(t, 500, seed[0].Inventory)
	assert.Equal(t, "Black", product.Variants[0])
}
