package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/internal/models"
)

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCache) Key(operation, id string) string {
	return "test:" + operation + ":" + id
}

func (m *mockCache) Close() error {
	return nil
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	if args.Error(0) == nil {
		order.ID = "order-1"
	}
	return args.Error(0)
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func TestCachedOrderRepository_Hit(t *testing.T) {
	ctx := context.Background()
	next, c := new(mockOrderRepository), new(mockCache)
	repo := NewCachedOrderRepository(next, c, time.Minute, zap.NewNop())

	order := sampleOrder()
	order.ID = "order-1"
	raw, err := json.Marshal(order)
	require.NoError(t, err)
	c.On("Get", ctx, "test:order:order-1").Return(string(raw), nil).Once()

	got, err := repo.GetByID(ctx, "order-1")

	require.NoError(t, err)
	assert.Equal(t, order, got)
	next.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	c.AssertExpectations(t)
}

func TestCachedOrderRepository_MissFillsCache(t *testing.T) {
	ctx := context.Background()
	next, c := new(mockOrderRepository), new(mockCache)
	repo := NewCachedOrderRepository(next, c, time.Minute, zap.NewNop())

	order := sampleOrder()
	order.ID = "order-1"
	c.On("Get", ctx, "test:order:order-1").Return("", nil).Once()
	next.On("GetByID", ctx, "order-1").Return(order, nil).Once()
	c.On("Set", ctx, "test:order:order-1", mock.AnythingOfType("string"), time.Minute).Return(nil).Once()

	got, err := repo.GetByID(ctx, "order-1")

	require.NoError(t, err)
	assert.Equal(t, order, got)
	next.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestCachedOrderRepository_CacheFailureFallsThrough(t *testing.T) {
	ctx := context.Background()
	next, c := new(mockOrderRepository), new(mockCache)
	repo := NewCachedOrderRepository(next, c, time.Minute, zap.NewNop())

	order := sampleOrder()
	order.ID = "order-1"
	c.On("Get", ctx, "test:order:order-1").Return("", errors.New("connection refused")).Once()
	next.On("GetByID", ctx, "order-1").Return(order, nil).Once()
	c.On("Set", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()

	got, err := repo.GetByID(ctx, "order-1")

	require.NoError(t, err)
	assert.Equal(t, order, got)
}

func TestCachedOrderRepository_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	next, c := new(mockOrderRepository), new(mockCache)
	repo := NewCachedOrderRepository(next, c, time.Minute, zap.NewNop())

	c.On("Get", ctx, "test:order:missing").Return("", nil).Once()
	next.On("GetByID", ctx, "missing").Return(nil, ErrOrderNotFound).Once()

	_, err := repo.GetByID(ctx, "missing")

	assert.ErrorIs(t, err, ErrOrderNotFound)
	c.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCachedOrderRepository_CreatePrimesCache(t *testing.T) {
	ctx := context.Background()
	next, c := new(mockOrderRepository), new(mockCache)
	repo := NewCachedOrderRepository(next, c, time.Minute, zap.NewNop())

	order := sampleOrder()
	next.On("Create", ctx, order).Return(nil).Once()
	c.On("Set", ctx, "test:order:order-1", mock.AnythingOfType("string"), time.Minute).Return(nil).Once()

	require.NoError(t, repo.Create(ctx, order))
	assert.Equal(t, "order-1", order.ID)
	c.AssertExpectations(t)
}
