package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"storefront/internal/models"
	"storefront/internal/notification"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	if args.Error(0) == nil {
		order.ID = "6710b1f2c3a4b5d6e7f80912"
	}
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

// MockNotifier is a mock implementation of services.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, n models.OrderNotification) notification.Outcome {
	args := m.Called(ctx, n)
	return args.Get(0).(notification.Outcome)
}

func validRequest(code string) models.CreateOrderRequest {
	return models.CreateOrderRequest{
		Customer: &models.Customer{
			FullName: "Jane Doe",
			Email:    "jane@example.com",
			Phone:    "5551234567",
			Address:  "123 Main Street",
			City:     "Springfield",
			State:    "IL",
			Zip:      "62701",
		},
		Payment: &models.PaymentSummary{Last4: "4242", ExpiryDate: "12/30"},
		Product: &models.OrderProduct{
			ID:       "prod_001",
			Name:     "Premium Wireless Headphones",
			Variant:  "Black",
			Quantity: 2,
			Price:    149.99,
		},
		Totals:         &models.Totals{Subtotal: 299.98, Tax: 23.9984, Total: 323.9784},
		SimulationCode: models.SimulationCode(code),
	}
}

func TestOrderService_CreateOrder_StatusFromSimulationCode(t *testing.T) {
	tests := []struct {
		code string
		want models.OrderStatus
	}{
		{"1", models.OrderStatusApproved},
		{"2", models.OrderStatusDeclined},
		{"3", models.OrderStatusError},
		{"", models.OrderStatusApproved},
		{"9", models.OrderStatusApproved},
	}

	for _, tt := range tests {
		t.Run("code "+tt.code, func(t *testing.T) {
			repo, notifier := new(MockOrderRepository), new(MockNotifier)
			svc := services.NewOrderService(repo, notifier, zap.NewNop())

			repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil).Once()
			notifier.On("Notify", mock.Anything, mock.Anything).Return(notification.OutcomeSent).Once()

			result, err := svc.CreateOrder(context.Background(), validRequest(tt.code))

			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Status)
			assert.Equal(t, "6710b1f2c3a4b5d6e7f80912", result.OrderID)
			repo.AssertExpectations(t)
			notifier.AssertExpectations(t)
		})
	}
}

func TestOrderService_CreateOrder_PersistsRecomputedTotals(t *testing.T) {
	repo, notifier := new(MockOrderRepository), new(MockNotifier)
	svc := services.NewOrderService(repo, notifier, zap.NewNop())

	var stored *models.Order
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*models.Order) }).
		Return(nil).Once()
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n models.OrderNotification) bool {
		return n.OrderID == "6710b1f2c3a4b5d6e7f80912" && n.Status == models.OrderStatusDeclined && n.Totals.Total == 323.98
	})).Return(notification.OutcomeSent).Once()

	before := time.Now().UTC().Add(-time.Second)
	_, err := svc.CreateOrder(context.Background(), validRequest("2"))
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.Equal(t, models.Totals{Subtotal: 299.98, Tax: 24.00, Total: 323.98}, stored.Totals)
	assert.Equal(t, models.OrderStatusDeclined, stored.Status)
	assert.Equal(t, "4242", stored.Payment.Last4)
	assert.WithinDuration(t, time.Now().UTC(), stored.CreatedAt, time.Since(before))
	notifier.AssertExpectations(t)
}

// Notification is best-effort; a failed send must not change the result.
func TestOrderService_CreateOrder_NotificationFailureIgnored(t *testing.T) {
	repo, notifier := new(MockOrderRepository), new(MockNotifier)
	core, logs := observer.New(zap.DebugLevel)
	svc := services.NewOrderService(repo, notifier, zap.New(core))

	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	notifier.On("Notify", mock.Anything, mock.Anything).Return(notification.OutcomeFailed).Once()

	result, err := svc.CreateOrder(context.Background(), validRequest("1"))

	require.NoError(t, err)
	entries := logs.FilterMessage("order notification").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "failed", entries[0].ContextMap()["outcome"])
	assert.Equal(t, models.OrderStatusApproved, result.Status)
	assert.NotEmpty(t, result.OrderID)
}

func TestOrderService_CreateOrder_PersistenceFailure(t *testing.T) {
	repo, notifier := new(MockOrderRepository), new(MockNotifier)
	svc := services.NewOrderService(repo, notifier, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("server selection timeout")).Once()

	result, err := svc.CreateOrder(context.Background(), validRequest("1"))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, services.ErrPersistence)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_InvalidRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CreateOrderRequest)
	}{
		{"missing customer", func(r *models.CreateOrderRequest) { r.Customer = nil }},
		{"missing payment", func(r *models.CreateOrderRequest) { r.Payment = nil }},
		{"missing product", func(r *models.CreateOrderRequest) { r.Product = nil }},
		{"missing totals", func(r *models.CreateOrderRequest) { r.Totals = nil }},
		{"empty customer email", func(r *models.CreateOrderRequest) { r.Customer.Email = "" }},
		{"empty last4", func(r *models.CreateOrderRequest) { r.Payment.Last4 = "" }},
		{"empty product id", func(r *models.CreateOrderRequest) { r.Product.ID = "" }},
		{"zero quantity", func(r *models.CreateOrderRequest) { r.Product.Quantity = 0 }},
		{"negative price", func(r *models.CreateOrderRequest) { r.Product.Price = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, notifier := new(MockOrderRepository), new(MockNotifier)
			svc := services.NewOrderService(repo, notifier, zap.NewNop())

			req := validRequest("1")
			tt.mutate(&req)

			_, err := svc.CreateOrder(context.Background(), req)

			assert.ErrorIs(t, err, services.ErrInvalidRequest)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestOrderService_GetOrder(t *testing.T) {
	ctx := context.Background()
	stored := &models.Order{ID: "6710b1f2c3a4b5d6e7f80912", Status: models.OrderStatusError}

	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{"found", nil, nil},
		{"malformed id", repositories.ErrInvalidOrderID, services.ErrInvalidIdentifier},
		{"missing", repositories.ErrOrderNotFound, services.ErrNotFound},
		{"store down", errors.New("connection reset"), services.ErrPersistence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockOrderRepository)
			svc := services.NewOrderService(repo, new(MockNotifier), zap.NewNop())

			if tt.repoErr == nil {
				repo.On("GetByID", ctx, stored.ID).Return(stored, nil).Once()
			} else {
				repo.On("GetByID", ctx, stored.ID).Return(nil, tt.repoErr).Once()
			}

			order, err := svc.GetOrder(ctx, stored.ID)

			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, stored, order)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, order)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestConfirmationFor(t *testing.T) {
	assert.Equal(t, "Order Confirmed!", services.ConfirmationFor(models.OrderStatusApproved).Title)
	assert.Equal(t, "Payment Declined", services.ConfirmationFor(models.OrderStatusDeclined).Title)
	assert.Equal(t, "Gateway Error", services.ConfirmationFor(models.OrderStatusError).Title)
}
