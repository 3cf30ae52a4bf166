package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/models"
)

// OrderRow is the relational shape of an order. Nested objects are flattened
// into prefixed columns.
type OrderRow struct {
	ID        string                `gorm:"primaryKey;type:varchar(36)"`
	Customer  models.Customer       `gorm:"embedded;embeddedPrefix:customer_"`
	Payment   models.PaymentSummary `gorm:"embedded;embeddedPrefix:payment_"`
	Product   models.OrderProduct   `gorm:"embedded;embeddedPrefix:product_"`
	Totals    models.Totals         `gorm:"embedded;embeddedPrefix:totals_"`
	Status    string                `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time             `gorm:"not null"`
}

// TableName pins the table name regardless of naming strategy.
func (OrderRow) TableName() string {
	return "orders"
}

// GORMOrderRepository is a GORM implementation of OrderRepository. Identifiers are UUIDs.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Migrate creates or updates the orders table.
func (r *GORMOrderRepository) Migrate() error {
	if err := r.db.AutoMigrate(&OrderRow{}); err != nil {
		return fmt.Errorf("failed to migrate orders table: %w", err)
	}
	return nil
}

// Create assigns a new UUID and inserts the order.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	row := OrderRow{
		ID:        uuid.New().String(),
		Customer:  order.Customer,
		Payment:   order.Payment,
		Product:   order.Product,
		Totals:    order.Totals,
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	order.ID = row.ID
	return nil
}

// GetByID retrieves a single order by its UUID.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidOrderID
	}

	var row OrderRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}

	return &models.Order{
		ID:        row.ID,
		Customer:  row.Customer,
		Payment:   row.Payment,
		Product:   row.Product,
		Totals:    row.Totals,
		Status:    models.OrderStatus(row.Status),
		CreatedAt: row.CreatedAt.UTC(),
	}, nil
}
