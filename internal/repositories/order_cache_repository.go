package repositories

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"storefront/internal/models"
	"storefront/pkg/cache"
)

// CachedOrderRepository is a read-through cache in front of another
// OrderRepository. Orders never change after creation, so entries are
// never invalidated; they only expire. Cache failures degrade to the
// underlying store.
type CachedOrderRepository struct {
	next   OrderRepository
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedOrderRepository wraps next with c.
func NewCachedOrderRepository(next OrderRepository, c cache.Cache, ttl time.Duration, logger *zap.Logger) *CachedOrderRepository {
	return &CachedOrderRepository{
		next:   next,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

// Create writes through to the store and primes the cache.
func (r *CachedOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := r.next.Create(ctx, order); err != nil {
		return err
	}
	r.store(ctx, order)
	return nil
}

// GetByID serves from the cache when possible.
func (r *CachedOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	key := r.cache.Key("order", id)

	raw, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn("order cache read failed", zap.String("order_id", id), zap.Error(err))
	} else if raw != "" {
		var order models.Order
		if err := json.Unmarshal([]byte(raw), &order); err == nil {
			return &order, nil
		}
		r.logger.Warn("discarding undecodable cache entry", zap.String("order_id", id))
	}

	order, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, order)
	return order, nil
}

func (r *CachedOrderRepository) store(ctx context.Context, order *models.Order) {
	raw, err := json.Marshal(order)
	if err != nil {
		r.logger.Warn("order cache encode failed", zap.String("order_id", order.ID), zap.Error(err))
		return
	}
	if err := r.cache.Set(ctx, r.cache.Key("order", order.ID), string(raw), r.ttl); err != nil {
		r.logger.Warn("order cache write failed", zap.String("order_id", order.ID), zap.Error(err))
	}
}
