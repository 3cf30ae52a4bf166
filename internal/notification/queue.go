package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"storefront/internal/models"
)

// OrderCreatedKey is the routing key of order events.
const OrderCreatedKey = "order.created"

// Publisher puts a message on the broker. *rabbitmq.Client satisfies it.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// QueueNotifier hands order notifications to a broker so that email is sent
// outside the request. Publishing is attempted once.
type QueueNotifier struct {
	publisher Publisher
	logger    *zap.Logger
}

// NewQueueNotifier creates a QueueNotifier that publishes through publisher.
func NewQueueNotifier(publisher Publisher, logger *zap.Logger) *QueueNotifier {
	return &QueueNotifier{publisher: publisher, logger: logger}
}

// Notify publishes an order.created event.
func (q *QueueNotifier) Notify(ctx context.Context, n models.OrderNotification) Outcome {
	body, err := json.Marshal(n)
	if err != nil {
		q.logger.Error("order event not encoded", zap.String("order_id", n.OrderID), zap.Error(err))
		return OutcomeFailed
	}
	if err := q.publisher.Publish(ctx, OrderCreatedKey, body); err != nil {
		q.logger.Warn("order event not published", zap.String("order_id", n.OrderID), zap.Error(err))
		return OutcomeFailed
	}
	q.logger.Debug("order event published", zap.String("order_id", n.OrderID))
	return OutcomeQueued
}

// EventHandler decodes order events and passes them to the dispatcher.
// Undecodable events are rejected; dispatch outcomes are never turned into
// errors, so a delivered event is acknowledged whether or not mail went out.
func EventHandler(ctx context.Context, dispatcher *Dispatcher) func(body []byte) error {
	return func(body []byte) error {
		var n models.OrderNotification
		if err := json.Unmarshal(body, &n); err != nil {
			return fmt.Errorf("decoding order event: %w", err)
		}
		_ = dispatcher.Notify(ctx, n)
		return nil
	}
}
