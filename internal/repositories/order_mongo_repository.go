package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
)

const ordersCollection = "orders"

// orderDocument is the stored shape of an order in the document store.
type orderDocument struct {
	ID        primitive.ObjectID    `bson:"_id,omitempty"`
	Customer  models.Customer       `bson:"customer"`
	Payment   models.PaymentSummary `bson:"payment"`
	Product   models.OrderProduct   `bson:"product"`
	Totals    models.Totals         `bson:"totals"`
	Status    string                `bson:"status"`
	CreatedAt time.Time             `bson:"createdAt"`
}

// MongoOrderRepository stores orders in a MongoDB collection. Identifiers are ObjectIDs.
type MongoOrderRepository struct {
	coll *mongo.Collection
}

// NewMongoOrderRepository creates a repository on the "orders" collection of db.
func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{
		coll: db.Collection(ordersCollection),
	}
}

// Create inserts the order and copies the store-assigned ObjectID into order.ID.
func (r *MongoOrderRepository) Create(ctx context.Context, order *models.Order) error {
	doc := orderDocument{
		Customer:  order.Customer,
		Payment:   order.Payment,
		Product:   order.Product,
		Totals:    order.Totals,
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	order.ID = id.Hex()
	return nil
}

// GetByID retrieves an order by its hex ObjectID.
func (r *MongoOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidOrderID
	}

	var doc orderDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return doc.toModel(), nil
}

func (d orderDocument) toModel() *models.Order {
	return &models.Order{
		ID:        d.ID.Hex(),
		Customer:  d.Customer,
		Payment:   d.Payment,
		Product:   d.Product,
		Totals:    d.Totals,
		Status:    models.OrderStatus(d.Status),
		CreatedAt: d.CreatedAt.UTC(),
	}
}
