package models

import (
	"encoding/json"
	"time"
)

// OrderStatus is the outcome assigned to an order when it is created.
// It is set once and never transitions afterwards.
type OrderStatus string

const (
	OrderStatusApproved OrderStatus = "approved"
	OrderStatusDeclined OrderStatus = "declined"
	OrderStatusError    OrderStatus = "error"
)

// SimulationCode is the client's stand-in for a gateway response. Any JSON
// value that is not a string decodes as the empty code.
type SimulationCode string

// UnmarshalJSON never fails.
func (c *SimulationCode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*c = ""
		return nil
	}
	*c = SimulationCode(s)
	return nil
}

// Customer holds the shipping and contact details captured at checkout.
type Customer struct {
	FullName string `json:"fullName" bson:"fullName" validate:"required"`
	Email    string `json:"email" bson:"email" validate:"required"`
	Phone    string `json:"phone" bson:"phone" validate:"required"`
	Address  string `json:"address" bson:"address" validate:"required"`
	City     string `json:"city" bson:"city" validate:"required"`
	State    string `json:"state" bson:"state" validate:"required"`
	Zip      string `json:"zip" bson:"zip" validate:"required"`
}

// PaymentSummary is the only card data ever stored. The full card number
// and CVV never reach the order record.
type PaymentSummary struct {
	Last4      string `json:"last4" bson:"last4" validate:"required"`
	ExpiryDate string `json:"expiryDate" bson:"expiryDate" validate:"required"`
}

// OrderProduct is the product line of an order.
type OrderProduct struct {
	ID       string  `json:"id" bson:"id" validate:"required"`
	Name     string  `json:"name" bson:"name"`
	Variant  string  `json:"variant" bson:"variant"`
	Quantity int     `json:"quantity" bson:"quantity" validate:"gte=1"`
	Price    float64 `json:"price" bson:"price" validate:"gte=0"`
}

// Totals are monetary amounts rounded to cents.
type Totals struct {
	Subtotal float64 `json:"subtotal" bson:"subtotal"`
	Tax      float64 `json:"tax" bson:"tax"`
	Total    float64 `json:"total" bson:"total"`
}

// Order is the persisted outcome of a checkout attempt. It is immutable once
// created; the ID is assigned by the order store.
type Order struct {
	ID        string         `json:"_id"`
	Customer  Customer       `json:"customer"`
	Payment   PaymentSummary `json:"payment"`
	Product   OrderProduct   `json:"product"`
	Totals    Totals         `json:"totals"`
	Status    OrderStatus    `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
}

// CreateOrderRequest is the body of POST /orders. Nested objects are pointers
// so that a missing object can be told apart from an empty one.
type CreateOrderRequest struct {
	Customer       *Customer       `json:"customer"`
	Payment        *PaymentSummary `json:"payment"`
	Product        *OrderProduct   `json:"product"`
	Totals         *Totals         `json:"totals"`
	SimulationCode SimulationCode  `json:"simulationCode"`
}

// CreateOrderResult is what the caller learns about a freshly created order.
type CreateOrderResult struct {
	OrderID string      `json:"orderId"`
	Status  OrderStatus `json:"status"`
}

// OrderNotification carries everything the notifier needs to describe an order.
type OrderNotification struct {
	OrderID  string       `json:"orderId"`
	Customer Customer     `json:"customer"`
	Product  OrderProduct `json:"product"`
	Totals   Totals       `json:"totals"`
	Status   OrderStatus  `json:"status"`
}
