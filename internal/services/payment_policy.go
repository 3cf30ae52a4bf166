package services

import (
	"github.com/shopspring/decimal"

	"storefront/internal/models"
)

const (
	SimulateApproved models.SimulationCode = "1"
	SimulateDeclined models.SimulationCode = "2"
	SimulateError    models.SimulationCode = "3"
)

// SimulatePayment maps a simulation code to an order status. Unknown or
// empty codes are approved.
func SimulatePayment(code models.SimulationCode) models.OrderStatus {
	switch code {
	case SimulateApproved:
		return models.OrderStatusApproved
	case SimulateDeclined:
		return models.OrderStatusDeclined
	case SimulateError:
		return models.OrderStatusError
	default:
		return models.OrderStatusApproved
	}
}

var taxRate = decimal.RequireFromString("0.08")

// ComputeTotals prices quantity units at price, rounded to cents.
func ComputeTotals(price float64, quantity int) models.Totals {
	subtotal := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(tax)

	return models.Totals{
		Subtotal: subtotal.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
}
