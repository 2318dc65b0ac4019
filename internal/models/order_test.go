package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotals(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{ProductName: "Poster", UnitPrice: 10.00, Quantity: 2},
			{ProductName: "Print", UnitPrice: 25.00, Quantity: 1},
		},
	}
	order.CalculateTotals()

	assert.Equal(t, 45.00, order.Subtotal)
	assert.Equal(t, order.Subtotal+order.TaxAmount+order.ShippingCost, order.TotalAmount)
}

func TestCalculateTotalsAvoidsFloatDrift(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{UnitPrice: 0.10, Quantity: 3},
			{UnitPrice: 19.99, Quantity: 7},
		},
	}
	order.CalculateTotals()

	assert.Equal(t, 140.23, order.Subtotal)
	assert.Equal(t, 140.23, order.TotalAmount)
}

func TestCalculateTotalsEmptyOrder(t *testing.T) {
	var order Order
	order.CalculateTotals()

	assert.Equal(t, 0.0, order.Subtotal)
	assert.Equal(t, 0.0, order.TotalAmount)
}

func TestMarkAsPaidIsIdempotent(t *testing.T) {
	order := Order{Status: OrderStatusPending, PaymentStatus: PaymentStatusPending}

	order.MarkAsPaid()
	assert.Equal(t, PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, OrderStatusProcessing, order.Status)
	firstPaidAt := order.PaidAt
	assert.NotNil(t, firstPaidAt)

	time.Sleep(time.Millisecond)
	order.MarkAsPaid()
	assert.Equal(t, firstPaidAt, order.PaidAt)
	assert.Equal(t, PaymentStatusPaid, order.PaymentStatus)
}

func TestMarkAsCompleted(t *testing.T) {
	order := Order{Status: OrderStatusProcessing}
	order.MarkAsCompleted()

	assert.Equal(t, OrderStatusCompleted, order.Status)
	assert.NotNil(t, order.DeliveredAt)
}

func TestValidOrderStatus(t *testing.T) {
	for _, status := range []string{OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled} {
		assert.True(t, ValidOrderStatus(status), status)
	}
	assert.False(t, ValidOrderStatus("shipped"))
	assert.False(t, ValidOrderStatus(""))
}

func TestOrderItemSubtotal(t *testing.T) {
	item := OrderItem{UnitPrice: 19.99, Quantity: 3}
	assert.Equal(t, 59.97, item.Subtotal())
}
