package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order status values.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Payment status values.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// ValidOrderStatus reports whether s is one of the known order states.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is a persisted customer purchase. It owns its items: deleting
// an order deletes the items, never the referenced products.
type Order struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	OrderID string `json:"order_id" gorm:"size:36;uniqueIndex"`
	UserID  *uint  `json:"user_id,omitempty" gorm:"index"`

	CustomerName  string `json:"customer_name" gorm:"size:100;not null"`
	CustomerEmail string `json:"customer_email" gorm:"size:100;not null;index"`
	CustomerPhone string `json:"customer_phone" gorm:"size:20"`

	ShippingAddress string `json:"shipping_address" gorm:"type:text"`
	BillingAddress  string `json:"billing_address" gorm:"type:text"`

	Subtotal     float64 `json:"subtotal" gorm:"not null;default:0"`
	TaxAmount    float64 `json:"tax_amount" gorm:"default:0"`
	ShippingCost float64 `json:"shipping_cost" gorm:"default:0"`
	TotalAmount  float64 `json:"total_amount" gorm:"not null"`

	Status        string `json:"status" gorm:"size:20;default:pending"`
	PaymentStatus string `json:"payment_status" gorm:"size:20;default:pending"`

	StripePaymentIntentID string `json:"-" gorm:"size:255;index"`
	PaymentMethod         string `json:"payment_method" gorm:"size:50"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	ShippedAt   *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns the external order identifier.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.OrderID == "" {
		o.OrderID = uuid.NewString()
	}
	return nil
}

// CalculateTotals recomputes the monetary fields from the order items.
// The invariant total_amount = subtotal + tax_amount + shipping_cost
// holds after every call.
func (o *Order) CalculateTotals() {
	subtotal := decimal.Zero
	for i := range o.Items {
		subtotal = subtotal.Add(o.Items[i].subtotalDecimal())
	}
	o.Subtotal, _ = subtotal.Round(2).Float64()
	// Digital-first shop: no tax, free shipping.
	o.TaxAmount = 0
	o.ShippingCost = 0
	total := subtotal.
		Add(decimal.NewFromFloat(o.TaxAmount)).
		Add(decimal.NewFromFloat(o.ShippingCost))
	o.TotalAmount, _ = total.Round(2).Float64()
}

// MarkAsPaid transitions the order into the paid/processing state.
// Re-applying it to an already paid order re-sets identical fields
// apart from the timestamp, so duplicate webhook deliveries are safe.
func (o *Order) MarkAsPaid() {
	if o.PaymentStatus == PaymentStatusPaid {
		return
	}
	now := time.Now().UTC()
	o.PaymentStatus = PaymentStatusPaid
	o.Status = OrderStatusProcessing
	o.PaidAt = &now
}

// MarkAsCompleted finishes the order and stamps the delivery time.
func (o *Order) MarkAsCompleted() {
	now := time.Now().UTC()
	o.Status = OrderStatusCompleted
	o.DeliveredAt = &now
}

// ToAPI returns the JSON representation served by the /api routes.
func (o *Order) ToAPI() map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for i := range o.Items {
		items = append(items, o.Items[i].ToAPI())
	}
	return map[string]any{
		"id":             o.ID,
		"order_id":       o.OrderID,
		"customer_name":  o.CustomerName,
		"customer_email": o.CustomerEmail,
		"subtotal":       o.Subtotal,
		"tax_amount":     o.TaxAmount,
		"shipping_cost":  o.ShippingCost,
		"total_amount":   o.TotalAmount,
		"status":         o.Status,
		"payment_status": o.PaymentStatus,
		"created_at":     o.CreatedAt.UTC().Format(time.RFC3339),
		"items":          items,
	}
}

// OrderItem is a line of an order. Product name, description and unit
// price are snapshotted at purchase time so later product edits do not
// change historical orders.
type OrderItem struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	OrderID   uint `json:"-" gorm:"not null;index"`
	ProductID uint `json:"product_id" gorm:"not null"`

	ProductName        string  `json:"product_name" gorm:"size:100;not null"`
	ProductDescription string  `json:"product_description" gorm:"type:text"`
	UnitPrice          float64 `json:"unit_price" gorm:"not null"`
	Quantity           int     `json:"quantity" gorm:"default:1"`

	// Optional customer-supplied image for personalization products.
	CustomerImage string `json:"customer_image,omitempty" gorm:"size:255"`
}

// Subtotal is the derived line total: unit price times quantity.
func (i *OrderItem) Subtotal() float64 {
	f, _ := i.subtotalDecimal().Float64()
	return f
}

func (i *OrderItem) subtotalDecimal() decimal.Decimal {
	return decimal.NewFromFloat(i.UnitPrice).
		Mul(decimal.NewFromInt(int64(i.Quantity))).
		Round(2)
}

// ToAPI returns the JSON representation served by the /api routes.
func (i *OrderItem) ToAPI() map[string]any {
	return map[string]any{
		"id":                  i.ID,
		"product_id":          i.ProductID,
		"product_name":        i.ProductName,
		"product_description": i.ProductDescription,
		"unit_price":          i.UnitPrice,
		"quantity":            i.Quantity,
		"subtotal":            i.Subtotal(),
	}
}
