package database

import (
	"time"

	"gorm.io/gorm"

	"atelier/internal/models"
)

// CreateOrder persists an order and its items in one transaction.
// For every line referencing a limited-stock product the stock is
// decremented with a guarded UPDATE inside the same transaction, so
// two concurrent checkouts cannot both take the last unit: the loser
// sees zero affected rows and the whole insert rolls back.
func (d *Database) CreateOrder(order *models.Order) error {
	return d.gorm.Transaction(func(tx *gorm.DB) error {
		for i := range order.Items {
			item := &order.Items[i]

			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				return translateErr(err)
			}
			if !product.IsAvailable {
				return ErrProductUnavailable
			}
			if product.StockQuantity > 0 {
				res := tx.Model(&models.Product{}).
					Where("id = ? AND stock_quantity >= ?", product.ID, item.Quantity).
					UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity))
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return ErrInsufficientStock
				}
			}
		}
		return tx.Create(order).Error
	})
}

// GetOrderByID looks up an order by primary key, items included.
func (d *Database) GetOrderByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := d.gorm.Preload("Items").First(&order, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &order, nil
}

// GetOrderByOrderID looks up an order by its external identifier.
func (d *Database) GetOrderByOrderID(orderID string) (*models.Order, error) {
	var order models.Order
	if err := d.gorm.Preload("Items").Where("order_id = ?", orderID).First(&order).Error; err != nil {
		return nil, translateErr(err)
	}
	return &order, nil
}

// GetOrderByPaymentIntentID finds the order holding the given Stripe
// payment-intent reference. Used by the webhook receiver.
func (d *Database) GetOrderByPaymentIntentID(intentID string) (*models.Order, error) {
	var order models.Order
	if err := d.gorm.Preload("Items").Where("stripe_payment_intent_id = ?", intentID).First(&order).Error; err != nil {
		return nil, translateErr(err)
	}
	return &order, nil
}

// GetOrderItemByID looks up a single order item with its parent order.
func (d *Database) GetOrderItemByID(id uint) (*models.OrderItem, *models.Order, error) {
	var item models.OrderItem
	if err := d.gorm.First(&item, id).Error; err != nil {
		return nil, nil, translateErr(err)
	}
	order, err := d.GetOrderByID(item.OrderID)
	if err != nil {
		return nil, nil, err
	}
	return &item, order, nil
}

// GetOrdersByEmail returns a customer's orders, newest first.
func (d *Database) GetOrdersByEmail(email string) ([]models.Order, error) {
	var orders []models.Order
	err := d.gorm.Preload("Items").
		Where("customer_email = ?", email).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// GetOrdersByUserID returns the orders placed by a registered user.
func (d *Database) GetOrdersByUserID(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := d.gorm.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// UpdateOrder saves changes to an existing order.
func (d *Database) UpdateOrder(order *models.Order) error {
	return d.gorm.Save(order).Error
}

// DeleteOrder removes an order and cascades to its items. Referenced
// products are left untouched.
func (d *Database) DeleteOrder(id uint) error {
	return d.gorm.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
}

// GetOrdersPage returns one admin page of orders plus the total count.
func (d *Database) GetOrdersPage(page, perPage int) ([]models.Order, int64, error) {
	var total int64
	if err := d.gorm.Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var orders []models.Order
	err := d.gorm.Preload("Items").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&orders).Error
	return orders, total, err
}

// GetRecentOrders returns the n most recent orders for the dashboard.
func (d *Database) GetRecentOrders(n int) ([]models.Order, error) {
	var orders []models.Order
	err := d.gorm.Order("created_at DESC").Limit(n).Find(&orders).Error
	return orders, err
}

// CountOrders returns the total number of orders.
func (d *Database) CountOrders() (int64, error) {
	var n int64
	err := d.gorm.Model(&models.Order{}).Count(&n).Error
	return n, err
}

// CountPaidOrders returns how many orders have been paid.
func (d *Database) CountPaidOrders() (int64, error) {
	var n int64
	err := d.gorm.Model(&models.Order{}).
		Where("payment_status = ?", models.PaymentStatusPaid).
		Count(&n).Error
	return n, err
}

// RevenueSince sums the totals of paid orders created after the cutoff.
func (d *Database) RevenueSince(cutoff time.Time) (float64, error) {
	var revenue *float64
	err := d.gorm.Model(&models.Order{}).
		Where("created_at >= ? AND payment_status = ?", cutoff, models.PaymentStatusPaid).
		Select("SUM(total_amount)").
		Scan(&revenue).Error
	if err != nil || revenue == nil {
		return 0, err
	}
	return *revenue, nil
}
