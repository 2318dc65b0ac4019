package services

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"atelier/internal/database"
	"atelier/internal/models"
)

// Cart is the session-held mapping of product id to quantity. Keys are
// strings because the map travels through the session codec. Nothing
// is persisted until checkout, and no price is snapshotted: price
// changes show up live until the order is created.
type Cart map[string]int

// CartLine is one cart entry resolved against the live catalog.
type CartLine struct {
	Product  models.Product
	Quantity int
	Subtotal float64
}

// CartService validates cart mutations against current product
// availability and stock and prices the cart from live data.
type CartService struct {
	db *database.Database
}

// NewCartService creates a cart service bound to the catalog.
func NewCartService(db *database.Database) *CartService {
	return &CartService{db: db}
}

// Add merges quantity into the cart after validating that the product
// exists, is available, and has sufficient stock for the combined
// quantity.
func (cs *CartService) Add(cart Cart, productID uint, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("invalid quantity: %d", quantity)
	}
	product, err := cs.db.GetProductByID(productID)
	if err != nil {
		return database.ErrProductUnavailable
	}
	if !product.IsAvailable {
		return database.ErrProductUnavailable
	}
	key := cartKey(productID)
	if !product.CheckAvailability(cart[key] + quantity) {
		return database.ErrInsufficientStock
	}
	cart[key] += quantity
	return nil
}

// Update overwrites the quantity for a product, removing the entry
// when the new quantity is zero or negative.
func (cs *CartService) Update(cart Cart, productID uint, quantity int) error {
	key := cartKey(productID)
	if quantity <= 0 {
		delete(cart, key)
		return nil
	}
	product, err := cs.db.GetProductByID(productID)
	if err != nil {
		return database.ErrProductUnavailable
	}
	if !product.IsAvailable {
		return database.ErrProductUnavailable
	}
	if !product.CheckAvailability(quantity) {
		return database.ErrInsufficientStock
	}
	cart[key] = quantity
	return nil
}

// Remove deletes a product from the cart.
func (cs *CartService) Remove(cart Cart, productID uint) {
	delete(cart, cartKey(productID))
}

// Lines resolves the cart against the catalog. Entries whose product
// has disappeared or become unavailable are silently skipped, so the
// returned total only covers items a customer can still buy.
func (cs *CartService) Lines(cart Cart) ([]CartLine, float64, error) {
	lines := make([]CartLine, 0, len(cart))
	total := decimal.Zero
	for key, quantity := range cart {
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil || quantity <= 0 {
			continue
		}
		product, err := cs.db.GetProductByID(uint(id))
		if err != nil {
			if err == database.ErrNotFound {
				continue
			}
			return nil, 0, err
		}
		if !product.IsAvailable {
			continue
		}
		subtotal := decimal.NewFromFloat(product.Price).
			Mul(decimal.NewFromInt(int64(quantity))).
			Round(2)
		sub, _ := subtotal.Float64()
		lines = append(lines, CartLine{Product: *product, Quantity: quantity, Subtotal: sub})
		total = total.Add(subtotal)
	}
	f, _ := total.Round(2).Float64()
	return lines, f, nil
}

// Count returns the number of units across the still-available items.
func (cs *CartService) Count(cart Cart) int {
	lines, _, err := cs.Lines(cart)
	if err != nil {
		return 0
	}
	n := 0
	for _, line := range lines {
		n += line.Quantity
	}
	return n
}

func cartKey(productID uint) string {
	return strconv.FormatUint(uint64(productID), 10)
}
