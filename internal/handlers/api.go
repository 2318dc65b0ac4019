package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"atelier/internal/models"
)

// APIPortfolio lists all portfolio works.
func (h *Handler) APIPortfolio(c *gin.Context) {
	works, err := h.db.GetAllPortfolio()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load portfolio"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"works": apiList(works, func(w *models.Portfolio) map[string]any { return w.ToAPI() }),
		"total": len(works),
	})
}

// APIPortfolioWork returns a single portfolio work.
func (h *Handler) APIPortfolioWork(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Work not found"})
		return
	}
	work, err := h.db.GetPortfolioByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Work not found"})
		return
	}
	c.JSON(http.StatusOK, work.ToAPI())
}

// APIPortfolioCategories returns the distinct portfolio categories.
func (h *Handler) APIPortfolioCategories(c *gin.Context) {
	categories, err := h.db.GetPortfolioCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories, "total": len(categories)})
}

// APIProducts lists products, filtered by category and availability.
// By default only purchasable products are returned; available=false
// includes the hidden ones.
func (h *Handler) APIProducts(c *gin.Context) {
	var (
		products []models.Product
		err      error
	)
	category := c.DefaultQuery("category", "all")
	if c.DefaultQuery("available", "true") == "false" {
		products, err = h.db.GetAllProducts()
		if err == nil && category != "all" {
			filtered := products[:0]
			for _, p := range products {
				if p.Category == category {
					filtered = append(filtered, p)
				}
			}
			products = filtered
		}
	} else {
		products, err = h.db.GetProductsByCategory(category)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products": apiList(products, func(p *models.Product) map[string]any { return p.ToAPI() }),
		"total":    len(products),
	})
}

// APIProduct returns a single product.
func (h *Handler) APIProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	product, err := h.db.GetProductByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product.ToAPI())
}

// APIProductCategories returns the distinct product categories.
func (h *Handler) APIProductCategories(c *gin.Context) {
	categories, err := h.db.GetProductCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories, "total": len(categories)})
}

// APIOrder returns an order by its external identifier. The numeric
// database key is never part of the URL.
func (h *Handler) APIOrder(c *gin.Context) {
	order, err := h.db.GetOrderByOrderID(c.Param("orderID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order.ToAPI())
}

// APIStats reports site-wide counters.
func (h *Handler) APIStats(c *gin.Context) {
	works, err := h.db.CountPortfolio()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	products, err := h.db.CountAvailableProducts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	orders, err := h.db.CountOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	paid, err := h.db.CountPaidOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"portfolio_works":    works,
		"available_products": products,
		"total_orders":       orders,
		"paid_orders":        paid,
		"generated_at":       time.Now().UTC().Format(time.RFC3339),
	})
}

func apiList[T any](items []T, toAPI func(*T) map[string]any) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for i := range items {
		out = append(out, toAPI(&items[i]))
	}
	return out
}
