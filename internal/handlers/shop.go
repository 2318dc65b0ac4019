package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"

	"atelier/internal/database"
	"atelier/internal/models"
	"atelier/internal/services"
)

// ShopPage shows the product grid, optionally filtered by category.
func (h *Handler) ShopPage(c *gin.Context) {
	category := c.DefaultQuery("category", "all")
	products, err := h.db.GetProductsByCategory(category)
	if err != nil {
		h.serverError(c, err)
		return
	}
	categories, err := h.db.GetProductCategories()
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "shop.html", gin.H{
		"title":            "Shop",
		"products":         products,
		"categories":       categories,
		"selectedCategory": category,
	})
}

// ProductDetailPage shows one product and up to four related ones.
func (h *Handler) ProductDetailPage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.notFound(c)
		return
	}
	product, err := h.db.GetProductByID(uint(id))
	if err != nil {
		h.notFound(c)
		return
	}
	related, err := h.db.GetRelatedProducts(product, 4)
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "product_detail.html", gin.H{
		"title":           product.Name,
		"product":         product,
		"relatedProducts": related,
	})
}

// CartPage shows the cart priced from live product data.
func (h *Handler) CartPage(c *gin.Context) {
	s := h.session(c)
	lines, total, err := h.carts.Lines(h.cart(s))
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "cart.html", gin.H{
		"title":     "Your cart",
		"cartItems": lines,
		"total":     total,
	})
}

// CheckoutPage shows the checkout form. Requires login; an empty cart
// bounces back to the cart page.
func (h *Handler) CheckoutPage(c *gin.Context) {
	s := h.session(c)
	lines, total, err := h.carts.Lines(h.cart(s))
	if err != nil {
		h.serverError(c, err)
		return
	}
	if len(lines) == 0 {
		h.addFlash(c, "warning", "Your cart is empty.")
		c.Redirect(http.StatusSeeOther, "/shop/cart")
		return
	}
	h.render(c, http.StatusOK, "checkout.html", gin.H{
		"title":     "Checkout",
		"cartItems": lines,
		"total":     total,
	})
}

type cartMutation struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// AddToCart merges a quantity into the session cart.
func (h *Handler) AddToCart(c *gin.Context) {
	var req cartMutation
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	s := h.session(c)
	cart := h.cart(s)
	if err := h.carts.Add(cart, req.ProductID, req.Quantity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": cartErrorMessage(err)})
		return
	}
	h.putCart(s, cart)
	h.saveSession(c, s)

	product, err := h.db.GetProductByID(req.ProductID)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"cart_count": h.carts.Count(cart),
		"message":    product.Name + " added to cart!",
	})
}

// UpdateCart overwrites a product's quantity, removing it at zero.
func (h *Handler) UpdateCart(c *gin.Context) {
	var req cartMutation
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	s := h.session(c)
	cart := h.cart(s)
	if err := h.carts.Update(cart, req.ProductID, req.Quantity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": cartErrorMessage(err)})
		return
	}
	h.putCart(s, cart)
	h.saveSession(c, s)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RemoveFromCart deletes a product from the cart.
func (h *Handler) RemoveFromCart(c *gin.Context) {
	var req cartMutation
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	s := h.session(c)
	cart := h.cart(s)
	h.carts.Remove(cart, req.ProductID)
	h.putCart(s, cart)
	h.saveSession(c, s)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ClearCart empties the session cart.
func (h *Handler) ClearCart(c *gin.Context) {
	s := h.session(c)
	h.clearCart(s)
	h.saveSession(c, s)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CartCount returns the live unit count for the cart badge.
func (h *Handler) CartCount(c *gin.Context) {
	s := h.session(c)
	c.JSON(http.StatusOK, gin.H{"count": h.carts.Count(h.cart(s))})
}

// CartTotal returns the live cart total.
func (h *Handler) CartTotal(c *gin.Context) {
	s := h.session(c)
	_, total, err := h.carts.Lines(h.cart(s))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute cart total"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

// CreatePaymentIntent runs the checkout sequence: re-validate the cart,
// compute totals, request a payment intent and persist the order plus
// its items in one transaction. Any validation failure aborts before
// the external call; a Stripe or commit failure leaves no order behind.
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	s := h.session(c)
	cart := h.cart(s)
	if len(cart) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	form, err := readCheckoutForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if form.Name == "" || form.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer name and email are required"})
		return
	}

	// Re-validate every line against the live catalog before touching
	// Stripe or the database.
	order := models.Order{
		CustomerName:  form.Name,
		CustomerEmail: form.Email,
		CustomerPhone: form.Phone,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		PaymentMethod: "card",
	}
	if user := h.currentUser(s); user != nil {
		order.UserID = &user.ID
	}
	order.ShippingAddress = form.shippingAddress()

	for key, quantity := range cart {
		id, convErr := strconv.ParseUint(key, 10, 64)
		if convErr != nil || quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart items"})
			return
		}
		product, prodErr := h.db.GetProductByID(uint(id))
		if prodErr != nil || !product.IsAvailable {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product " + key + " is no longer available"})
			return
		}
		if !product.CheckAvailability(quantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock for " + product.Name})
			return
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID:          product.ID,
			ProductName:        product.Name,
			ProductDescription: product.Description,
			UnitPrice:          product.Price,
			Quantity:           quantity,
		})
	}

	order.CalculateTotals()
	if order.TotalAmount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart items"})
		return
	}
	if order.TotalAmount < services.MinimumChargeAmount {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order total must be at least 0.50 €"})
		return
	}

	if !h.payments.Enabled() {
		slog.Error("stripe secret key not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment processing is not configured"})
		return
	}

	intent, err := h.payments.CreateIntent(services.IntentRequest{
		Amount:        order.TotalAmount,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		ItemCount:     len(order.Items),
		Shipping: services.ShippingDetails{
			Name:       form.Name,
			Line1:      form.AddressLine1,
			Line2:      form.AddressLine2,
			City:       form.AddressCity,
			PostalCode: form.AddressPostal,
			Country:    form.AddressCountry,
		},
	})
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			slog.Error("stripe error", "code", stripeErr.Code, "error", err)
		} else {
			slog.Error("payment intent creation failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment processing error. Please try again."})
		return
	}
	order.StripePaymentIntentID = intent.ID

	if err := h.db.CreateOrder(&order); err != nil {
		slog.Error("order creation failed", "intent_id", intent.ID, "error", err)
		switch {
		case errors.Is(err, database.ErrProductUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{"error": "A product in your cart is no longer available"})
		case errors.Is(err, database.ErrInsufficientStock):
			c.JSON(http.StatusBadRequest, gin.H{"error": "A product in your cart just sold out"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
		}
		return
	}

	h.attachCustomerImage(c, &order)

	c.JSON(http.StatusOK, gin.H{
		"client_secret": intent.ClientSecret,
		"order_id":      order.OrderID,
		"amount":        order.TotalAmount,
	})
}

// attachCustomerImage stores an uploaded personalization image on the
// first order line whose product requires one.
func (h *Handler) attachCustomerImage(c *gin.Context, order *models.Order) {
	file, header, err := c.Request.FormFile("customer_image")
	if err != nil {
		return
	}
	defer file.Close()

	for i := range order.Items {
		item := &order.Items[i]
		product, err := h.db.GetProductByID(item.ProductID)
		if err != nil || !product.RequiresImage {
			continue
		}
		path, err := h.uploads.SaveCustomerImage(file, header, order.ID, item.ProductID)
		if err != nil {
			slog.Error("saving customer image failed", "order_id", order.OrderID, "error", err)
			return
		}
		item.CustomerImage = path
		if err := h.db.UpdateOrder(order); err != nil {
			slog.Error("persisting customer image path failed", "order_id", order.OrderID, "error", err)
		}
		return
	}
}

// PaymentSuccessPage clears the cart and shows the order summary. The
// authoritative paid transition happens in the webhook.
func (h *Handler) PaymentSuccessPage(c *gin.Context) {
	var order *models.Order
	if orderID := c.Query("order_id"); orderID != "" {
		if found, err := h.db.GetOrderByOrderID(orderID); err == nil {
			order = found
		}
	}

	s := h.session(c)
	h.clearCart(s)
	h.saveSession(c, s)

	h.render(c, http.StatusOK, "payment_success.html", gin.H{
		"title": "Payment received",
		"order": order,
	})
}

// OrderDetailPage shows one order looked up by its external id.
func (h *Handler) OrderDetailPage(c *gin.Context) {
	order, err := h.db.GetOrderByOrderID(c.Param("orderID"))
	if err != nil {
		h.notFound(c)
		return
	}
	h.render(c, http.StatusOK, "order_detail.html", gin.H{
		"title": "Order " + order.OrderID,
		"order": order,
	})
}

// MyOrdersPage lists a customer's orders by email address.
func (h *Handler) MyOrdersPage(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		h.addFlash(c, "warning", "Please provide your email address to view orders.")
		c.Redirect(http.StatusSeeOther, "/contact")
		return
	}
	orders, err := h.db.GetOrdersByEmail(email)
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "my_orders.html", gin.H{
		"title":  "My orders",
		"orders": orders,
		"email":  email,
	})
}

// DownloadCustomerImage serves a stored personalization image to the
// admin or the customer who owns the order.
func (h *Handler) DownloadCustomerImage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("itemID"), 10, 64)
	if err != nil {
		h.notFound(c)
		return
	}
	item, order, err := h.db.GetOrderItemByID(uint(id))
	if err != nil {
		h.notFound(c)
		return
	}
	if item.CustomerImage == "" {
		h.addFlash(c, "error", "No image available for this order.")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	user := c.MustGet("user").(*models.User)
	if !user.IsAdmin() && (order.UserID == nil || *order.UserID != user.ID) {
		h.addFlash(c, "error", "You do not have permission to access this image.")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	path, err := h.uploads.CustomerImagePath(item.CustomerImage)
	if err != nil {
		h.notFound(c)
		return
	}
	c.FileAttachment(path, "customer_image.jpg")
}

// StripeWebhook receives payment confirmations. The signature is
// verified when a webhook secret is configured. The paid transition is
// idempotent, so duplicate deliveries are harmless.
func (h *Handler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable payload"})
		return
	}

	event, err := h.payments.ParseWebhookEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		slog.Error("webhook parse failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch event.Type {
	case services.EventPaymentSucceeded:
		order, err := h.db.GetOrderByPaymentIntentID(event.IntentID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				slog.Warn("webhook for unknown payment intent", "intent_id", event.IntentID)
				break
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
			return
		}
		order.MarkAsPaid()
		if err := h.db.UpdateOrder(order); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
			return
		}
		slog.Info("order marked as paid via webhook", "order_id", order.OrderID)

		go func(o models.Order) {
			if err := h.email.SendOrderConfirmation(&o); err != nil {
				slog.Error("order confirmation failed", "order_id", o.OrderID, "error", err)
			}
		}(*order)

	case services.EventPaymentFailed:
		if order, err := h.db.GetOrderByPaymentIntentID(event.IntentID); err == nil {
			order.PaymentStatus = models.PaymentStatusFailed
			warn := h.db.UpdateOrder(order)
			if warn != nil {
				slog.Error("marking order failed errored", "order_id", order.OrderID, "error", warn)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func cartErrorMessage(err error) string {
	switch {
	case errors.Is(err, database.ErrProductUnavailable):
		return "Product not available"
	case errors.Is(err, database.ErrInsufficientStock):
		return "Insufficient stock"
	default:
		return "Failed to update cart"
	}
}

// checkoutForm is the customer information submitted with a checkout,
// accepted as JSON or multipart form data (the latter carries the
// optional personalization image).
type checkoutForm struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	AddressLine1   string `json:"address_line1"`
	AddressLine2   string `json:"address_line2"`
	AddressCity    string `json:"address_city"`
	AddressPostal  string `json:"address_postal"`
	AddressCountry string `json:"address_country"`
}

func readCheckoutForm(c *gin.Context) (*checkoutForm, error) {
	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
			return nil, err
		}
		return &checkoutForm{
			Name:           strings.TrimSpace(c.PostForm("name")),
			Email:          strings.TrimSpace(c.PostForm("email")),
			Phone:          strings.TrimSpace(c.PostForm("phone")),
			AddressLine1:   strings.TrimSpace(c.PostForm("address_line1")),
			AddressLine2:   strings.TrimSpace(c.PostForm("address_line2")),
			AddressCity:    strings.TrimSpace(c.PostForm("address_city")),
			AddressPostal:  strings.TrimSpace(c.PostForm("address_postal")),
			AddressCountry: strings.TrimSpace(c.PostForm("address_country")),
		}, nil
	}

	var form checkoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		return nil, err
	}
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	return &form, nil
}

func (f *checkoutForm) shippingAddress() string {
	parts := []string{}
	if f.AddressLine1 != "" {
		parts = append(parts, f.AddressLine1)
	}
	if f.AddressLine2 != "" {
		parts = append(parts, f.AddressLine2)
	}
	if f.AddressPostal != "" || f.AddressCity != "" {
		parts = append(parts, strings.TrimSpace(f.AddressPostal+" "+f.AddressCity))
	}
	if f.AddressCountry != "" {
		parts = append(parts, f.AddressCountry)
	}
	return strings.Join(parts, "\n")
}
