package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"atelier/internal/models"
)

const adminPageSize = 20

// AdminDashboard shows entity counts, 30-day revenue from paid orders
// and the latest orders.
func (h *Handler) AdminDashboard(c *gin.Context) {
	works, err := h.db.CountPortfolio()
	if err != nil {
		h.serverError(c, err)
		return
	}
	products, err := h.db.CountProducts()
	if err != nil {
		h.serverError(c, err)
		return
	}
	orders, err := h.db.CountOrders()
	if err != nil {
		h.serverError(c, err)
		return
	}
	users, err := h.db.CountUsers()
	if err != nil {
		h.serverError(c, err)
		return
	}
	revenue, err := h.db.RevenueSince(time.Now().AddDate(0, 0, -30))
	if err != nil {
		h.serverError(c, err)
		return
	}
	recent, err := h.db.GetRecentOrders(5)
	if err != nil {
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "admin/dashboard.html", gin.H{
		"title":        "Dashboard",
		"workCount":    works,
		"productCount": products,
		"orderCount":   orders,
		"userCount":    users,
		"revenue":      revenue,
		"recentOrders": recent,
	})
}

// AdminOrders lists orders one page at a time.
func (h *Handler) AdminOrders(c *gin.Context) {
	page := pageParam(c)
	orders, total, err := h.db.GetOrdersPage(page, adminPageSize)
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "admin/orders.html", gin.H{
		"title":      "Orders",
		"orders":     orders,
		"page":       page,
		"totalPages": totalPages(total, adminPageSize),
	})
}

// AdminOrderDetail shows one order with its items.
func (h *Handler) AdminOrderDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.notFound(c)
		return
	}
	order, err := h.db.GetOrderByID(uint(id))
	if err != nil {
		h.notFound(c)
		return
	}
	h.render(c, http.StatusOK, "admin/order_detail.html", gin.H{
		"title":    "Order " + order.OrderID,
		"order":    order,
		"statuses": []string{models.OrderStatusPending, models.OrderStatusProcessing, models.OrderStatusCompleted, models.OrderStatusCancelled},
	})
}

// AdminUpdateOrderStatus moves an order through its lifecycle. Only the
// known statuses are accepted; completion stamps the delivery time.
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.notFound(c)
		return
	}
	order, err := h.db.GetOrderByID(uint(id))
	if err != nil {
		h.notFound(c)
		return
	}

	status := c.PostForm("status")
	if !models.ValidOrderStatus(status) {
		h.addFlash(c, "error", "Invalid order status.")
		c.Redirect(http.StatusSeeOther, "/admin/orders/"+c.Param("id"))
		return
	}
	if status == models.OrderStatusCompleted {
		order.MarkAsCompleted()
	} else {
		order.Status = status
	}
	if err := h.db.UpdateOrder(order); err != nil {
		h.serverError(c, err)
		return
	}

	h.addFlash(c, "success", "Order status updated to "+status+".")
	c.Redirect(http.StatusSeeOther, "/admin/orders/"+c.Param("id"))
}

// AdminUsers lists registered users one page at a time.
func (h *Handler) AdminUsers(c *gin.Context) {
	page := pageParam(c)
	users, total, err := h.db.GetUsersPage(page, adminPageSize)
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "admin/users.html", gin.H{
		"title":      "Users",
		"users":      users,
		"page":       page,
		"totalPages": totalPages(total, adminPageSize),
	})
}

// AdminUserDetail shows one user and their order history.
func (h *Handler) AdminUserDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.notFound(c)
		return
	}
	user, err := h.db.GetUserByID(uint(id))
	if err != nil {
		h.notFound(c)
		return
	}
	orders, err := h.db.GetOrdersByUserID(user.ID)
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "admin/user_detail.html", gin.H{
		"title":   "User " + user.Username,
		"account": user,
		"orders":  orders,
	})
}

// AdminToggleUserStatus flips a user's active flag. Admins cannot
// deactivate their own account.
func (h *Handler) AdminToggleUserStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.notFound(c)
		return
	}
	target, err := h.db.GetUserByID(uint(id))
	if err != nil {
		h.notFound(c)
		return
	}

	admin := c.MustGet("user").(*models.User)
	if target.ID == admin.ID {
		h.addFlash(c, "error", "You cannot deactivate your own account.")
		c.Redirect(http.StatusSeeOther, "/admin/users/"+c.Param("id"))
		return
	}

	target.IsActive = !target.IsActive
	if err := h.db.UpdateUser(target); err != nil {
		h.serverError(c, err)
		return
	}

	if target.IsActive {
		h.addFlash(c, "success", "Account "+target.Username+" activated.")
	} else {
		h.addFlash(c, "success", "Account "+target.Username+" deactivated.")
	}
	c.Redirect(http.StatusSeeOther, "/admin/users/"+c.Param("id"))
}

// AdminProducts lists products, including unavailable ones.
func (h *Handler) AdminProducts(c *gin.Context) {
	page := pageParam(c)
	products, total, err := h.db.GetProductsPage(page, adminPageSize)
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "admin/products.html", gin.H{
		"title":      "Products",
		"products":   products,
		"page":       page,
		"totalPages": totalPages(total, adminPageSize),
	})
}

// AdminNewProductPage renders the empty product form.
func (h *Handler) AdminNewProductPage(c *gin.Context) {
	h.render(c, http.StatusOK, "admin/product_form.html", gin.H{
		"title":   "New product",
		"product": &models.Product{IsAvailable: true, DigitalProduct: true},
	})
}

// AdminCreateProduct inserts a product from the submitted form.
func (h *Handler) AdminCreateProduct(c *gin.Context) {
	var product models.Product
	if msg := bindProductForm(c, &product); msg != "" {
		h.addFlash(c, "error", msg)
		c.Redirect(http.StatusSeeOther, "/admin/products/new")
		return
	}
	if err := h.db.CreateProduct(&product); err != nil {
		h.serverError(c, err)
		return
	}
	h.addFlash(c, "success", "Product "+product.Name+" created.")
	c.Redirect(http.StatusSeeOther, "/admin/products")
}

// AdminEditProductPage renders the product form pre-filled.
func (h *Handler) AdminEditProductPage(c *gin.Context) {
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
	h.render(c, http.StatusOK, "admin/product_form.html", gin.H{
		"title":   "Edit product",
		"product": product,
	})
}

// AdminUpdateProduct saves product edits from the submitted form.
func (h *Handler) AdminUpdateProduct(c *gin.Context) {
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
	if msg := bindProductForm(c, product); msg != "" {
		h.addFlash(c, "error", msg)
		c.Redirect(http.StatusSeeOther, "/admin/products/"+c.Param("id")+"/edit")
		return
	}
	if err := h.db.UpdateProduct(product); err != nil {
		h.serverError(c, err)
		return
	}
	h.addFlash(c, "success", "Product "+product.Name+" updated.")
	c.Redirect(http.StatusSeeOther, "/admin/products")
}

// AdminDeleteProduct removes a product. Past orders keep their
// snapshotted lines.
func (h *Handler) AdminDeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.notFound(c)
		return
	}
	if err := h.db.DeleteProduct(uint(id)); err != nil {
		h.serverError(c, err)
		return
	}
	h.addFlash(c, "success", "Product deleted.")
	c.Redirect(http.StatusSeeOther, "/admin/products")
}

// AdminPortfolio lists all works for management.
func (h *Handler) AdminPortfolio(c *gin.Context) {
	works, err := h.db.GetAllPortfolio()
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "admin/portfolio.html", gin.H{
		"title": "Portfolio",
		"works": works,
	})
}

// AdminNewWorkPage renders the empty portfolio form.
func (h *Handler) AdminNewWorkPage(c *gin.Context) {
	h.render(c, http.StatusOK, "admin/work_form.html", gin.H{
		"title": "New work",
		"work":  &models.Portfolio{},
	})
}

// AdminCreateWork inserts a portfolio work from the submitted form.
func (h *Handler) AdminCreateWork(c *gin.Context) {
	var work models.Portfolio
	if msg := bindWorkForm(c, &work); msg != "" {
		h.addFlash(c, "error", msg)
		c.Redirect(http.StatusSeeOther, "/admin/portfolio/new")
		return
	}
	if err := h.db.CreatePortfolio(&work); err != nil {
		h.serverError(c, err)
		return
	}
	h.addFlash(c, "success", "Work "+work.Title+" created.")
	c.Redirect(http.StatusSeeOther, "/admin/portfolio")
}

// AdminEditWorkPage renders the portfolio form pre-filled.
func (h *Handler) AdminEditWorkPage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.notFound(c)
		return
	}
	work, err := h.db.GetPortfolioByID(uint(id))
	if err != nil {
		h.notFound(c)
		return
	}
	h.render(c, http.StatusOK, "admin/work_form.html", gin.H{
		"title": "Edit work",
		"work":  work,
	})
}

// AdminUpdateWork saves portfolio edits from the submitted form.
func (h *Handler) AdminUpdateWork(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.notFound(c)
		return
	}
	work, err := h.db.GetPortfolioByID(uint(id))
	if err != nil {
		h.notFound(c)
		return
	}
	if msg := bindWorkForm(c, work); msg != "" {
		h.addFlash(c, "error", msg)
		c.Redirect(http.StatusSeeOther, "/admin/portfolio/"+c.Param("id")+"/edit")
		return
	}
	if err := h.db.UpdatePortfolio(work); err != nil {
		h.serverError(c, err)
		return
	}
	h.addFlash(c, "success", "Work "+work.Title+" updated.")
	c.Redirect(http.StatusSeeOther, "/admin/portfolio")
}

// AdminDeleteWork removes a portfolio work.
func (h *Handler) AdminDeleteWork(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.notFound(c)
		return
	}
	if err := h.db.DeletePortfolio(uint(id)); err != nil {
		h.serverError(c, err)
		return
	}
	h.addFlash(c, "success", "Work deleted.")
	c.Redirect(http.StatusSeeOther, "/admin/portfolio")
}

func bindProductForm(c *gin.Context, product *models.Product) string {
	name := strings.TrimSpace(c.PostForm("name"))
	priceStr := strings.TrimSpace(c.PostForm("price"))
	if name == "" || priceStr == "" {
		return "Name and price are required."
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 {
		return "Price must be a non-negative number."
	}
	stock := 0
	if s := strings.TrimSpace(c.PostForm("stock_quantity")); s != "" {
		if stock, err = strconv.Atoi(s); err != nil || stock < 0 {
			return "Stock quantity must be a non-negative number."
		}
	}

	product.Name = name
	product.Description = strings.TrimSpace(c.PostForm("description"))
	product.Price = price
	product.ImageURL = strings.TrimSpace(c.PostForm("image_url"))
	product.Category = strings.TrimSpace(c.PostForm("category"))
	product.StockQuantity = stock
	product.DeliveryTime = strings.TrimSpace(c.PostForm("delivery_time"))
	product.IsAvailable = c.PostForm("is_available") == "on"
	product.IsFeatured = c.PostForm("is_featured") == "on"
	product.DigitalProduct = c.PostForm("digital_product") == "on"
	product.RequiresImage = c.PostForm("requires_image") == "on"
	return ""
}

func bindWorkForm(c *gin.Context, work *models.Portfolio) string {
	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		return "Title is required."
	}
	work.Title = title
	work.Description = strings.TrimSpace(c.PostForm("description"))
	work.ImageURL = strings.TrimSpace(c.PostForm("image_url"))
	work.Category = strings.TrimSpace(c.PostForm("category"))
	work.Client = strings.TrimSpace(c.PostForm("client"))
	work.ProjectURL = strings.TrimSpace(c.PostForm("project_url"))
	work.Technologies = strings.TrimSpace(c.PostForm("technologies"))
	work.Featured = c.PostForm("featured") == "on"
	return ""
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func totalPages(total int64, perPage int) int {
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	if pages < 1 {
		pages = 1
	}
	return pages
}
