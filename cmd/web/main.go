package main

import (
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"atelier/internal/config"
	"atelier/internal/database"
	"atelier/internal/handlers"
	"atelier/internal/services"
)

// pageTemplates maps every render name onto the content file paired
// with the shared base layout.
var pageTemplates = []string{
	"index.html",
	"about.html",
	"services.html",
	"contact.html",
	"search_results.html",
	"faq.html",
	"testimonials.html",
	"legal.html",
	"privacy.html",
	"terms.html",
	"portfolio.html",
	"work_detail.html",
	"shop.html",
	"product_detail.html",
	"cart.html",
	"checkout.html",
	"payment_success.html",
	"order_detail.html",
	"my_orders.html",
	"auth/login.html",
	"auth/register.html",
	"auth/profile.html",
	"auth/edit_profile.html",
	"auth/my_orders.html",
	"admin/dashboard.html",
	"admin/orders.html",
	"admin/order_detail.html",
	"admin/users.html",
	"admin/user_detail.html",
	"admin/products.html",
	"admin/product_form.html",
	"admin/portfolio.html",
	"admin/work_form.html",
	"errors/404.html",
	"errors/500.html",
}

func loadTemplates(dir string) (map[string]*template.Template, error) {
	sets := make(map[string]*template.Template, len(pageTemplates))
	base := filepath.Join(dir, "base.html")
	for _, name := range pageTemplates {
		// The base layout must be parsed first so the page's block
		// definitions override the layout's empty defaults.
		t, err := template.New("base.html").
			Funcs(handlers.TemplateFuncs).
			ParseFiles(base, filepath.Join(dir, filepath.FromSlash(name)))
		if err != nil {
			return nil, err
		}
		sets[name] = t
	}
	return sets, nil
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}
	if err := db.Seed(); err != nil {
		slog.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	payments := services.NewStripeService(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	email := services.NewEmailService(cfg)
	h := handlers.NewHandler(db, cfg, payments, email)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(handlers.SecurityHeaders())
	if err := r.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
		slog.Error("failed to set trusted proxies", "error", err)
		os.Exit(1)
	}

	templates, err := loadTemplates("templates")
	if err != nil {
		slog.Error("failed to load templates", "error", err)
		os.Exit(1)
	}
	r.HTMLRender = &handlers.HTMLRenderer{Templates: templates}

	r.Static("/static", "./static")
	registerRoutes(r, h)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("server listening", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func registerRoutes(r *gin.Engine, h *handlers.Handler) {
	r.GET("/", h.HomePage)
	r.GET("/about", h.AboutPage)
	r.GET("/services", h.ServicesPage)
	r.GET("/contact", h.ContactPage)
	r.POST("/contact", h.HandleContact)
	r.GET("/search", h.SearchPage)
	r.GET("/faq", h.FAQPage)
	r.GET("/testimonials", h.TestimonialsPage)
	r.GET("/legal", h.LegalPage)
	r.GET("/privacy", h.PrivacyPage)
	r.GET("/terms", h.TermsPage)

	portfolio := r.Group("/portfolio")
	{
		portfolio.GET("", h.PortfolioPage)
		portfolio.GET("/work/:id", h.WorkDetailPage)
		portfolio.GET("/category/:category", h.PortfolioCategoryPage)
		portfolio.GET("/featured", h.PortfolioFeaturedPage)
	}

	shop := r.Group("/shop")
	{
		shop.GET("", h.ShopPage)
		shop.GET("/product/:id", h.ProductDetailPage)
		shop.GET("/cart", h.CartPage)
		shop.GET("/checkout", h.RequireUser(), h.CheckoutPage)
		shop.POST("/add_to_cart", h.AddToCart)
		shop.POST("/update_cart", h.UpdateCart)
		shop.POST("/remove_from_cart", h.RemoveFromCart)
		shop.POST("/clear_cart", h.ClearCart)
		shop.GET("/cart_count", h.CartCount)
		shop.GET("/cart_total", h.CartTotal)
		shop.POST("/create-payment-intent", h.CreatePaymentIntent)
		shop.GET("/payment-success", h.PaymentSuccessPage)
		shop.GET("/order/:orderID", h.OrderDetailPage)
		shop.GET("/my-orders", h.MyOrdersPage)
		shop.GET("/download-customer-image/:itemID", h.RequireUser(), h.DownloadCustomerImage)
		shop.POST("/webhook", h.StripeWebhook)
	}

	api := r.Group("/api")
	{
		api.GET("/portfolio", h.APIPortfolio)
		api.GET("/portfolio/categories", h.APIPortfolioCategories)
		api.GET("/portfolio/:id", h.APIPortfolioWork)
		api.GET("/products", h.APIProducts)
		api.GET("/products/categories", h.APIProductCategories)
		api.GET("/products/:id", h.APIProduct)
		api.GET("/orders/:orderID", h.APIOrder)
		api.GET("/stats", h.APIStats)
		api.POST("/newsletter", h.NewsletterSignup)
		api.POST("/quick-quote", h.QuickQuote)
	}

	auth := r.Group("/auth")
	{
		auth.GET("/login", h.LoginPage)
		auth.POST("/login", h.HandleLogin)
		auth.GET("/register", h.RegisterPage)
		auth.POST("/register", h.HandleRegister)
		auth.GET("/logout", h.Logout)
		auth.GET("/profile", h.RequireUser(), h.ProfilePage)
		auth.GET("/profile/edit", h.RequireUser(), h.EditProfilePage)
		auth.POST("/profile/edit", h.RequireUser(), h.HandleEditProfile)
		auth.GET("/my-orders", h.RequireUser(), h.AccountOrdersPage)
	}

	admin := r.Group("/admin", h.RequireAdmin())
	{
		admin.GET("", h.AdminDashboard)
		admin.GET("/orders", h.AdminOrders)
		admin.GET("/orders/:id", h.AdminOrderDetail)
		admin.POST("/orders/:id/status", h.AdminUpdateOrderStatus)
		admin.GET("/users", h.AdminUsers)
		admin.GET("/users/:id", h.AdminUserDetail)
		admin.POST("/users/:id/toggle-status", h.AdminToggleUserStatus)
		admin.GET("/products", h.AdminProducts)
		admin.GET("/products/new", h.AdminNewProductPage)
		admin.POST("/products/new", h.AdminCreateProduct)
		admin.GET("/products/:id/edit", h.AdminEditProductPage)
		admin.POST("/products/:id/edit", h.AdminUpdateProduct)
		admin.POST("/products/:id/delete", h.AdminDeleteProduct)
		admin.GET("/portfolio", h.AdminPortfolio)
		admin.GET("/portfolio/new", h.AdminNewWorkPage)
		admin.POST("/portfolio/new", h.AdminCreateWork)
		admin.GET("/portfolio/:id/edit", h.AdminEditWorkPage)
		admin.POST("/portfolio/:id/edit", h.AdminUpdateWork)
		admin.POST("/portfolio/:id/delete", h.AdminDeleteWork)
	}

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		h.NotFoundPage(c)
	})
}
