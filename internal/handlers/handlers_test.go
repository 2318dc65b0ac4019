package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/config"
	"atelier/internal/database"
	"atelier/internal/models"
	"atelier/internal/services"
)

type stubPayments struct {
	intent    *services.Intent
	intentErr error
	event     *services.WebhookEvent
	eventErr  error
	created   []services.IntentRequest
}

func (s *stubPayments) Enabled() bool { return true }

func (s *stubPayments) CreateIntent(req services.IntentRequest) (*services.Intent, error) {
	s.created = append(s.created, req)
	return s.intent, s.intentErr
}

func (s *stubPayments) ParseWebhookEvent(payload []byte, signatureHeader string) (*services.WebhookEvent, error) {
	return s.event, s.eventErr
}

type testApp struct {
	router   *gin.Engine
	db       *database.Database
	payments *stubPayments
	cookies  []*http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		SessionSecret: []byte("test-session-secret-32-bytes!!!!"),
		UploadDir:     t.TempDir(),
		MaxUploadSize: 16 << 20,
	}
	payments := &stubPayments{
		intent: &services.Intent{ID: "pi_test", ClientSecret: "cs_test"},
	}
	h := NewHandler(db, cfg, payments, services.NewEmailService(cfg))

	r := gin.New()
	shop := r.Group("/shop")
	{
		shop.POST("/add_to_cart", h.AddToCart)
		shop.POST("/update_cart", h.UpdateCart)
		shop.POST("/remove_from_cart", h.RemoveFromCart)
		shop.GET("/cart_count", h.CartCount)
		shop.GET("/cart_total", h.CartTotal)
		shop.POST("/create-payment-intent", h.CreatePaymentIntent)
		shop.POST("/webhook", h.StripeWebhook)
	}
	api := r.Group("/api")
	{
		api.GET("/products", h.APIProducts)
		api.GET("/portfolio", h.APIPortfolio)
		api.GET("/orders/:orderID", h.APIOrder)
		api.GET("/stats", h.APIStats)
	}
	admin := r.Group("/admin", h.RequireAdmin())
	{
		admin.GET("/orders", h.AdminOrders)
	}

	return &testApp{router: r, db: db, payments: payments}
}

// do sends a request, carrying session cookies across calls.
func (a *testApp) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range a.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		a.cookies = cookies
	}
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCheckoutCreatesOrderWithLivePrices(t *testing.T) {
	app := newTestApp(t)
	a := models.Product{Name: "A", Price: 10.00, IsAvailable: true}
	b := models.Product{Name: "B", Price: 25.00, IsAvailable: true}
	require.NoError(t, app.db.CreateProduct(&a))
	require.NoError(t, app.db.CreateProduct(&b))

	w := app.do(t, http.MethodPost, "/shop/add_to_cart", gin.H{"product_id": a.ID, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = app.do(t, http.MethodPost, "/shop/add_to_cart", gin.H{"product_id": b.ID, "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(t, http.MethodPost, "/shop/create-payment-intent", gin.H{
		"name":  "June Vega",
		"email": "june@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeJSON(t, w)
	assert.Equal(t, "cs_test", resp["client_secret"])
	assert.Equal(t, 45.00, resp["amount"])
	require.NotEmpty(t, resp["order_id"])

	order, err := app.db.GetOrderByOrderID(resp["order_id"].(string))
	require.NoError(t, err)
	assert.Equal(t, 45.00, order.Subtotal)
	assert.Equal(t, order.Subtotal+order.TaxAmount+order.ShippingCost, order.TotalAmount)
	assert.Equal(t, "pi_test", order.StripePaymentIntentID)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)

	require.Len(t, app.payments.created, 1)
	assert.Equal(t, 45.00, app.payments.created[0].Amount)
}

func TestCheckoutEmptyCart(t *testing.T) {
	app := newTestApp(t)
	w := app.do(t, http.MethodPost, "/shop/create-payment-intent", gin.H{
		"name":  "June Vega",
		"email": "june@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutBelowMinimumCharge(t *testing.T) {
	app := newTestApp(t)
	p := models.Product{Name: "Sticker", Price: 0.25, IsAvailable: true}
	require.NoError(t, app.db.CreateProduct(&p))

	w := app.do(t, http.MethodPost, "/shop/add_to_cart", gin.H{"product_id": p.ID, "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/shop/create-payment-intent", gin.H{
		"name":  "June Vega",
		"email": "june@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, app.payments.created)
}

func TestCartCountExcludesUnavailable(t *testing.T) {
	app := newTestApp(t)
	p := models.Product{Name: "Poster", Price: 10, IsAvailable: true}
	require.NoError(t, app.db.CreateProduct(&p))

	app.do(t, http.MethodPost, "/shop/add_to_cart", gin.H{"product_id": p.ID, "quantity": 3})

	w := app.do(t, http.MethodGet, "/shop/cart_count", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), decodeJSON(t, w)["count"])

	p.IsAvailable = false
	require.NoError(t, app.db.UpdateProduct(&p))

	w = app.do(t, http.MethodGet, "/shop/cart_count", nil)
	assert.Equal(t, float64(0), decodeJSON(t, w)["count"])
}

func TestWebhookDoubleDeliveryIsIdempotent(t *testing.T) {
	app := newTestApp(t)
	order := models.Order{
		CustomerName:          "June Vega",
		CustomerEmail:         "june@example.com",
		Status:                models.OrderStatusPending,
		PaymentStatus:         models.PaymentStatusPending,
		StripePaymentIntentID: "pi_hook",
	}
	require.NoError(t, app.db.CreateOrder(&order))

	app.payments.event = &services.WebhookEvent{
		Type:     services.EventPaymentSucceeded,
		IntentID: "pi_hook",
	}

	w := app.do(t, http.MethodPost, "/shop/webhook", gin.H{})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	paid, err := app.db.GetOrderByOrderID(order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, paid.PaymentStatus)
	assert.Equal(t, models.OrderStatusProcessing, paid.Status)
	require.NotNil(t, paid.PaidAt)
	firstPaidAt := *paid.PaidAt

	// Same delivery again: the order must not change.
	w = app.do(t, http.MethodPost, "/shop/webhook", gin.H{})
	require.Equal(t, http.StatusOK, w.Code)

	again, err := app.db.GetOrderByOrderID(order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, again.PaymentStatus)
	require.NotNil(t, again.PaidAt)
	assert.WithinDuration(t, firstPaidAt, *again.PaidAt, time.Second)
}

func TestWebhookUnknownIntentAcknowledged(t *testing.T) {
	app := newTestApp(t)
	app.payments.event = &services.WebhookEvent{
		Type:     services.EventPaymentSucceeded,
		IntentID: "pi_nobody",
	}
	w := app.do(t, http.MethodPost, "/shop/webhook", gin.H{})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRequiresLogin(t *testing.T) {
	app := newTestApp(t)
	w := app.do(t, http.MethodGet, "/admin/orders", nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
}

func TestAPIProductsShape(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.db.CreateProduct(&models.Product{Name: "Visible", Price: 10, IsAvailable: true}))
	require.NoError(t, app.db.CreateProduct(&models.Product{Name: "Hidden", Price: 10, IsAvailable: false}))

	w := app.do(t, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeJSON(t, w)
	assert.Equal(t, float64(1), resp["total"])
	products, ok := resp["products"].([]any)
	require.True(t, ok)
	require.Len(t, products, 1)
	assert.Equal(t, "Visible", products[0].(map[string]any)["name"])
}

func TestAPIOrderByExternalID(t *testing.T) {
	app := newTestApp(t)
	order := models.Order{CustomerName: "June Vega", CustomerEmail: "june@example.com"}
	require.NoError(t, app.db.CreateOrder(&order))

	w := app.do(t, http.MethodGet, "/api/orders/"+order.OrderID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, order.OrderID, decodeJSON(t, w)["order_id"])

	w = app.do(t, http.MethodGet, "/api/orders/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIStats(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.db.CreatePortfolio(&models.Portfolio{Title: "Logo", Category: "branding"}))

	w := app.do(t, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeJSON(t, w)
	assert.Equal(t, float64(1), resp["portfolio_works"])
	assert.Equal(t, float64(0), resp["total_orders"])
}
