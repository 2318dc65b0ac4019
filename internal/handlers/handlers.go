package handlers

import (
	"encoding/gob"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"atelier/internal/config"
	"atelier/internal/database"
	"atelier/internal/models"
	"atelier/internal/services"
)

const sessionName = "atelier-session"

// Register types travelling through the session codec.
func init() {
	gob.Register(map[string]int{})
	gob.Register(FlashMessage{})
}

// FlashMessage is a one-shot notice rendered on the next page view.
type FlashMessage struct {
	Type    string
	Message string
}

// PaymentService is the slice of the payment integration the handlers
// need. The Stripe implementation lives in services; tests substitute
// their own.
type PaymentService interface {
	Enabled() bool
	CreateIntent(req services.IntentRequest) (*services.Intent, error)
	ParseWebhookEvent(payload []byte, signatureHeader string) (*services.WebhookEvent, error)
}

// Handler carries the dependencies shared by all route handlers.
type Handler struct {
	db       *database.Database
	cfg      *config.Config
	store    *sessions.CookieStore
	carts    *services.CartService
	payments PaymentService
	email    *services.EmailService
	uploads  *services.UploadService
	spam     *services.SpamDetector
}

// NewHandler wires up a handler set.
func NewHandler(db *database.Database, cfg *config.Config, payments PaymentService, email *services.EmailService) *Handler {
	store := sessions.NewCookieStore(cfg.SessionSecret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Handler{
		db:       db,
		cfg:      cfg,
		store:    store,
		carts:    services.NewCartService(db),
		payments: payments,
		email:    email,
		uploads:  services.NewUploadService(cfg.UploadDir, cfg.MaxUploadSize),
		spam:     services.NewSpamDetector(),
	}
}

// session returns the request's session, creating it when absent.
func (h *Handler) session(c *gin.Context) *sessions.Session {
	s, err := h.store.Get(c.Request, sessionName)
	if err != nil {
		// A stale or tampered cookie decodes into a fresh session.
		slog.Debug("session decode failed, starting fresh", "error", err)
	}
	return s
}

func (h *Handler) saveSession(c *gin.Context, s *sessions.Session) {
	if err := s.Save(c.Request, c.Writer); err != nil {
		slog.Error("failed to save session", "error", err)
	}
}

// cart extracts the session-held cart mapping.
func (h *Handler) cart(s *sessions.Session) services.Cart {
	if m, ok := s.Values["cart"].(map[string]int); ok {
		return services.Cart(m)
	}
	return services.Cart{}
}

func (h *Handler) putCart(s *sessions.Session, cart services.Cart) {
	s.Values["cart"] = map[string]int(cart)
}

func (h *Handler) clearCart(s *sessions.Session) {
	delete(s.Values, "cart")
}

// currentUser resolves the logged-in user from the session, if any.
func (h *Handler) currentUser(s *sessions.Session) *models.User {
	id, ok := s.Values["user_id"].(uint)
	if !ok {
		return nil
	}
	user, err := h.db.GetUserByID(id)
	if err != nil {
		return nil
	}
	return user
}

func (h *Handler) addFlash(c *gin.Context, kind, message string) {
	s := h.session(c)
	s.AddFlash(FlashMessage{Type: kind, Message: message})
	h.saveSession(c, s)
}

func takeFlashes(s *sessions.Session) []FlashMessage {
	var messages []FlashMessage
	for _, f := range s.Flashes() {
		if fm, ok := f.(FlashMessage); ok {
			messages = append(messages, fm)
		}
	}
	return messages
}

// render writes an HTML page, adding the data every template expects:
// flashes, the current user and the cart badge count.
func (h *Handler) render(c *gin.Context, code int, name string, data gin.H) {
	s := h.session(c)
	if data == nil {
		data = gin.H{}
	}
	user := h.currentUser(s)
	data["flashes"] = takeFlashes(s)
	data["user"] = user
	data["isLoggedIn"] = user != nil
	data["cartCount"] = h.carts.Count(h.cart(s))
	data["stripeKey"] = h.cfg.StripePublishableKey
	h.saveSession(c, s)
	c.HTML(code, name, data)
}

// NotFoundPage is the catch-all for unmatched routes.
func (h *Handler) NotFoundPage(c *gin.Context) {
	h.notFound(c)
}

// notFound renders the 404 error page.
func (h *Handler) notFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "errors/404.html", gin.H{"title": "Page not found"})
	c.Abort()
}

// serverError logs the failure and renders the 500 error page.
func (h *Handler) serverError(c *gin.Context, err error) {
	slog.Error("internal error", "path", c.Request.URL.Path, "error", err)
	h.render(c, http.StatusInternalServerError, "errors/500.html", gin.H{"title": "Something went wrong"})
	c.Abort()
}
