package handlers

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"atelier/internal/services"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// HomePage shows the featured works and products, falling back to the
// latest entries when nothing is curated yet.
func (h *Handler) HomePage(c *gin.Context) {
	works, err := h.db.GetFeaturedPortfolio()
	if err != nil {
		h.serverError(c, err)
		return
	}
	if len(works) == 0 {
		if works, err = h.db.GetLatestPortfolio(6); err != nil {
			h.serverError(c, err)
			return
		}
	}

	products, err := h.db.GetFeaturedProducts()
	if err != nil {
		h.serverError(c, err)
		return
	}
	if len(products) == 0 {
		if products, err = h.db.GetLatestProducts(3); err != nil {
			h.serverError(c, err)
			return
		}
	}

	h.render(c, http.StatusOK, "index.html", gin.H{
		"title":            "Home",
		"featuredWorks":    works,
		"featuredProducts": products,
	})
}

// AboutPage renders the studio story page.
func (h *Handler) AboutPage(c *gin.Context) {
	h.render(c, http.StatusOK, "about.html", gin.H{"title": "About"})
}

// ServicesPage lists the service offerings.
func (h *Handler) ServicesPage(c *gin.Context) {
	h.render(c, http.StatusOK, "services.html", gin.H{"title": "Services"})
}

// ContactPage renders the contact form.
func (h *Handler) ContactPage(c *gin.Context) {
	h.render(c, http.StatusOK, "contact.html", gin.H{"title": "Contact"})
}

// HandleContact validates the contact form and forwards the inquiry.
func (h *Handler) HandleContact(c *gin.Context) {
	inquiry := services.ContactInquiry{
		Name:     strings.TrimSpace(c.PostForm("name")),
		Email:    strings.TrimSpace(c.PostForm("email")),
		Phone:    strings.TrimSpace(c.PostForm("phone")),
		Subject:  strings.TrimSpace(c.PostForm("subject")),
		Budget:   strings.TrimSpace(c.PostForm("budget")),
		Timeline: strings.TrimSpace(c.PostForm("timeline")),
		Message:  strings.TrimSpace(c.PostForm("message")),
	}

	if inquiry.Name == "" || inquiry.Email == "" || inquiry.Message == "" {
		h.addFlash(c, "error", "Please fill in all required fields (Name, Email, Message).")
		c.Redirect(http.StatusSeeOther, "/contact")
		return
	}
	if !emailPattern.MatchString(inquiry.Email) {
		h.addFlash(c, "error", "Please enter a valid email address.")
		c.Redirect(http.StatusSeeOther, "/contact")
		return
	}
	if h.spam.IsSpam(inquiry.Message) {
		// Pretend success so bots learn nothing.
		c.Redirect(http.StatusSeeOther, "/contact")
		return
	}

	go func() {
		if err := h.email.SendContactNotification(inquiry); err != nil {
			slog.Error("contact notification failed", "error", err)
		}
	}()

	h.addFlash(c, "success", "Thank you "+inquiry.Name+"! Your message has been sent. I'll get back to you within 24 hours.")
	c.Redirect(http.StatusSeeOther, "/contact")
}

// SearchPage searches portfolio works and products in one go.
func (h *Handler) SearchPage(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		h.addFlash(c, "warning", "Please enter a search term.")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	works, err := h.db.SearchPortfolio(query)
	if err != nil {
		h.serverError(c, err)
		return
	}
	products, err := h.db.SearchProducts(query)
	if err != nil {
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "search_results.html", gin.H{
		"title":          "Search",
		"query":          query,
		"works":          works,
		"products":       products,
		"totalResults":   len(works) + len(products),
	})
}

// FAQPage renders the questions page.
func (h *Handler) FAQPage(c *gin.Context) {
	h.render(c, http.StatusOK, "faq.html", gin.H{"title": "FAQ"})
}

// TestimonialsPage renders client testimonials.
func (h *Handler) TestimonialsPage(c *gin.Context) {
	h.render(c, http.StatusOK, "testimonials.html", gin.H{"title": "Testimonials"})
}

// LegalPage renders the legal notice.
func (h *Handler) LegalPage(c *gin.Context) {
	h.render(c, http.StatusOK, "legal.html", gin.H{"title": "Legal notice"})
}

// PrivacyPage renders the privacy policy.
func (h *Handler) PrivacyPage(c *gin.Context) {
	h.render(c, http.StatusOK, "privacy.html", gin.H{"title": "Privacy policy"})
}

// TermsPage renders the terms and conditions.
func (h *Handler) TermsPage(c *gin.Context) {
	h.render(c, http.StatusOK, "terms.html", gin.H{"title": "Terms and conditions"})
}

// NewsletterSignup handles the JSON newsletter endpoint.
func (h *Handler) NewsletterSignup(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !emailPattern.MatchString(strings.TrimSpace(req.Email)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid email address required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Successfully subscribed to newsletter!"})
}

// Quote estimation tables for the quick-quote endpoint.
var (
	quoteBasePrices = map[string]float64{
		"portrait": 150,
		"logo":     450,
		"branding": 800,
		"web":      1200,
		"print":    200,
	}
	quoteComplexity = map[string]float64{"simple": 0.8, "medium": 1.0, "complex": 1.5}
	quoteTimeline   = map[string]float64{"rush": 1.5, "standard": 1.0, "flexible": 0.9}
)

// QuickQuote estimates a price for a service request.
func (h *Handler) QuickQuote(c *gin.Context) {
	var req struct {
		ServiceType string `json:"service_type"`
		Complexity  string `json:"complexity"`
		Timeline    string `json:"timeline"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	base, ok := quoteBasePrices[req.ServiceType]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service type"})
		return
	}
	complexity, ok := quoteComplexity[req.Complexity]
	if !ok {
		complexity = 1.0
	}
	timeline, ok := quoteTimeline[req.Timeline]
	if !ok {
		timeline = 1.0
	}

	price := decimal.NewFromFloat(base).
		Mul(decimal.NewFromFloat(complexity)).
		Mul(decimal.NewFromFloat(timeline)).
		Round(2)
	estimated, _ := price.Float64()
	low, _ := price.Mul(decimal.NewFromFloat(0.8)).Round(0).Float64()
	high, _ := price.Mul(decimal.NewFromFloat(1.2)).Round(0).Float64()

	c.JSON(http.StatusOK, gin.H{
		"estimated_price": estimated,
		"price_range":     formatRange(low, high),
		"message":         "This is an estimated price. Final quote will be provided after consultation.",
	})
}

func formatRange(low, high float64) string {
	return decimal.NewFromFloat(low).StringFixed(0) + " - " + decimal.NewFromFloat(high).StringFixed(0) + " €"
}
