package services

import (
	"crypto/tls"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	"atelier/internal/config"
	"atelier/internal/models"
)

// ContactInquiry is a submitted contact form.
type ContactInquiry struct {
	Name     string
	Email    string
	Phone    string
	Subject  string
	Budget   string
	Timeline string
	Message  string
}

// EmailService sends transactional mail. When SMTP is not configured
// it degrades to logging, so the rest of the application never has to
// care.
type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmailService builds the service from the mail settings.
func NewEmailService(cfg *config.Config) *EmailService {
	if cfg.MailHost == "" || cfg.MailUsername == "" {
		slog.Info("SMTP not configured, outgoing email disabled")
		return &EmailService{from: "noreply@atelier.local"}
	}
	dialer := gomail.NewDialer(cfg.MailHost, cfg.MailPort, cfg.MailUsername, cfg.MailPassword)
	if cfg.MailUseTLS {
		dialer.TLSConfig = &tls.Config{ServerName: cfg.MailHost}
	}
	return &EmailService{dialer: dialer, from: cfg.MailUsername}
}

// SendContactNotification forwards a contact inquiry to the studio
// inbox.
func (es *EmailService) SendContactNotification(inquiry ContactInquiry) error {
	if es.dialer == nil {
		slog.Info("email disabled, skipping contact notification", "from", inquiry.Email)
		return nil
	}

	body := fmt.Sprintf(`
		<h2>New contact inquiry</h2>
		<p><strong>Name:</strong> %s</p>
		<p><strong>Email:</strong> %s</p>
		<p><strong>Phone:</strong> %s</p>
		<p><strong>Subject:</strong> %s</p>
		<p><strong>Budget:</strong> %s</p>
		<p><strong>Timeline:</strong> %s</p>
		<p>%s</p>
	`, inquiry.Name, inquiry.Email, inquiry.Phone, inquiry.Subject, inquiry.Budget, inquiry.Timeline, inquiry.Message)

	m := gomail.NewMessage()
	m.SetHeader("From", es.from)
	m.SetHeader("To", es.from)
	m.SetHeader("Reply-To", inquiry.Email)
	m.SetHeader("Subject", "Contact form: "+inquiry.Subject)
	m.SetBody("text/html", body)

	if err := es.dialer.DialAndSend(m); err != nil {
		slog.Error("failed to send contact notification", "error", err)
		return err
	}
	return nil
}

// SendOrderConfirmation mails the customer a summary of their order.
func (es *EmailService) SendOrderConfirmation(order *models.Order) error {
	if es.dialer == nil {
		slog.Info("email disabled, skipping order confirmation", "order_id", order.OrderID)
		return nil
	}

	items := ""
	for i := range order.Items {
		item := &order.Items[i]
		items += fmt.Sprintf("<li>%s × %d — %.2f €</li>", item.ProductName, item.Quantity, item.Subtotal())
	}
	body := fmt.Sprintf(`
		<h2>Thank you for your order!</h2>
		<p>Hello %s,</p>
		<p>Your order <strong>%s</strong> has been received.</p>
		<ul>%s</ul>
		<p><strong>Total: %.2f €</strong></p>
	`, order.CustomerName, order.OrderID, items, order.TotalAmount)

	m := gomail.NewMessage()
	m.SetHeader("From", es.from)
	m.SetHeader("To", order.CustomerEmail)
	m.SetHeader("Subject", "Order confirmation "+order.OrderID)
	m.SetBody("text/html", body)

	if err := es.dialer.DialAndSend(m); err != nil {
		slog.Error("failed to send order confirmation", "order_id", order.OrderID, "error", err)
		return err
	}
	return nil
}
