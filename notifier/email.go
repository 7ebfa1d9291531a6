package notifier

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"pricewatch/config"
	"pricewatch/models"
)

// NotificationError wraps an SMTP transport failure. It is logged by callers
// and never aborts a monitoring run.
type NotificationError struct {
	Recipient string
	Err       error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("failed to notify %s: %v", e.Recipient, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}

// EmailNotifier delivers price-drop alerts over SMTP. When the transport is
// not configured it logs and skips instead of failing.
type EmailNotifier struct {
	cfg config.EmailConfig
}

// NewEmailNotifier creates a new email notifier
func NewEmailNotifier(cfg config.EmailConfig) *EmailNotifier {
	return &EmailNotifier{cfg: cfg}
}

// Notify sends a crossing alert to the contact address, falling back to the
// configured default recipient when the watch item carries none.
func (n *EmailNotifier) Notify(event *models.CrossingEvent, contact string) error {
	if !n.cfg.Configured() {
		log.Println("⚠️  Email not configured; skipping alert")
		return nil
	}

	to := contact
	if to == "" {
		to = n.cfg.To
	}
	if to == "" {
		log.Printf("⚠️  No recipient for %s alert; skipping", event.Product)
		return nil
	}

	subject := fmt.Sprintf("Price Alert: %s @ %s → ₹%d", event.Product, event.Site, event.NewPrice)
	body := fmt.Sprintf(
		"Price drop alert!\n\n%s on %s is now ₹%d (threshold ₹%d, previously ₹%d).\nLink: %s\nTime: %s\n",
		event.Product, event.Site, event.NewPrice, event.Threshold, event.PriorPrice,
		event.URL, event.Time.Format("2006-01-02T15:04:05Z07:00"),
	)

	if err := n.send(to, subject, body); err != nil {
		return &NotificationError{Recipient: to, Err: err}
	}

	log.Printf("📧 Alert sent for %s on %s at ₹%d", event.Product, event.Site, event.NewPrice)
	return nil
}

func (n *EmailNotifier) send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)

	c, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %v", err)
	}
	defer c.Close()

	if n.cfg.UseTLS {
		if err := c.StartTLS(&tls.Config{ServerName: n.cfg.Host}); err != nil {
			return fmt.Errorf("failed to start TLS: %v", err)
		}
	}

	auth := smtp.PlainAuth("", n.cfg.User, n.cfg.Pass, n.cfg.Host)
	if err := c.Auth(auth); err != nil {
		return fmt.Errorf("failed to authenticate: %v", err)
	}

	if err := c.Mail(n.cfg.User); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	msg := buildMessage(n.cfg.User, to, subject, body)
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return c.Quit()
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
