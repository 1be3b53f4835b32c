package services

import (
	"context"
	"fmt"
	"html"
	"log"
	"net/smtp"
	"sort"
	"strings"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/utils/format"
)

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Enabled reports whether enough settings are present to reach a server.
func (c Config) Enabled() bool {
	return c.Host != "" && c.Port != "" && c.From != ""
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Mailer struct {
	config Config
	send   sendFunc
}

func NewMailer(cfg Config) *Mailer {
	return &Mailer{
		config: cfg,
		send:   smtp.SendMail,
	}
}

func (m *Mailer) SendHTMLEmail(to, subject, htmlBody string) error {

	headers := map[string]string{
		"From":         m.config.From,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=\"UTF-8\"",
	}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var msg strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&msg, "%s: %s\r\n", k, headers[k])
	}
	msg.WriteString("\r\n" + htmlBody)

	var auth smtp.Auth
	if m.config.Username != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)

	err := m.send(addr, auth, m.config.From, []string{to}, []byte(msg.String()))
	if err != nil {
		log.Printf("Mailer.SendHTMLEmail: failed to send to %s: %v", to, err)
		return fmt.Errorf("failed to send html email: %w", err)
	}

	return nil
}

// OrderPlaced sends the buyer a confirmation carrying the order receipt.
func (m *Mailer) OrderPlaced(ctx context.Context, order *models.Order, buyer *models.User) error {
	if buyer.Email == "" {
		return nil
	}
	subject := fmt.Sprintf("Order confirmation %s", order.OrderNumber)
	return m.SendHTMLEmail(buyer.Email, subject, BuildOrderConfirmationBody(order, buyer))
}

func BuildOrderConfirmationBody(order *models.Order, buyer *models.User) string {
	return fmt.Sprintf(`
        <!DOCTYPE html>
        <html>
        <head>
            <meta charset="utf-8">
            <title>Order %s</title>
            <style>
                body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
                .container { max-width: 600px; margin: 20px auto; padding: 20px; border: 1px solid #ddd; border-radius: 5px; }
                .receipt { background-color: #f8f8f8; padding: 10px; border-radius: 5px; }
            </style>
        </head>
        <body>
            <div class="container">
                <h2>Thank you for your order, %s!</h2>
                <p>We received order <strong>%s</strong> and will let you know when it ships.</p>
                <pre class="receipt">%s</pre>
            </div>
        </body>
        </html>
    `,
		html.EscapeString(order.OrderNumber),
		html.EscapeString(buyer.Name),
		html.EscapeString(order.OrderNumber),
		html.EscapeString(format.Receipt(order)),
	)
}
