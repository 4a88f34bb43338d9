package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"time"

	"bookstore/internal/models"
	"bookstore/pkg/mailer"
)

// DeliveryOutcome is the aggregate result of the dual-recipient
// confirmation dispatch. It exists purely for logging; it is never
// persisted and never affects the checkout result.
type DeliveryOutcome int

const (
	DeliveryNone DeliveryOutcome = iota
	DeliveryPartial
	DeliveryBoth
)

func (o DeliveryOutcome) String() string {
	switch o {
	case DeliveryBoth:
		return "both delivered"
	case DeliveryPartial:
		return "partial (one delivered)"
	default:
		return "none delivered"
	}
}

// OrderLine carries the display data for one line of the confirmation
// email: the book title plus the quantity and unit price captured at
// checkout.
type OrderLine struct {
	Title    string
	Quantity int
	Price    float64
}

const orderConfirmationTemplate = `<html>
<body>
  <h2>Thank you for your order, {{.User.Name}}!</h2>
  <p>Order <strong>#{{.OrderID}}</strong> placed on {{.OrderDate.Format "Jan 2, 2006"}}.</p>
  <table border="1" cellpadding="6" cellspacing="0">
    <tr><th>Title</th><th>Qty</th><th>Unit Price</th></tr>
    {{range .Lines}}<tr><td>{{.Title}}</td><td>{{.Quantity}}</td><td>${{printf "%.2f" .Price}}</td></tr>
    {{end}}
  </table>
  <p><strong>Total: ${{printf "%.2f" .TotalAmount}}</strong></p>
  <p>We will email you again when your order ships.</p>
</body>
</html>`

// EmailService renders and sends order confirmation emails. Sends are
// best effort: failures are logged and reported as an outcome, never
// returned as errors.
type EmailService struct {
	sender      mailer.Sender
	tmpl        *template.Template
	sendTimeout time.Duration
}

// NewEmailService creates a new EmailService on top of the given mail
// transport.
func NewEmailService(sender mailer.Sender) *EmailService {
	return &EmailService{
		sender:      sender,
		tmpl:        template.Must(template.New("order-confirmation").Parse(orderConfirmationTemplate)),
		sendTimeout: 15 * time.Second,
	}
}

// SendOrderConfirmation renders the confirmation template and sends it
// to a single recipient. The attempt is bounded by the send timeout so a
// hung transport cannot block the request indefinitely.
func (s *EmailService) SendOrderConfirmation(user *models.User, order *models.Order, lines []OrderLine, recipient string) error {
	body, err := s.renderBody(user, order, lines)
	if err != nil {
		return err
	}

	msg := mailer.Message{
		To:      recipient,
		Subject: fmt.Sprintf("Order Confirmation - Order #%s", order.ID),
		Body:    body,
	}

	done := make(chan error, 1)
	go func() {
		done <- s.sender.Send(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send confirmation to %s: %w", recipient, err)
		}
		return nil
	case <-time.After(s.sendTimeout):
		return fmt.Errorf("confirmation send to %s timed out after %s", recipient, s.sendTimeout)
	}
}

// SendOrderConfirmationToBoth sends the confirmation to the user's
// registered address and, if it differs, to the confirmation address as
// well. The two attempts are independent: a failure in one never
// prevents the other, and both complete before this returns. The
// returned outcome is for logging only.
func (s *EmailService) SendOrderConfirmationToBoth(user *models.User, order *models.Order, lines []OrderLine, confirmationEmail string) DeliveryOutcome {
	userOK := false
	if err := s.SendOrderConfirmation(user, order, lines, user.Email); err != nil {
		log.Printf("Failed to send confirmation to registered address %s: %v", user.Email, err)
	} else {
		userOK = true
	}

	confirmOK := userOK
	if confirmationEmail != "" && confirmationEmail != user.Email {
		confirmOK = false
		if err := s.SendOrderConfirmation(user, order, lines, confirmationEmail); err != nil {
			log.Printf("Failed to send confirmation to address %s: %v", confirmationEmail, err)
		} else {
			confirmOK = true
		}
	}

	switch {
	case userOK && confirmOK:
		return DeliveryBoth
	case userOK || confirmOK:
		return DeliveryPartial
	default:
		return DeliveryNone
	}
}

func (s *EmailService) renderBody(user *models.User, order *models.Order, lines []OrderLine) (string, error) {
	data := map[string]interface{}{
		"User":        user,
		"Order":       order,
		"Lines":       lines,
		"TotalAmount": order.TotalAmount,
		"OrderDate":   order.CreatedAt,
		"OrderID":     order.ID,
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render confirmation template: %w", err)
	}
	return buf.String(), nil
}
