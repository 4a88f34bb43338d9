package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"bookstore/internal/models"
	"bookstore/internal/repositories"
)

// CheckoutRequest is the checkout endpoint payload. UserID and Email are
// optional; when present they must resolve to the authenticated caller.
// Email doubles as the confirmation-recipient override.
type CheckoutRequest struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	ZipCode       string `json:"zip_code"`
	Country       string `json:"country"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"payment_method"`
	CardNumber    string `json:"card_number"`
	ExpiryDate    string `json:"expiry_date"`
	CVV           string `json:"cvv"`
}

// CheckoutResult is returned on a successful checkout.
type CheckoutResult struct {
	OrderID     string    `json:"order_id"`
	TotalAmount float64   `json:"total_amount"`
	OrderDate   time.Time `json:"order_date"`
}

// ConfirmationMailer dispatches the order confirmation to one or two
// recipients and reports the aggregate outcome.
type ConfirmationMailer interface {
	SendOrderConfirmationToBoth(user *models.User, order *models.Order, lines []OrderLine, confirmationEmail string) DeliveryOutcome
}

// EventPublisher publishes order lifecycle events. A nil publisher is
// tolerated; publication is best effort either way.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

var (
	emailPattern      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern      = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	expiryPattern     = regexp.MustCompile(`^(0[1-9]|1[0-2])/?\d{2}$`)
	cvvPattern        = regexp.MustCompile(`^\d{3}$`)
)

// CheckoutService orchestrates the cart-to-order transition: payment
// validation, owner resolution, cart snapshot, order materialization,
// cart drain, and best-effort confirmation dispatch.
//
// Two concurrent checkouts for the same user are not mutually excluded:
// there is no lock or version check on the cart, so both may read the
// same snapshot and each produce an order.
type CheckoutService struct {
	userRepo  repositories.UserRepository
	bookRepo  repositories.BookRepository
	cartRepo  repositories.CartRepository
	orderRepo repositories.OrderRepository
	mail      ConfirmationMailer
	events    EventPublisher
}

// NewCheckoutService creates a new CheckoutService. events may be nil.
func NewCheckoutService(
	userRepo repositories.UserRepository,
	bookRepo repositories.BookRepository,
	cartRepo repositories.CartRepository,
	orderRepo repositories.OrderRepository,
	mail ConfirmationMailer,
	events EventPublisher,
) *CheckoutService {
	return &CheckoutService{
		userRepo:  userRepo,
		bookRepo:  bookRepo,
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		mail:      mail,
		events:    events,
	}
}

// Checkout places an order from the caller's cart. callerID is the
// authenticated identity, passed in explicitly; the service never reads
// ambient auth state. The returned error is one of the sentinel errors,
// a *ValidationError, a repositories.ErrNotFound wrap, or an internal
// persistence failure.
func (s *CheckoutService) Checkout(callerID string, req CheckoutRequest) (*CheckoutResult, error) {
	if err := validateCheckoutRequest(req); err != nil {
		return nil, err
	}

	owner, err := s.resolveOwner(callerID, req)
	if err != nil {
		return nil, err
	}

	confirmationEmail := req.Email
	if confirmationEmail == "" {
		confirmationEmail = owner.Email
	}

	snapshot, err := s.cartRepo.GetByUserID(owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(snapshot) == 0 {
		return nil, ErrEmptyCart
	}

	order, mailLines, err := s.materialize(owner, snapshot)
	if err != nil {
		return nil, err
	}

	// Drain only after the order and its items are durably committed. A
	// line left behind by a failed delete is a stale cart entry the user
	// can clear; a line deleted before a failed commit would be lost.
	for _, line := range snapshot {
		if err := s.cartRepo.Delete(owner.ID, line.BookID); err != nil {
			log.Printf("Failed to drain cart line (user %s, book %s): %v", owner.ID, line.BookID, err)
		}
	}

	outcome := s.mail.SendOrderConfirmationToBoth(owner, order, mailLines, confirmationEmail)
	log.Printf("Order %s confirmation dispatch: %s", order.ID, outcome)

	s.publishOrderCreated(order)

	return &CheckoutResult{
		OrderID:     order.ID,
		TotalAmount: order.TotalAmount,
		OrderDate:   order.CreatedAt,
	}, nil
}

// resolveOwner determines the effective owner of the checkout from the
// authenticated caller and the optional explicit identity in the
// request. An explicit user ID different from the caller's is rejected
// before any lookup, so the mismatch answer does not leak whether the
// target exists.
func (s *CheckoutService) resolveOwner(callerID string, req CheckoutRequest) (*models.User, error) {
	if callerID == "" {
		return nil, ErrAuthenticationRequired
	}

	caller, err := s.userRepo.GetByID(callerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAuthenticationRequired
		}
		return nil, fmt.Errorf("failed to resolve caller: %w", err)
	}

	switch {
	case req.UserID != "":
		if req.UserID != caller.ID {
			return nil, ErrAuthorizationMismatch
		}
		return caller, nil
	case req.Email != "" && req.Email != caller.Email:
		target, err := s.userRepo.GetByEmail(req.Email)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to resolve user by email: %w", err)
		}
		if target.ID != caller.ID {
			return nil, ErrAuthorizationMismatch
		}
		return target, nil
	default:
		return caller, nil
	}
}

// materialize converts the cart snapshot into a persisted order plus
// order items. The unit price for each line is read once from the
// catalog and used for both the item row and the total, so the two can
// never disagree. The order and its items commit in one transaction.
func (s *CheckoutService) materialize(owner *models.User, snapshot []models.CartItem) (*models.Order, []OrderLine, error) {
	var totalAmount float64
	items := make([]models.OrderItem, 0, len(snapshot))
	mailLines := make([]OrderLine, 0, len(snapshot))

	for _, line := range snapshot {
		book, err := s.bookRepo.GetByID(line.BookID)
		if err != nil {
			return nil, nil, fmt.Errorf("book %s in cart: %w", line.BookID, err)
		}

		unitPrice := book.Price // Price at the time of checkout
		items = append(items, models.OrderItem{
			BookID:   line.BookID,
			Quantity: line.Quantity,
			Price:    unitPrice,
		})
		mailLines = append(mailLines, OrderLine{
			Title:    book.Title,
			Quantity: line.Quantity,
			Price:    unitPrice,
		})
		totalAmount += unitPrice * float64(line.Quantity)
	}

	order := &models.Order{
		UserID:      owner.ID,
		TotalAmount: totalAmount,
		Status:      models.StatusPending,
	}
	if err := s.orderRepo.CreateWithItems(order, items); err != nil {
		return nil, nil, fmt.Errorf("failed to persist order: %w", err)
	}
	return order, mailLines, nil
}

func (s *CheckoutService) publishOrderCreated(order *models.Order) {
	if s.events == nil {
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"status":   order.Status,
		"total":    order.TotalAmount,
	})
	if err != nil {
		log.Printf("Failed to marshal order %s event: %v", order.ID, err)
		return
	}
	if err := s.events.Publish("order.created", body); err != nil {
		log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
	}
}

// validateCheckoutRequest checks the request fields in a fixed order and
// reports only the first violation. Card sub-fields are required only
// for the card payment method and are checked number, then expiry, then
// CVV.
func validateCheckoutRequest(req CheckoutRequest) error {
	if req.Email != "" && !emailPattern.MatchString(req.Email) {
		return &ValidationError{Field: "email", Message: "Email should be valid."}
	}
	if strings.TrimSpace(req.FirstName) == "" {
		return &ValidationError{Field: "first_name", Message: "First name is required."}
	}
	if strings.TrimSpace(req.LastName) == "" {
		return &ValidationError{Field: "last_name", Message: "Last name is required."}
	}
	if strings.TrimSpace(req.Address) == "" {
		return &ValidationError{Field: "address", Message: "Address is required."}
	}
	if strings.TrimSpace(req.City) == "" {
		return &ValidationError{Field: "city", Message: "City is required."}
	}
	if strings.TrimSpace(req.ZipCode) == "" {
		return &ValidationError{Field: "zip_code", Message: "ZIP code is required."}
	}
	if strings.TrimSpace(req.Country) == "" {
		return &ValidationError{Field: "country", Message: "Country is required."}
	}
	if !phonePattern.MatchString(req.Phone) {
		return &ValidationError{Field: "phone", Message: "Phone number should be valid."}
	}
	if strings.TrimSpace(req.PaymentMethod) == "" {
		return &ValidationError{Field: "payment_method", Message: "Payment method is required."}
	}

	if req.PaymentMethod == "card" {
		cardNumber := strings.ReplaceAll(req.CardNumber, " ", "")
		if !cardNumberPattern.MatchString(cardNumber) {
			return &ValidationError{Field: "card_number", Message: "Card number must be 16 digits."}
		}
		if !expiryPattern.MatchString(req.ExpiryDate) {
			return &ValidationError{Field: "expiry_date", Message: "Expiry date must be in MM/YY format."}
		}
		if !cvvPattern.MatchString(req.CVV) {
			return &ValidationError{Field: "cvv", Message: "CVV must be 3 digits."}
		}
	}
	return nil
}
