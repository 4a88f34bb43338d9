package handlers

import (
	"errors"
	"log"

	"bookstore/internal/middleware"
	"bookstore/internal/repositories"
	"bookstore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles the checkout endpoint.
type CheckoutHandler struct {
	service *services.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
	}
}

// RegisterRoutes registers the checkout route with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleCheckout)
}

// HandleCheckout places an order from the caller's cart. The
// authenticated identity comes from the JWT middleware and is passed
// into the service explicitly; the service owns the error taxonomy and
// this handler only maps it onto HTTP statuses.
func (h *CheckoutHandler) HandleCheckout(c *fiber.Ctx) error {
	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	result, err := h.service.Checkout(middleware.CallerID(c), req)
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed: " + ve.Message,
				"field":   ve.Field,
			})
		case errors.Is(err, services.ErrAuthenticationRequired):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: Please log in to place an order",
			})
		case errors.Is(err, services.ErrAuthorizationMismatch):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Access denied: You can only place orders for yourself",
			})
		case errors.Is(err, services.ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Cart is empty",
			})
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Error processing checkout: " + err.Error(),
			})
		default:
			log.Printf("Error processing checkout: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal server error",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"message":      "Order placed successfully!",
		"order_id":     result.OrderID,
		"total_amount": result.TotalAmount,
		"order_date":   result.OrderDate,
	})
}
