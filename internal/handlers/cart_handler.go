package handlers

import (
	"errors"
	"log"

	"bookstore/internal/middleware"
	"bookstore/internal/repositories"
	"bookstore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the shopping cart. All routes
// operate on the authenticated caller's own cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddToCart)
	cartRoutes.Put("/item/:bookId", h.HandleUpdateItem)
	cartRoutes.Delete("/item/:bookId", h.HandleRemoveItem)
	cartRoutes.Delete("/clear", h.HandleClearCart)
}

// HandleGetCart retrieves the caller's cart lines.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userID := middleware.CallerID(c)
	items, err := h.service.GetCartItems(userID)
	if err != nil {
		log.Printf("Error getting cart for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(items)
}

// AddToCartRequest represents the request body for adding to the cart.
type AddToCartRequest struct {
	BookID   string `json:"book_id"`
	Quantity int    `json:"quantity"`
}

// HandleAddToCart adds a book to the caller's cart, incrementing the
// quantity when the line already exists.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	userID := middleware.CallerID(c)

	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-to-cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.BookID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "book_id is required.",
		})
	}

	item, err := h.service.AddToCart(userID, req.BookID, req.Quantity)
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": ve.Message,
			})
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Book not found",
			})
		}
		log.Printf("Error adding to cart for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add to cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(item)
}

// UpdateCartItemRequest represents the request body for a quantity update.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// HandleUpdateItem sets the quantity of one cart line.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	userID := middleware.CallerID(c)
	bookID := c.Params("bookId")

	var req UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cart update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	item, err := h.service.UpdateQuantity(userID, bookID, req.Quantity)
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": ve.Message,
			})
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Book not found",
			})
		}
		log.Printf("Error updating cart item for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart item",
			"error":   err.Error(),
		})
	}
	return c.JSON(item)
}

// HandleRemoveItem removes one cart line.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	userID := middleware.CallerID(c)
	bookID := c.Params("bookId")

	if err := h.service.RemoveFromCart(userID, bookID); err != nil {
		log.Printf("Error removing cart item for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove cart item",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleClearCart removes every line from the caller's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	userID := middleware.CallerID(c)

	if err := h.service.ClearCart(userID); err != nil {
		log.Printf("Error clearing cart for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear cart",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
