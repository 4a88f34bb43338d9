package services

import (
	"errors"
	"fmt"
	"log"

	"bookstore/internal/models"
	"bookstore/internal/repositories"
)

// CartService handles business logic related to the shopping cart.
type CartService struct {
	cartRepo repositories.CartRepository
	bookRepo repositories.BookRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, bookRepo repositories.BookRepository) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		bookRepo: bookRepo,
	}
}

// GetCartItems retrieves all cart lines for a user.
func (s *CartService) GetCartItems(userID string) ([]models.CartItem, error) {
	return s.cartRepo.GetByUserID(userID)
}

// AddToCart adds a quantity of a book to the user's cart. If the
// (user, book) line already exists its quantity is incremented rather
// than a duplicate line being created.
func (s *CartService) AddToCart(userID, bookID string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, &ValidationError{Field: "quantity", Message: "Quantity must be at least 1."}
	}

	if _, err := s.bookRepo.GetByID(bookID); err != nil {
		return nil, fmt.Errorf("cannot add book to cart: %w", err)
	}

	existing, err := s.cartRepo.GetItem(userID, bookID)
	if err == nil {
		existing.Quantity += quantity
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	item := &models.CartItem{
		UserID:   userID,
		BookID:   bookID,
		Quantity: quantity,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity sets the quantity of the (user, book) cart line,
// creating the line if it does not exist yet.
func (s *CartService) UpdateQuantity(userID, bookID string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, &ValidationError{Field: "quantity", Message: "Quantity must be at least 1."}
	}

	item, err := s.cartRepo.GetItem(userID, bookID)
	if errors.Is(err, repositories.ErrNotFound) {
		return s.AddToCart(userID, bookID, quantity)
	}
	if err != nil {
		return nil, err
	}

	item.Quantity = quantity
	if err := s.cartRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveFromCart removes the (user, book) cart line.
func (s *CartService) RemoveFromCart(userID, bookID string) error {
	return s.cartRepo.Delete(userID, bookID)
}

// ClearCart removes every cart line for the user.
func (s *CartService) ClearCart(userID string) error {
	items, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := s.cartRepo.Delete(userID, item.BookID); err != nil {
			log.Printf("Failed to remove cart item (user %s, book %s): %v", userID, item.BookID, err)
		}
	}
	return nil
}
