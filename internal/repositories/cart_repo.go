package repositories

import "bookstore/internal/models"

// CartRepository defines the interface for cart line data access.
// Cart lines are keyed by the (user, book) pair.
type CartRepository interface {
	GetByUserID(userID string) ([]models.CartItem, error)
	GetItem(userID, bookID string) (*models.CartItem, error)
	Create(item *models.CartItem) error
	Update(item *models.CartItem) error
	Delete(userID, bookID string) error
}
