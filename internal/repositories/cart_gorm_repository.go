package repositories

import (
	"errors"
	"fmt"

	"bookstore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByUserID retrieves all cart lines for the given user.
func (r *GORMCartRepository) GetByUserID(userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Find(&items, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return items, nil
}

// GetItem retrieves the cart line for the given (user, book) pair.
func (r *GORMCartRepository) GetItem(userID, bookID string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.First(&item, "user_id = ? AND book_id = ?", userID, bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart item for user %s and book %s: %w", userID, bookID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart item for user %s and book %s: %w", userID, bookID, err)
	}
	return &item, nil
}

// Create adds a new cart line.
func (r *GORMCartRepository) Create(item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	return nil
}

// Update modifies an existing cart line.
func (r *GORMCartRepository) Update(item *models.CartItem) error {
	res := r.db.Save(item)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %s for update: %w", item.ID, ErrNotFound)
	}
	return nil
}

// Delete destroys the cart line for the given (user, book) pair. The
// row is removed for real, never archived, so the pair can always be
// re-added later. Deleting a line that is already gone is not an error:
// the checkout drain must tolerate a partially applied previous drain.
func (r *GORMCartRepository) Delete(userID, bookID string) error {
	if err := r.db.Delete(&models.CartItem{}, "user_id = ? AND book_id = ?", userID, bookID).Error; err != nil {
		return fmt.Errorf("failed to delete cart item for user %s and book %s: %w", userID, bookID, err)
	}
	return nil
}
