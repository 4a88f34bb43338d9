package models

import "time"

// CartItem is a pending (user, book, quantity) line prior to checkout.
// One row per (user, book) pair; adding an existing pair increments the
// quantity instead of duplicating the line.
//
// No soft-delete column: drained or removed lines are destroyed outright.
// The (user, book) unique index assumes at most one row ever exists per
// pair, so an archived row would block re-adding the same book.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_cart_user_book;type:varchar(36)" validate:"required"`
	BookID    string    `json:"book_id" gorm:"uniqueIndex:idx_cart_user_book;type:varchar(36)" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gte=1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
