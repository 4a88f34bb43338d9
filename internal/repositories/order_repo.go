package repositories

import (
	"time"

	"bookstore/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// CreateWithItems persists an order together with its items in a
	// single transaction. Either everything commits or nothing does; a
	// reader never observes an order without its items.
	CreateWithItems(order *models.Order, items []models.OrderItem) error
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByUserID(userID string) ([]models.Order, error)
	UpdateStatus(id string, status string) error

	// Dashboard aggregates.
	Count() (int64, error)
	TotalRevenue() (float64, error)
	Recent(limit int) ([]models.Order, error)
	TopSellingBookIDs(limit int) ([]string, error)
	CountSince(t time.Time) (int64, error)
	RevenueSince(t time.Time) (float64, error)
}
