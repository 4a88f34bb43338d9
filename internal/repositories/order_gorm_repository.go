package repositories

import (
	"errors"
	"fmt"
	"time"

	"bookstore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// CreateWithItems persists the order and its items atomically. The item
// rows take their OrderID from the order, and both writes run inside one
// database transaction so a failure rolls back everything.
func (r *GORMOrderRepository) CreateWithItems(order *models.Order, items []models.OrderItem) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
		}
		items[i].OrderID = order.ID
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("failed to create order items: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	order.Items = items
	return nil
}

// GetAll returns all orders with their items.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByID returns an order by its ID, including its items.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetByUserID returns all orders placed by the given user.
func (r *GORMOrderRepository) GetByUserID(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Order("created_at DESC").
		Find(&orders, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// UpdateStatus updates the status of an order.
func (r *GORMOrderRepository) UpdateStatus(id string, status string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s for status update: %w", id, ErrNotFound)
	}
	return nil
}

// Count returns the number of orders.
func (r *GORMOrderRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// TotalRevenue returns the sum of all order totals.
func (r *GORMOrderRepository) TotalRevenue() (float64, error) {
	var revenue float64
	if err := r.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error; err != nil {
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return revenue, nil
}

// Recent returns the most recently created orders, newest first.
func (r *GORMOrderRepository) Recent(limit int) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Order("created_at DESC").
		Limit(limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent orders: %w", err)
	}
	return orders, nil
}

// TopSellingBookIDs returns book IDs ranked by total quantity sold.
func (r *GORMOrderRepository) TopSellingBookIDs(limit int) ([]string, error) {
	var ids []string
	if err := r.db.Model(&models.OrderItem{}).
		Select("book_id").
		Group("book_id").
		Order("SUM(quantity) DESC").
		Limit(limit).
		Pluck("book_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to rank top selling books: %w", err)
	}
	return ids, nil
}

// CountSince returns the number of orders created at or after t.
func (r *GORMOrderRepository) CountSince(t time.Time) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).
		Where("created_at >= ?", t).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders since %s: %w", t, err)
	}
	return count, nil
}

// RevenueSince returns the summed totals of orders created at or after t.
func (r *GORMOrderRepository) RevenueSince(t time.Time) (float64, error) {
	var revenue float64
	if err := r.db.Model(&models.Order{}).
		Where("created_at >= ?", t).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error; err != nil {
		return 0, fmt.Errorf("failed to sum revenue since %s: %w", t, err)
	}
	return revenue, nil
}
