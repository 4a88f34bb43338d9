package services

import (
	"fmt"
	"time"

	"bookstore/internal/models"
	"bookstore/internal/repositories"
)

// DashboardStats holds the headline counters for the admin dashboard.
type DashboardStats struct {
	TotalBooks   int64   `json:"total_books"`
	TotalUsers   int64   `json:"total_users"`
	TotalOrders  int64   `json:"total_orders"`
	TotalRevenue float64 `json:"total_revenue"`
}

// PerformanceMetrics summarizes order activity over the trailing week.
type PerformanceMetrics struct {
	OrdersLast7Days  int64   `json:"orders_last_7_days"`
	RevenueLast7Days float64 `json:"revenue_last_7_days"`
	AvgOrderValue    float64 `json:"avg_order_value"`
}

// Dashboard is the full dashboard payload.
type Dashboard struct {
	Stats        DashboardStats     `json:"stats"`
	RecentOrders []models.Order     `json:"recent_orders"`
	TopSelling   []models.Book      `json:"top_selling"`
	Performance  PerformanceMetrics `json:"performance"`
}

// AdminService aggregates catalog, user, and order data for the admin
// dashboard.
type AdminService struct {
	bookRepo  repositories.BookRepository
	userRepo  repositories.UserRepository
	orderRepo repositories.OrderRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(bookRepo repositories.BookRepository, userRepo repositories.UserRepository, orderRepo repositories.OrderRepository) *AdminService {
	return &AdminService{
		bookRepo:  bookRepo,
		userRepo:  userRepo,
		orderRepo: orderRepo,
	}
}

// GetStats returns the headline dashboard counters.
func (s *AdminService) GetStats() (*DashboardStats, error) {
	books, err := s.bookRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count books: %w", err)
	}
	users, err := s.userRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	orders, err := s.orderRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	revenue, err := s.orderRepo.TotalRevenue()
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	return &DashboardStats{
		TotalBooks:   books,
		TotalUsers:   users,
		TotalOrders:  orders,
		TotalRevenue: revenue,
	}, nil
}

// GetRecentOrders returns the five most recent orders.
func (s *AdminService) GetRecentOrders() ([]models.Order, error) {
	return s.orderRepo.Recent(5)
}

// GetTopSellingBooks returns the five best-selling books by total
// quantity sold, best seller first.
func (s *AdminService) GetTopSellingBooks() ([]models.Book, error) {
	ids, err := s.orderRepo.TopSellingBookIDs(5)
	if err != nil {
		return nil, err
	}
	books, err := s.bookRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	// Restore the sales ranking; GetByIDs returns rows in storage order.
	byID := make(map[string]models.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}
	ranked := make([]models.Book, 0, len(ids))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			ranked = append(ranked, b)
		}
	}
	return ranked, nil
}

// GetPerformance returns order count, revenue, and average order value
// for the last seven days.
func (s *AdminService) GetPerformance() (*PerformanceMetrics, error) {
	since := time.Now().AddDate(0, 0, -7)

	count, err := s.orderRepo.CountSince(since)
	if err != nil {
		return nil, err
	}
	revenue, err := s.orderRepo.RevenueSince(since)
	if err != nil {
		return nil, err
	}

	metrics := &PerformanceMetrics{
		OrdersLast7Days:  count,
		RevenueLast7Days: revenue,
	}
	if count > 0 {
		metrics.AvgOrderValue = revenue / float64(count)
	}
	return metrics, nil
}

// GetDashboard composes the full dashboard payload.
func (s *AdminService) GetDashboard() (*Dashboard, error) {
	stats, err := s.GetStats()
	if err != nil {
		return nil, err
	}
	recent, err := s.GetRecentOrders()
	if err != nil {
		return nil, err
	}
	top, err := s.GetTopSellingBooks()
	if err != nil {
		return nil, err
	}
	perf, err := s.GetPerformance()
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Stats:        *stats,
		RecentOrders: recent,
		TopSelling:   top,
		Performance:  *perf,
	}, nil
}
