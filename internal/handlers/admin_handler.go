package handlers

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"bookstore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the admin dashboard and catalog image uploads.
// All routes are expected to be mounted behind the admin gate.
type AdminHandler struct {
	service   *services.AdminService
	uploadDir string
}

// NewAdminHandler creates a new AdminHandler. Uploaded images land in
// uploadDir.
func NewAdminHandler(service *services.AdminService, uploadDir string) *AdminHandler {
	return &AdminHandler{
		service:   service,
		uploadDir: uploadDir,
	}
}

// RegisterRoutes registers the admin routes with the Fiber app.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/dashboard", h.HandleGetDashboard)
	router.Get("/dashboard/stats", h.HandleGetStats)
	router.Get("/dashboard/recent-orders", h.HandleGetRecentOrders)
	router.Get("/dashboard/top-selling", h.HandleGetTopSelling)
	router.Get("/dashboard/performance", h.HandleGetPerformance)
	router.Post("/books/upload-image", h.HandleUploadImage)
}

// HandleGetDashboard returns the full dashboard payload.
func (h *AdminHandler) HandleGetDashboard(c *fiber.Ctx) error {
	dashboard, err := h.service.GetDashboard()
	if err != nil {
		log.Printf("Error building dashboard: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not build dashboard",
			"error":   err.Error(),
		})
	}
	return c.JSON(dashboard)
}

// HandleGetStats returns the headline dashboard counters.
func (h *AdminHandler) HandleGetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats()
	if err != nil {
		log.Printf("Error getting dashboard stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve stats",
			"error":   err.Error(),
		})
	}
	return c.JSON(stats)
}

// HandleGetRecentOrders returns the most recent orders.
func (h *AdminHandler) HandleGetRecentOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetRecentOrders()
	if err != nil {
		log.Printf("Error getting recent orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve recent orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetTopSelling returns the best-selling books.
func (h *AdminHandler) HandleGetTopSelling(c *fiber.Ctx) error {
	books, err := h.service.GetTopSellingBooks()
	if err != nil {
		log.Printf("Error getting top selling books: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve top selling books",
			"error":   err.Error(),
		})
	}
	return c.JSON(books)
}

// HandleGetPerformance returns the trailing-week order metrics.
func (h *AdminHandler) HandleGetPerformance(c *fiber.Ctx) error {
	metrics, err := h.service.GetPerformance()
	if err != nil {
		log.Printf("Error getting performance metrics: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve performance metrics",
			"error":   err.Error(),
		})
	}
	return c.JSON(metrics)
}

// HandleUploadImage stores an uploaded book cover image and returns its
// serving path.
func (h *AdminHandler) HandleUploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Image file is required",
			"error":   err.Error(),
		})
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		log.Printf("Error creating upload directory: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not store image",
			"error":   err.Error(),
		})
	}

	fileName := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), filepath.Base(file.Filename))
	dest := filepath.Join(h.uploadDir, fileName)
	if err := c.SaveFile(file, dest); err != nil {
		log.Printf("Error saving uploaded image: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not store image",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"image_url": "/" + filepath.ToSlash(dest),
	})
}
