package repositories

import (
	"errors"
	"fmt"

	"bookstore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMBookRepository is a GORM implementation of BookRepository.
type GORMBookRepository struct {
	db *gorm.DB
}

// NewGORMBookRepository creates a new instance of GORMBookRepository.
func NewGORMBookRepository(db *gorm.DB) *GORMBookRepository {
	return &GORMBookRepository{
		db: db,
	}
}

// GetAll retrieves all books from the database.
func (r *GORMBookRepository) GetAll() ([]models.Book, error) {
	var books []models.Book
	if err := r.db.Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to get all books: %w", err)
	}
	return books, nil
}

// GetByID retrieves a single book by its ID from the database.
func (r *GORMBookRepository) GetByID(id string) (*models.Book, error) {
	var book models.Book
	if err := r.db.First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("book with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get book by ID %s: %w", id, err)
	}
	return &book, nil
}

// GetByIDs retrieves the books matching the given IDs. Missing IDs are
// simply absent from the result.
func (r *GORMBookRepository) GetByIDs(ids []string) ([]models.Book, error) {
	var books []models.Book
	if len(ids) == 0 {
		return books, nil
	}
	if err := r.db.Find(&books, "id IN ?", ids).Error; err != nil {
		return nil, fmt.Errorf("failed to get books by IDs: %w", err)
	}
	return books, nil
}

// GetByCategory retrieves all books in the given category.
func (r *GORMBookRepository) GetByCategory(category string) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.Find(&books, "category = ?", category).Error; err != nil {
		return nil, fmt.Errorf("failed to get books by category %s: %w", category, err)
	}
	return books, nil
}

// Search retrieves books whose title or author contains the query,
// case-insensitively.
func (r *GORMBookRepository) Search(query string) ([]models.Book, error) {
	var books []models.Book
	pattern := "%" + query + "%"
	if err := r.db.Where("LOWER(title) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?)", pattern, pattern).
		Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to search books for %q: %w", query, err)
	}
	return books, nil
}

// Categories returns the distinct non-empty categories in the catalog.
func (r *GORMBookRepository) Categories() ([]string, error) {
	var categories []string
	if err := r.db.Model(&models.Book{}).
		Where("category <> ''").
		Distinct().
		Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Create creates a new book in the database.
func (r *GORMBookRepository) Create(book *models.Book) error {
	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	if err := r.db.Create(book).Error; err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

// Update updates an existing book in the database.
func (r *GORMBookRepository) Update(book *models.Book) error {
	res := r.db.Save(book) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update book: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// GORM's Save doesn't return ErrRecordNotFound if no rows were
		// affected by an update, so we check RowsAffected.
		return fmt.Errorf("book with ID %s for update: %w", book.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a book by its ID from the database.
func (r *GORMBookRepository) Delete(id string) error {
	res := r.db.Delete(&models.Book{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete book: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("book with ID %s for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// Count returns the number of books in the catalog.
func (r *GORMBookRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Book{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}
