package repositories

import "bookstore/internal/models"

// BookRepository defines the interface for catalog data access.
type BookRepository interface {
	GetAll() ([]models.Book, error)
	GetByID(id string) (*models.Book, error)
	GetByIDs(ids []string) ([]models.Book, error)
	GetByCategory(category string) ([]models.Book, error)
	Search(query string) ([]models.Book, error)
	Categories() ([]string, error)
	Create(book *models.Book) error
	Update(book *models.Book) error
	Delete(id string) error
	Count() (int64, error)
}
