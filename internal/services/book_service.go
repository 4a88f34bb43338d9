package services

import (
	"bookstore/internal/models"
	"bookstore/internal/repositories"
)

// BookService handles business logic related to the catalog.
type BookService struct {
	repo repositories.BookRepository
}

// NewBookService creates a new BookService.
func NewBookService(repo repositories.BookRepository) *BookService {
	return &BookService{
		repo: repo,
	}
}

// GetAllBooks retrieves all books.
func (s *BookService) GetAllBooks() ([]models.Book, error) {
	return s.repo.GetAll()
}

// GetBookByID retrieves a single book by its ID.
func (s *BookService) GetBookByID(id string) (*models.Book, error) {
	return s.repo.GetByID(id)
}

// GetBooksByCategory retrieves all books in a category.
func (s *BookService) GetBooksByCategory(category string) ([]models.Book, error) {
	return s.repo.GetByCategory(category)
}

// SearchBooks retrieves books whose title or author matches the query.
func (s *BookService) SearchBooks(query string) ([]models.Book, error) {
	return s.repo.Search(query)
}

// GetCategories lists the distinct catalog categories.
func (s *BookService) GetCategories() ([]string, error) {
	return s.repo.Categories()
}

// CreateBook creates a new book.
func (s *BookService) CreateBook(book *models.Book) error {
	return s.repo.Create(book)
}

// UpdateBook updates an existing book.
func (s *BookService) UpdateBook(book *models.Book) error {
	return s.repo.Update(book)
}

// DeleteBook deletes a book by its ID.
func (s *BookService) DeleteBook(id string) error {
	return s.repo.Delete(id)
}
