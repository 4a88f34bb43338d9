package repositories_test

import (
	"fmt"
	"testing"

	"bookstore/internal/models"
	"bookstore/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func TestUserRepository_GetByEmailNotFound(t *testing.T) {
	repo := repositories.NewGORMUserRepository(openTestDB(t))

	_, err := repo.GetByEmail("ghost@example.com")

	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	repo := repositories.NewGORMUserRepository(openTestDB(t))

	require.NoError(t, repo.Create(&models.User{Name: "Jane", Email: "jane@example.com", Password: "hash"}))

	exists, err := repo.ExistsByEmail("jane@example.com")
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail("nobody@example.com")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestBookRepository_SearchMatchesTitleAndAuthor(t *testing.T) {
	repo := repositories.NewGORMBookRepository(openTestDB(t))

	require.NoError(t, repo.Create(&models.Book{Title: "The Go Programming Language", Author: "Donovan", Category: "Tech", Price: 39.99}))
	require.NoError(t, repo.Create(&models.Book{Title: "Clean Code", Author: "Martin", Category: "Tech", Price: 29.99}))

	books, err := repo.Search("go programming")
	assert.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "The Go Programming Language", books[0].Title)

	books, err = repo.Search("martin")
	assert.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Clean Code", books[0].Title)
}

func TestBookRepository_Categories(t *testing.T) {
	repo := repositories.NewGORMBookRepository(openTestDB(t))

	require.NoError(t, repo.Create(&models.Book{Title: "A", Author: "X", Category: "Fiction", Price: 1}))
	require.NoError(t, repo.Create(&models.Book{Title: "B", Author: "Y", Category: "Fiction", Price: 2}))
	require.NoError(t, repo.Create(&models.Book{Title: "C", Author: "Z", Category: "Tech", Price: 3}))

	categories, err := repo.Categories()
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"Fiction", "Tech"}, categories)
}

func TestCartRepository_DeleteMissingLineIsNoError(t *testing.T) {
	repo := repositories.NewGORMCartRepository(openTestDB(t))

	// The checkout drain may run over lines a previous drain already
	// removed.
	assert.NoError(t, repo.Delete("user-1", "book-never-added"))
}

func TestCartRepository_ReAddAfterDelete(t *testing.T) {
	repo := repositories.NewGORMCartRepository(openTestDB(t))

	// A deleted line must not leave a tombstone behind: the (user, book)
	// unique index covers live rows only if the delete is a real delete.
	require.NoError(t, repo.Create(&models.CartItem{UserID: "user-1", BookID: "book-a", Quantity: 2}))
	require.NoError(t, repo.Delete("user-1", "book-a"))

	require.NoError(t, repo.Create(&models.CartItem{UserID: "user-1", BookID: "book-a", Quantity: 1}))

	items, err := repo.GetByUserID("user-1")
	assert.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestCartRepository_GetItemNotFound(t *testing.T) {
	repo := repositories.NewGORMCartRepository(openTestDB(t))

	_, err := repo.GetItem("user-1", "book-a")

	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCartRepository_CreateAndDelete(t *testing.T) {
	repo := repositories.NewGORMCartRepository(openTestDB(t))

	require.NoError(t, repo.Create(&models.CartItem{UserID: "user-1", BookID: "book-a", Quantity: 2}))

	items, err := repo.GetByUserID("user-1")
	assert.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	require.NoError(t, repo.Delete("user-1", "book-a"))

	items, err = repo.GetByUserID("user-1")
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestOrderRepository_CreateWithItemsAndPreload(t *testing.T) {
	repo := repositories.NewGORMOrderRepository(openTestDB(t))

	order := &models.Order{UserID: "user-1", TotalAmount: 35.97, Status: models.StatusPending}
	items := []models.OrderItem{
		{BookID: "book-a", Quantity: 2, Price: 12.99},
		{BookID: "book-b", Quantity: 1, Price: 9.99},
	}

	require.NoError(t, repo.CreateWithItems(order, items))
	require.NotEmpty(t, order.ID)

	loaded, err := repo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Len(t, loaded.Items, 2)
	assert.InDelta(t, 35.97, loaded.TotalAmount, 1e-9)
	for _, item := range loaded.Items {
		assert.Equal(t, order.ID, item.OrderID)
	}
}

func TestOrderRepository_GetByIDNotFound(t *testing.T) {
	repo := repositories.NewGORMOrderRepository(openTestDB(t))

	_, err := repo.GetByID("no-such-order")

	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	repo := repositories.NewGORMOrderRepository(openTestDB(t))

	order := &models.Order{UserID: "user-1", TotalAmount: 10, Status: models.StatusPending}
	require.NoError(t, repo.CreateWithItems(order, nil))

	assert.NoError(t, repo.UpdateStatus(order.ID, models.StatusShipped))

	loaded, err := repo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusShipped, loaded.Status)

	assert.ErrorIs(t, repo.UpdateStatus("no-such-order", models.StatusShipped), repositories.ErrNotFound)
}

func TestOrderRepository_RevenueAndCounts(t *testing.T) {
	repo := repositories.NewGORMOrderRepository(openTestDB(t))

	require.NoError(t, repo.CreateWithItems(&models.Order{UserID: "user-1", TotalAmount: 10, Status: models.StatusPending}, nil))
	require.NoError(t, repo.CreateWithItems(&models.Order{UserID: "user-2", TotalAmount: 15.5, Status: models.StatusPending}, nil))

	count, err := repo.Count()
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	revenue, err := repo.TotalRevenue()
	assert.NoError(t, err)
	assert.InDelta(t, 25.5, revenue, 1e-9)
}

func TestOrderRepository_TopSellingBookIDs(t *testing.T) {
	repo := repositories.NewGORMOrderRepository(openTestDB(t))

	require.NoError(t, repo.CreateWithItems(
		&models.Order{UserID: "user-1", TotalAmount: 50, Status: models.StatusPending},
		[]models.OrderItem{
			{BookID: "book-a", Quantity: 1, Price: 10},
			{BookID: "book-b", Quantity: 4, Price: 10},
		},
	))
	require.NoError(t, repo.CreateWithItems(
		&models.Order{UserID: "user-2", TotalAmount: 20, Status: models.StatusPending},
		[]models.OrderItem{
			{BookID: "book-a", Quantity: 2, Price: 10},
		},
	))

	ids, err := repo.TopSellingBookIDs(5)
	assert.NoError(t, err)
	assert.Equal(t, []string{"book-b", "book-a"}, ids)
}
