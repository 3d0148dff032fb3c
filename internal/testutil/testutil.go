package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/db"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/model"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Valid ISBN-13s for fixtures.
const (
	ISBN1 = "9780306406157"
	ISBN2 = "9780140449136"
	ISBN3 = "9780061120084"
	ISBN4 = "9780452284234"
)

func open(t *testing.T, prefix string) *gorm.DB {
	t.Helper()

	dsn := "file:" + prefix + "_" + uuid.New().String() + "?mode=memory&cache=shared&_foreign_keys=on"

	gdb, err := gorm.Open(sqlite.Open(dsn), db.GormConfig(zap.NewNop()))
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return gdb
}

// NewTestDB returns a migrated in-memory sqlite database with foreign keys
// enforced.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb := open(t, "testdb")
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

// NewErrorDB returns a database with no tables, so every query fails.
func NewErrorDB(t *testing.T) *gorm.DB {
	t.Helper()
	return open(t, "errdb")
}

func Day(year int, month time.Month, day int) datatypes.Date {
	return datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func SeedAuthor(t *testing.T, gdb *gorm.DB, first, last string) model.Author {
	t.Helper()

	author := model.Author{
		FirstName:   first,
		LastName:    last,
		Nationality: "española",
		BirthDate:   Day(1950, time.January, 1),
		Biography:   "bio of " + first,
	}

	if err := gdb.Create(&author).Error; err != nil {
		t.Fatalf("failed to seed author %q: %v", first, err)
	}

	return author
}

func SeedGenre(t *testing.T, gdb *gorm.DB, name string) model.Genre {
	t.Helper()

	genre := model.Genre{Name: name}

	if err := gdb.Create(&genre).Error; err != nil {
		t.Fatalf("failed to seed genre %q: %v", name, err)
	}

	return genre
}

func SeedBook(t *testing.T, gdb *gorm.DB, isbn, title string, authors []model.Author, genres []model.Genre) model.Book {
	t.Helper()

	book := model.Book{
		ISBN:        isbn,
		Title:       title,
		Description: "about " + title,
		Publisher:   "Editorial",
		Country:     "España",
		Language:    "es",
		PageCount:   320,
		EditionYear: 2001,
		Price:       12.5,
		Authors:     authors,
		Genres:      genres,
	}

	if err := gdb.Omit("Authors.*", "Genres.*").Create(&book).Error; err != nil {
		t.Fatalf("failed to seed book %q: %v", title, err)
	}

	return book
}

func SeedUser(t *testing.T, gdb *gorm.DB, email, dni string) model.User {
	t.Helper()

	user := model.User{
		Email:        email,
		FirstName:    "Ana",
		LastName:     "García",
		BirthDate:    Day(1990, time.May, 17),
		NationalID:   dni,
		Country:      "España",
		City:         "Vigo",
		Address:      "Rúa do Príncipe 1",
		Phone:        "600000000",
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhashnotarealhashnot",
	}

	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %q: %v", email, err)
	}

	return user
}

func SeedLoan(t *testing.T, gdb *gorm.DB, user model.User, books ...model.Book) model.Loan {
	t.Helper()

	loan := model.Loan{
		LoanDate: Day(2024, time.March, 1),
		DueDate:  Day(2024, time.March, 15),
		UserID:   user.ID,
		Books:    books,
	}

	if err := gdb.Omit("User", "Books.*").Create(&loan).Error; err != nil {
		t.Fatalf("failed to seed loan for user %d: %v", user.ID, err)
	}

	return loan
}
