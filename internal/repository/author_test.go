package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/testutil"
	"gorm.io/gorm"
)

func TestAuthorRepository_CreateAndFind(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAuthorRepository(db)
	ctx := context.Background()

	death := testutil.Day(2019, time.August, 5)
	author := model.Author{
		FirstName:   "Toni",
		LastName:    "Morrison",
		Nationality: "estadounidense",
		BirthDate:   testutil.Day(1931, time.February, 18),
		DeathDate:   &death,
		Biography:   "Premio Nobel 1993",
	}

	if err := repo.Create(ctx, &author); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if author.ID == 0 {
		t.Fatalf("expected ID to be assigned")
	}

	testutil.SeedBook(t, db, testutil.ISBN1, "Beloved", []model.Author{author}, nil)

	got, err := repo.FindByID(ctx, author.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if got.FullName() != "Toni Morrison" {
		t.Errorf("unexpected name %q", got.FullName())
	}
	if got.DeathDate == nil || time.Time(*got.DeathDate).Year() != 2019 {
		t.Errorf("expected death date in 2019, got %v", got.DeathDate)
	}
	if len(got.Books) != 1 || got.Books[0].Title != "Beloved" {
		t.Errorf("expected books preloaded, got %+v", got.Books)
	}
}

func TestAuthorRepository_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAuthorRepository(db)
	ctx := context.Background()

	seeded := testutil.SeedAuthor(t, db, "Miguel", "de Unamuno")

	author, err := repo.FindByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	author.Nationality = "vasca"

	if err := repo.Update(ctx, author); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	stored, _ := repo.FindByID(ctx, seeded.ID)
	if stored.Nationality != "vasca" || stored.FirstName != "Miguel" {
		t.Errorf("unexpected stored author %+v", stored)
	}
}

func TestAuthorRepository_Delete_KeepsBooks(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAuthorRepository(db)
	ctx := context.Background()

	author := testutil.SeedAuthor(t, db, "Rosalía", "de Castro")
	testutil.SeedBook(t, db, testutil.ISBN1, "Follas novas", []model.Author{author}, nil)

	if err := repo.Delete(ctx, author.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if n := countRows(t, db, "libros_autores"); n != 0 {
		t.Errorf("expected author links removed, got %d", n)
	}
	if n := countRows(t, db, "libros"); n != 1 {
		t.Errorf("expected book kept, got %d", n)
	}

	if err := repo.Delete(ctx, author.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestAuthorRepository_Update_DeletedRowStaysDeleted(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAuthorRepository(db)
	ctx := context.Background()

	seeded := testutil.SeedAuthor(t, db, "Miguel", "de Unamuno")
	author, err := repo.FindByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}

	if err := repo.Delete(ctx, seeded.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	author.Nationality = "vasca"
	if err := repo.Update(ctx, author); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
	if n := countRows(t, db, "autores"); n != 0 {
		t.Errorf("expected deleted author to stay deleted, got %d rows", n)
	}
}
