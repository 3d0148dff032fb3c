package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/testutil"
	"gorm.io/gorm"
)

func TestGenreRepository_Create_LowercasesAndRejectsDuplicates(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGenreRepository(db)
	ctx := context.Background()

	first := model.Genre{Name: "Fiction"}
	if err := repo.Create(ctx, &first); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if first.Name != "fiction" {
		t.Errorf("expected stored name %q, got %q", "fiction", first.Name)
	}

	second := model.Genre{Name: "fiction"}
	if err := repo.Create(ctx, &second); !errors.Is(err, ErrDuplicateGenre) {
		t.Fatalf("expected ErrDuplicateGenre, got %v", err)
	}

	if n := countRows(t, db, "generos"); n != 1 {
		t.Errorf("expected 1 genre, got %d", n)
	}
}

func TestGenreRepository_FindByName_IgnoresCase(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGenreRepository(db)

	seeded := testutil.SeedGenre(t, db, "Poesía")

	got, err := repo.FindByName(context.Background(), "POESÍA")
	if err != nil {
		t.Fatalf("FindByName returned error: %v", err)
	}
	if got.ID != seeded.ID {
		t.Errorf("expected id %d, got %d", seeded.ID, got.ID)
	}

	if _, err := repo.FindByName(context.Background(), "teatro"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestGenreRepository_Update_RenameConflict(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGenreRepository(db)
	ctx := context.Background()

	testutil.SeedGenre(t, db, "drama")
	comedy := testutil.SeedGenre(t, db, "comedia")

	comedy.Name = "Drama"
	if err := repo.Update(ctx, &comedy); !errors.Is(err, ErrDuplicateGenre) {
		t.Fatalf("expected ErrDuplicateGenre, got %v", err)
	}

	comedy.Name = "Comedia Negra"
	if err := repo.Update(ctx, &comedy); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	stored, err := repo.FindByID(ctx, comedy.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if stored.Name != "comedia negra" {
		t.Errorf("expected %q, got %q", "comedia negra", stored.Name)
	}
}

func TestGenreRepository_Delete_CascadesBookLinks(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGenreRepository(db)
	ctx := context.Background()

	genre := testutil.SeedGenre(t, db, "historia")
	testutil.SeedBook(t, db, testutil.ISBN1, "SPQR", nil, []model.Genre{genre})

	if err := repo.Delete(ctx, genre.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if n := countRows(t, db, "libros_generos"); n != 0 {
		t.Errorf("expected genre links removed, got %d", n)
	}
	if n := countRows(t, db, "libros"); n != 1 {
		t.Errorf("expected book kept, got %d", n)
	}

	if err := repo.Delete(ctx, genre.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestGenreRepository_Update_DeletedRowStaysDeleted(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGenreRepository(db)
	ctx := context.Background()

	seeded := testutil.SeedGenre(t, db, "poesía")
	genre, err := repo.FindByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}

	if err := repo.Delete(ctx, seeded.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	genre.Name = "lírica"
	if err := repo.Update(ctx, genre); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
	if n := countRows(t, db, "generos"); n != 0 {
		t.Errorf("expected deleted genre to stay deleted, got %d rows", n)
	}
}
