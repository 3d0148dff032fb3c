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

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()

	var n int64
	if err := db.Table(table).Count(&n).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestGormBookRepository_Create_WithAuthorsAndGenres(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	ctx := context.Background()

	author := testutil.SeedAuthor(t, db, "Isaac", "Asimov")
	genre := testutil.SeedGenre(t, db, "ciencia ficción")

	book := model.Book{ISBN: testutil.ISBN1, Title: "Fundación"}
	links := BookLinks{AuthorIDs: []uint{author.ID, author.ID}, GenreIDs: []uint{genre.ID}}

	if err := repo.Create(ctx, &book, links); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if book.ID == 0 {
		t.Fatalf("expected ID to be assigned")
	}
	if book.CreatedAt.IsZero() || book.UpdatedAt.IsZero() {
		t.Errorf("expected timestamps to be stamped, got %v / %v", book.CreatedAt, book.UpdatedAt)
	}

	stored, err := repo.FindByID(ctx, book.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if len(stored.Authors) != 1 || stored.Authors[0].ID != author.ID {
		t.Errorf("expected author %d, got %+v", author.ID, stored.Authors)
	}
	if len(stored.Genres) != 1 || stored.Genres[0].ID != genre.ID {
		t.Errorf("expected genre %d, got %+v", genre.ID, stored.Genres)
	}
}

func TestGormBookRepository_Create_DuplicateISBN(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	ctx := context.Background()

	testutil.SeedBook(t, db, testutil.ISBN1, "Original", nil, nil)

	book := model.Book{ISBN: testutil.ISBN1, Title: "Copy"}
	err := repo.Create(ctx, &book, BookLinks{})
	if !errors.Is(err, ErrDuplicateISBN) {
		t.Fatalf("expected ErrDuplicateISBN, got %v", err)
	}

	if n := countRows(t, db, "libros"); n != 1 {
		t.Errorf("expected 1 book, got %d", n)
	}
}

func TestGormBookRepository_Create_UnknownReferencesWriteNothing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	ctx := context.Background()

	author := testutil.SeedAuthor(t, db, "Isaac", "Asimov")
	genre := testutil.SeedGenre(t, db, "ensayo")

	cases := []struct {
		name  string
		links BookLinks
		want  error
	}{
		{"missing_author", BookLinks{AuthorIDs: []uint{author.ID, 999}, GenreIDs: []uint{genre.ID}}, ErrAuthorNotFound},
		{"missing_genre", BookLinks{AuthorIDs: []uint{author.ID}, GenreIDs: []uint{genre.ID, 999}}, ErrGenreNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			book := model.Book{ISBN: testutil.ISBN2, Title: "Ghost"}
			err := repo.Create(ctx, &book, tc.links)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}

			if n := countRows(t, db, "libros"); n != 0 {
				t.Errorf("expected no books, got %d", n)
			}
			if n := countRows(t, db, "libros_autores"); n != 0 {
				t.Errorf("expected no author links, got %d", n)
			}
			if n := countRows(t, db, "libros_generos"); n != 0 {
				t.Errorf("expected no genre links, got %d", n)
			}
		})
	}
}

func TestGormBookRepository_Update_PartialKeepsLinks(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	ctx := context.Background()

	author := testutil.SeedAuthor(t, db, "Isaac", "Asimov")
	genre := testutil.SeedGenre(t, db, "ciencia ficción")
	seeded := testutil.SeedBook(t, db, testutil.ISBN1, "Fundación", []model.Author{author}, []model.Genre{genre})

	past := time.Now().Add(-48 * time.Hour)
	if err := db.Model(&model.Book{}).Where("id = ?", seeded.ID).UpdateColumn("updated_at", past).Error; err != nil {
		t.Fatalf("failed to backdate: %v", err)
	}

	book, err := repo.FindByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	book.Price = 19.99

	if err := repo.Update(ctx, book, BookLinks{}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	updated, err := repo.FindByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if updated.Price != 19.99 {
		t.Errorf("expected price 19.99, got %v", updated.Price)
	}
	if updated.Title != "Fundación" || updated.ISBN != testutil.ISBN1 {
		t.Errorf("expected untouched fields, got %+v", updated)
	}
	if !updated.UpdatedAt.After(past) {
		t.Errorf("expected updated_at after %v, got %v", past, updated.UpdatedAt)
	}
	if len(updated.Authors) != 1 || len(updated.Genres) != 1 {
		t.Errorf("expected links untouched, got %d authors / %d genres", len(updated.Authors), len(updated.Genres))
	}
}

func TestGormBookRepository_Update_ReplacesLinks(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	ctx := context.Background()

	a1 := testutil.SeedAuthor(t, db, "Terry", "Pratchett")
	a2 := testutil.SeedAuthor(t, db, "Neil", "Gaiman")
	g1 := testutil.SeedGenre(t, db, "fantasía")
	g2 := testutil.SeedGenre(t, db, "humor")
	seeded := testutil.SeedBook(t, db, testutil.ISBN1, "Buenos presagios", []model.Author{a1}, []model.Genre{g1, g2})

	book, err := repo.FindByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}

	links := BookLinks{AuthorIDs: []uint{a2.ID, a1.ID}, GenreIDs: []uint{}}
	if err := repo.Update(ctx, book, links); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	updated, err := repo.FindByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if len(updated.Authors) != 2 || updated.Authors[0].ID != a1.ID || updated.Authors[1].ID != a2.ID {
		t.Errorf("expected authors [%d %d], got %+v", a1.ID, a2.ID, updated.Authors)
	}
	if len(updated.Genres) != 0 {
		t.Errorf("expected genres cleared, got %+v", updated.Genres)
	}
	if n := countRows(t, db, "libros_generos"); n != 0 {
		t.Errorf("expected no genre links, got %d", n)
	}
}

func TestGormBookRepository_Update_UnknownAuthorRollsBack(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	ctx := context.Background()

	author := testutil.SeedAuthor(t, db, "Isaac", "Asimov")
	seeded := testutil.SeedBook(t, db, testutil.ISBN1, "Fundación", []model.Author{author}, nil)

	book, err := repo.FindByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	book.Title = "Changed"

	err = repo.Update(ctx, book, BookLinks{AuthorIDs: []uint{404}})
	if !errors.Is(err, ErrAuthorNotFound) {
		t.Fatalf("expected ErrAuthorNotFound, got %v", err)
	}

	stored, _ := repo.FindByID(ctx, seeded.ID)
	if stored.Title != "Fundación" {
		t.Errorf("expected title unchanged, got %q", stored.Title)
	}
	if len(stored.Authors) != 1 {
		t.Errorf("expected author link kept, got %+v", stored.Authors)
	}
}

func TestGormBookRepository_Update_ISBNConflict(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	ctx := context.Background()

	testutil.SeedBook(t, db, testutil.ISBN1, "Uno", nil, nil)
	second := testutil.SeedBook(t, db, testutil.ISBN2, "Dos", nil, nil)

	book, err := repo.FindByID(ctx, second.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	book.ISBN = testutil.ISBN1

	if err := repo.Update(ctx, book, BookLinks{}); !errors.Is(err, ErrDuplicateISBN) {
		t.Fatalf("expected ErrDuplicateISBN, got %v", err)
	}
}

func TestGormBookRepository_Update_Missing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	book := &model.Book{ID: 77, ISBN: testutil.ISBN1, Title: "Nope"}
	err := repo.Update(context.Background(), book, BookLinks{})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestGormBookRepository_FindByAuthorName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	ctx := context.Background()

	asimov := testutil.SeedAuthor(t, db, "Isaac", "Asimov")
	other := testutil.SeedAuthor(t, db, "Ursula", "Le Guin")
	testutil.SeedBook(t, db, testutil.ISBN1, "Fundación", []model.Author{asimov}, nil)
	testutil.SeedBook(t, db, testutil.ISBN2, "Yo, robot", []model.Author{asimov}, nil)
	testutil.SeedBook(t, db, testutil.ISBN3, "Terramar", []model.Author{other}, nil)

	for _, name := range []string{"Asimov", "isaac", "ISAAC ASIMOV"} {
		books, err := repo.FindByAuthorName(ctx, name)
		if err != nil {
			t.Fatalf("FindByAuthorName(%q) returned error: %v", name, err)
		}
		if len(books) != 2 {
			t.Fatalf("FindByAuthorName(%q): expected 2 books, got %d", name, len(books))
		}
		if books[0].Title != "Fundación" || books[1].Title != "Yo, robot" {
			t.Errorf("unexpected books: %s, %s", books[0].Title, books[1].Title)
		}
		if len(books[0].Authors) != 1 {
			t.Errorf("expected authors preloaded")
		}
	}

	books, err := repo.FindByAuthorName(ctx, "Tolkien")
	if err != nil {
		t.Fatalf("FindByAuthorName returned error: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("expected no books, got %d", len(books))
	}
}

func TestGormBookRepository_Delete_CascadesLinks(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	ctx := context.Background()

	author := testutil.SeedAuthor(t, db, "Isaac", "Asimov")
	genre := testutil.SeedGenre(t, db, "ciencia ficción")
	book := testutil.SeedBook(t, db, testutil.ISBN1, "Fundación", []model.Author{author}, []model.Genre{genre})

	if err := repo.Delete(ctx, book.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if n := countRows(t, db, "libros_autores"); n != 0 {
		t.Errorf("expected author links removed, got %d", n)
	}
	if n := countRows(t, db, "libros_generos"); n != 0 {
		t.Errorf("expected genre links removed, got %d", n)
	}
	if n := countRows(t, db, "autores"); n != 1 {
		t.Errorf("expected author kept, got %d", n)
	}

	if err := repo.Delete(ctx, book.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound on second delete, got %v", err)
	}
}

func TestGormBookRepository_ListEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	books, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("expected empty list, got %d", len(books))
	}
}
