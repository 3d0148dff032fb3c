package repository

import (
	"context"
	"strings"

	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookLinks names the authors and genres of a book by id. On update a nil
// slice leaves that association as it is; a non-nil slice replaces it.
type BookLinks struct {
	AuthorIDs []uint
	GenreIDs  []uint
}

type BookRepository interface {
	Create(ctx context.Context, book *model.Book, links BookLinks) error
	FindByID(ctx context.Context, id uint) (*model.Book, error)
	FindByISBN(ctx context.Context, isbn string) (*model.Book, error)
	FindByAuthorName(ctx context.Context, name string) ([]model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	Update(ctx context.Context, book *model.Book, links BookLinks) error
	Delete(ctx context.Context, id uint) error
}

type GormBookRepository struct {
	db *gorm.DB
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

func withBookRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Authors", func(db *gorm.DB) *gorm.DB { return db.Order("autores.id") }).
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("generos.id") })
}

func isbnTaken(tx *gorm.DB, isbn string, exceptID uint) (bool, error) {
	var count int64
	q := tx.Model(&model.Book{}).Where("isbn = ?", isbn)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts the book together with its author and genre links in one
// transaction. The isbn pre-check is not atomic with the insert; a racing
// insert of the same isbn is caught by the unique index.
func (r *GormBookRepository) Create(ctx context.Context, book *model.Book, links BookLinks) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := isbnTaken(tx, book.ISBN, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateISBN
		}

		authors, err := resolveIDs[model.Author](tx, links.AuthorIDs, ErrAuthorNotFound)
		if err != nil {
			return err
		}
		genres, err := resolveIDs[model.Genre](tx, links.GenreIDs, ErrGenreNotFound)
		if err != nil {
			return err
		}

		book.Authors = authors
		book.Genres = genres

		if err := tx.Omit("Authors.*", "Genres.*", "Loans").Create(book).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateISBN
			}
			return err
		}
		return nil
	})
}

func (r *GormBookRepository) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	var book model.Book
	if err := withBookRelations(r.db.WithContext(ctx)).
		First(&book, "id = ?", id).Error; err != nil {

		return nil, err
	}
	return &book, nil
}

func (r *GormBookRepository) FindByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	var book model.Book
	if err := withBookRelations(r.db.WithContext(ctx)).
		First(&book, "isbn = ?", isbn).Error; err != nil {

		return nil, err
	}
	return &book, nil
}

// FindByAuthorName matches, case-insensitively, an author's first name, last
// name or "first last".
func (r *GormBookRepository) FindByAuthorName(ctx context.Context, name string) ([]model.Book, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	db := r.db.WithContext(ctx)

	bookIDs := db.Table("libros_autores").
		Select("libros_autores.libro_id").
		Joins("JOIN autores ON autores.id = libros_autores.autor_id").
		Where(
			"LOWER(autores.first_name) = ? OR LOWER(autores.last_name) = ? OR LOWER(autores.first_name || ' ' || autores.last_name) = ?",
			name, name, name,
		)

	var books []model.Book
	if err := withBookRelations(db).
		Where("id IN (?)", bookIDs).
		Order("id").
		Find(&books).Error; err != nil {

		return nil, err
	}
	return books, nil
}

func (r *GormBookRepository) List(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	if err := withBookRelations(r.db.WithContext(ctx)).
		Order("id").
		Find(&books).Error; err != nil {

		return nil, err
	}
	return books, nil
}

// Update writes every column of book, refreshing updated_at, and replaces
// the author and genre sets named in links.
func (r *GormBookRepository) Update(ctx context.Context, book *model.Book, links BookLinks) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "isbn").
			First(&current, "id = ?", book.ID).Error; err != nil {

			return err
		}

		if current.ISBN != book.ISBN {
			taken, err := isbnTaken(tx, book.ISBN, book.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicateISBN
			}
		}

		var authors []model.Author
		if links.AuthorIDs != nil {
			var err error
			if authors, err = resolveIDs[model.Author](tx, links.AuthorIDs, ErrAuthorNotFound); err != nil {
				return err
			}
		}
		var genres []model.Genre
		if links.GenreIDs != nil {
			var err error
			if genres, err = resolveIDs[model.Genre](tx, links.GenreIDs, ErrGenreNotFound); err != nil {
				return err
			}
		}

		if err := tx.Omit(clause.Associations).Save(book).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateISBN
			}
			return err
		}

		if links.AuthorIDs != nil {
			if err := replaceAssociation(tx, book, "Authors", authors); err != nil {
				return err
			}
		}
		if links.GenreIDs != nil {
			if err := replaceAssociation(tx, book, "Genres", genres); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the book. Its rows in the join tables go with it through
// ON DELETE CASCADE.
func (r *GormBookRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Book{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
