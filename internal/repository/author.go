package repository

import (
	"context"

	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AuthorRepository interface {
	Create(ctx context.Context, author *model.Author) error
	FindByID(ctx context.Context, id uint) (*model.Author, error)
	List(ctx context.Context) ([]model.Author, error)
	Update(ctx context.Context, author *model.Author) error
	Delete(ctx context.Context, id uint) error
}

type GormAuthorRepository struct {
	db *gorm.DB
}

func NewAuthorRepository(db *gorm.DB) *GormAuthorRepository {
	return &GormAuthorRepository{db: db}
}

func withAuthorBooks(db *gorm.DB) *gorm.DB {
	return db.Preload("Books", func(db *gorm.DB) *gorm.DB { return db.Order("libros.id") })
}

func (r *GormAuthorRepository) Create(ctx context.Context, author *model.Author) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(author).Error
}

func (r *GormAuthorRepository) FindByID(ctx context.Context, id uint) (*model.Author, error) {
	var author model.Author
	if err := withAuthorBooks(r.db.WithContext(ctx)).
		First(&author, "id = ?", id).Error; err != nil {

		return nil, err
	}
	return &author, nil
}

func (r *GormAuthorRepository) List(ctx context.Context) ([]model.Author, error) {
	var authors []model.Author
	if err := withAuthorBooks(r.db.WithContext(ctx)).
		Order("id").
		Find(&authors).Error; err != nil {

		return nil, err
	}
	return authors, nil
}

// Update writes every column of author. A row deleted since it was read is
// reported as gorm.ErrRecordNotFound rather than written back.
func (r *GormAuthorRepository) Update(ctx context.Context, author *model.Author) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockExisting[model.Author](tx, author.ID); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(author).Error
	})
}

func (r *GormAuthorRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Author{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
