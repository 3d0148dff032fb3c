package repository

import (
	"context"

	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GenreRepository interface {
	Create(ctx context.Context, genre *model.Genre) error
	FindByID(ctx context.Context, id uint) (*model.Genre, error)
	FindByName(ctx context.Context, name string) (*model.Genre, error)
	List(ctx context.Context) ([]model.Genre, error)
	Update(ctx context.Context, genre *model.Genre) error
	Delete(ctx context.Context, id uint) error
}

type GormGenreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) *GormGenreRepository {
	return &GormGenreRepository{db: db}
}

func genreNameTaken(tx *gorm.DB, name string, exceptID uint) (bool, error) {
	var count int64
	q := tx.Model(&model.Genre{}).Where("name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create stores the genre under its lowercased name, so "Fiction" and
// "fiction" are the same genre.
func (r *GormGenreRepository) Create(ctx context.Context, genre *model.Genre) error {
	genre.Name = model.NormalizeGenreName(genre.Name)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := genreNameTaken(tx, genre.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateGenre
		}

		if err := tx.Omit(clause.Associations).Create(genre).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateGenre
			}
			return err
		}
		return nil
	})
}

func (r *GormGenreRepository) FindByID(ctx context.Context, id uint) (*model.Genre, error) {
	var genre model.Genre
	if err := r.db.WithContext(ctx).First(&genre, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *GormGenreRepository) FindByName(ctx context.Context, name string) (*model.Genre, error) {
	var genre model.Genre
	if err := r.db.WithContext(ctx).
		First(&genre, "name = ?", model.NormalizeGenreName(name)).Error; err != nil {

		return nil, err
	}
	return &genre, nil
}

func (r *GormGenreRepository) List(ctx context.Context) ([]model.Genre, error) {
	var genres []model.Genre
	if err := r.db.WithContext(ctx).Order("id").Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *GormGenreRepository) Update(ctx context.Context, genre *model.Genre) error {
	genre.Name = model.NormalizeGenreName(genre.Name)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockExisting[model.Genre](tx, genre.ID); err != nil {
			return err
		}

		taken, err := genreNameTaken(tx, genre.Name, genre.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateGenre
		}

		if err := tx.Omit(clause.Associations).Save(genre).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateGenre
			}
			return err
		}
		return nil
	})
}

func (r *GormGenreRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Genre{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
