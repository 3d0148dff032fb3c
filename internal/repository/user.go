package repository

import (
	"context"

	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uint) error
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// checkUserUnique enforces email and dni uniqueness ahead of the write.
func checkUserUnique(tx *gorm.DB, user *model.User) error {
	var count int64
	if err := tx.Model(&model.User{}).
		Where("email = ? AND id <> ?", user.Email, user.ID).
		Count(&count).Error; err != nil {

		return err
	}
	if count > 0 {
		return ErrDuplicateEmail
	}

	if err := tx.Model(&model.User{}).
		Where("dni = ? AND id <> ?", user.NationalID, user.ID).
		Count(&count).Error; err != nil {

		return err
	}
	if count > 0 {
		return ErrDuplicateNationalID
	}
	return nil
}

func (r *GormUserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkUserUnique(tx, user); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrConflict
			}
			return err
		}
		return nil
	})
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormUserRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockExisting[model.User](tx, user.ID); err != nil {
			return err
		}
		if err := checkUserUnique(tx, user); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Save(user).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrConflict
			}
			return err
		}
		return nil
	})
}

// Delete refuses to remove a user that loans still point at.
func (r *GormUserRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var loans int64
		if err := tx.Model(&model.Loan{}).Where("user_id = ?", id).Count(&loans).Error; err != nil {
			return err
		}
		if loans > 0 {
			return ErrUserHasLoans
		}

		result := tx.Delete(&model.User{}, "id = ?", id)
		if result.Error != nil {
			if isForeignKeyViolation(result.Error) {
				return ErrUserHasLoans
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
