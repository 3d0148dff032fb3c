package repository

import (
	"context"

	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository interface {
	Create(ctx context.Context, loan *model.Loan, bookIDs []uint) error
	FindByID(ctx context.Context, id uint) (*model.Loan, error)
	List(ctx context.Context) ([]model.Loan, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Loan, error)
	Update(ctx context.Context, loan *model.Loan, bookIDs []uint) error
	Delete(ctx context.Context, id uint) error
}

type GormLoanRepository struct {
	db *gorm.DB
}

func NewLoanRepository(db *gorm.DB) *GormLoanRepository {
	return &GormLoanRepository{db: db}
}

func withLoanBooks(db *gorm.DB) *gorm.DB {
	return db.Preload("Books", func(db *gorm.DB) *gorm.DB { return db.Order("libros.id") })
}

func userExists(tx *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := tx.Model(&model.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create checks that the user and every book exist, then stores the loan
// and its book links together.
func (r *GormLoanRepository) Create(ctx context.Context, loan *model.Loan, bookIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := userExists(tx, loan.UserID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrUserNotFound
		}

		books, err := resolveIDs[model.Book](tx, bookIDs, ErrBookNotFound)
		if err != nil {
			return err
		}
		loan.Books = books

		if err := tx.Omit("User", "Books.*").Create(loan).Error; err != nil {
			if isForeignKeyViolation(err) {
				return ErrUserNotFound
			}
			return err
		}
		return nil
	})
}

func (r *GormLoanRepository) FindByID(ctx context.Context, id uint) (*model.Loan, error) {
	var loan model.Loan
	if err := withLoanBooks(r.db.WithContext(ctx)).
		First(&loan, "id = ?", id).Error; err != nil {

		return nil, err
	}
	return &loan, nil
}

func (r *GormLoanRepository) List(ctx context.Context) ([]model.Loan, error) {
	var loans []model.Loan
	if err := withLoanBooks(r.db.WithContext(ctx)).
		Order("id").
		Find(&loans).Error; err != nil {

		return nil, err
	}
	return loans, nil
}

// ListByUser returns gorm.ErrRecordNotFound when the user does not exist.
func (r *GormLoanRepository) ListByUser(ctx context.Context, userID uint) ([]model.Loan, error) {
	db := r.db.WithContext(ctx)

	ok, err := userExists(db, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	var loans []model.Loan
	if err := withLoanBooks(db).
		Where("user_id = ?", userID).
		Order("id").
		Find(&loans).Error; err != nil {

		return nil, err
	}
	return loans, nil
}

// Update writes every column of loan. A non-nil bookIDs replaces the set of
// borrowed books.
func (r *GormLoanRepository) Update(ctx context.Context, loan *model.Loan, bookIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockExisting[model.Loan](tx, loan.ID); err != nil {
			return err
		}

		ok, err := userExists(tx, loan.UserID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrUserNotFound
		}

		var books []model.Book
		if bookIDs != nil {
			if books, err = resolveIDs[model.Book](tx, bookIDs, ErrBookNotFound); err != nil {
				return err
			}
		}

		if err := tx.Omit(clause.Associations).Save(loan).Error; err != nil {
			return err
		}

		if bookIDs != nil {
			return replaceAssociation(tx, loan, "Books", books)
		}
		return nil
	})
}

func (r *GormLoanRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Loan{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
