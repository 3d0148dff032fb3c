package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Rows that are the target of a lookup, update or delete and do not exist
// are reported as gorm.ErrRecordNotFound. The errors below are client input
// problems detected before anything is written.
var (
	ErrDuplicateISBN       = errors.New("isbn already exists")
	ErrDuplicateGenre      = errors.New("genre already exists")
	ErrDuplicateEmail      = errors.New("email already exists")
	ErrDuplicateNationalID = errors.New("dni already exists")
	ErrConflict            = errors.New("record conflicts with an existing one")

	ErrAuthorNotFound = errors.New("referenced author does not exist")
	ErrGenreNotFound  = errors.New("referenced genre does not exist")
	ErrUserNotFound   = errors.New("referenced user does not exist")
	ErrBookNotFound   = errors.New("referenced book does not exist")

	ErrUserHasLoans = errors.New("user still has loans")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
