package handler

import (
	"time"

	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/model"
)

type CreateAuthorRequest struct {
	FirstName   string      `json:"nombre" binding:"required,max=100"`
	LastName    string      `json:"apellidos" binding:"required,max=100"`
	Nationality string      `json:"nacionalidad" binding:"required,max=100"`
	BirthDate   *model.Date `json:"fecha_nacimiento" binding:"required" swaggertype:"string" example:"1931-02-18"`
	DeathDate   *model.Date `json:"fecha_fallecimiento" swaggertype:"string" example:"2019-08-05"`
	Biography   string      `json:"biografia" binding:"required"`
	Image       *string     `json:"imagen" binding:"omitempty,max=500"`
}

type UpdateAuthorRequest struct {
	FirstName   *string     `json:"nombre" binding:"omitempty,max=100"`
	LastName    *string     `json:"apellidos" binding:"omitempty,max=100"`
	Nationality *string     `json:"nacionalidad" binding:"omitempty,max=100"`
	BirthDate   *model.Date `json:"fecha_nacimiento" swaggertype:"string" example:"1931-02-18"`
	DeathDate   *model.Date `json:"fecha_fallecimiento" swaggertype:"string" example:"2019-08-05"`
	Biography   *string     `json:"biografia"`
	Image       *string     `json:"imagen" binding:"omitempty,max=500"`
}

func (r UpdateAuthorRequest) empty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Nationality == nil &&
		r.BirthDate == nil && r.DeathDate == nil && r.Biography == nil && r.Image == nil
}

type AuthorSummary struct {
	ID        uint   `json:"id"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellidos"`
}

type Author struct {
	ID          uint          `json:"id"`
	FirstName   string        `json:"nombre"`
	LastName    string        `json:"apellidos"`
	Nationality string        `json:"nacionalidad"`
	BirthDate   model.Date    `json:"fecha_nacimiento" swaggertype:"string" example:"1931-02-18"`
	DeathDate   *model.Date   `json:"fecha_fallecimiento,omitempty" swaggertype:"string" example:"2019-08-05"`
	Biography   string        `json:"biografia"`
	Image       *string       `json:"imagen,omitempty"`
	Books       []BookSummary `json:"libros"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type AuthorResponse struct {
	Data Author `json:"data"`
}

type ListAuthorsResponse struct {
	Data  []Author `json:"data"`
	Total int      `json:"total"`
}

func toAuthorSummary(a model.Author) AuthorSummary {
	return AuthorSummary{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
	}
}

func toAuthor(a model.Author) Author {
	books := make([]BookSummary, 0, len(a.Books))
	for _, b := range a.Books {
		books = append(books, toBookSummary(b))
	}

	return Author{
		ID:          a.ID,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Nationality: a.Nationality,
		BirthDate:   model.DateOf(a.BirthDate),
		DeathDate:   model.DatePtrOf(a.DeathDate),
		Biography:   a.Biography,
		Image:       a.Image,
		Books:       books,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
