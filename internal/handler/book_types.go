package handler

import (
	"time"

	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/model"
)

type CreateBookRequest struct {
	ISBN        string  `json:"isbn" binding:"required"`
	Title       string  `json:"titulo" binding:"required,max=255"`
	Description string  `json:"descripcion" binding:"max=5000"`
	Publisher   string  `json:"editorial" binding:"max=255"`
	Country     string  `json:"pais" binding:"max=100"`
	Language    string  `json:"idioma" binding:"max=50"`
	PageCount   int     `json:"num_paginas" binding:"min=0"`
	EditionYear int     `json:"ano_edicion" binding:"min=0"`
	Price       float64 `json:"precio" binding:"min=0"`
	AuthorIDs   []uint  `json:"autores" example:"1"`
	GenreIDs    []uint  `json:"generos" example:"1"`
}

// UpdateBookRequest carries only the fields to change. A present autores or
// generos list replaces the whole association, an empty list clears it.
type UpdateBookRequest struct {
	ISBN        *string  `json:"isbn"`
	Title       *string  `json:"titulo" binding:"omitempty,max=255"`
	Description *string  `json:"descripcion" binding:"omitempty,max=5000"`
	Publisher   *string  `json:"editorial" binding:"omitempty,max=255"`
	Country     *string  `json:"pais" binding:"omitempty,max=100"`
	Language    *string  `json:"idioma" binding:"omitempty,max=50"`
	PageCount   *int     `json:"num_paginas" binding:"omitempty,min=0"`
	EditionYear *int     `json:"ano_edicion" binding:"omitempty,min=0"`
	Price       *float64 `json:"precio" binding:"omitempty,min=0"`
	AuthorIDs   []uint   `json:"autores"`
	GenreIDs    []uint   `json:"generos"`
}

func (r UpdateBookRequest) empty() bool {
	return r.ISBN == nil && r.Title == nil && r.Description == nil &&
		r.Publisher == nil && r.Country == nil && r.Language == nil &&
		r.PageCount == nil && r.EditionYear == nil && r.Price == nil &&
		r.AuthorIDs == nil && r.GenreIDs == nil
}

type Book struct {
	ID          uint            `json:"id"`
	ISBN        string          `json:"isbn"`
	Title       string          `json:"titulo"`
	Description string          `json:"descripcion"`
	Publisher   string          `json:"editorial"`
	Country     string          `json:"pais"`
	Language    string          `json:"idioma"`
	PageCount   int             `json:"num_paginas"`
	EditionYear int             `json:"ano_edicion"`
	Price       float64         `json:"precio"`
	Authors     []AuthorSummary `json:"autores"`
	Genres      []GenreSummary  `json:"generos"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type BookResponse struct {
	Data Book `json:"data"`
}

type BookSummary struct {
	ID    uint   `json:"id"`
	ISBN  string `json:"isbn"`
	Title string `json:"titulo"`
}

type BookSummariesResponse struct {
	Data []BookSummary `json:"data"`
}

type ListBooksResponse struct {
	Data  []Book `json:"data"`
	Total int    `json:"total"`
}

func toBookSummary(b model.Book) BookSummary {
	return BookSummary{ID: b.ID, ISBN: b.ISBN, Title: b.Title}
}

func toBook(b model.Book) Book {
	authors := make([]AuthorSummary, 0, len(b.Authors))
	for _, a := range b.Authors {
		authors = append(authors, toAuthorSummary(a))
	}
	genres := make([]GenreSummary, 0, len(b.Genres))
	for _, g := range b.Genres {
		genres = append(genres, toGenreSummary(g))
	}

	return Book{
		ID:          b.ID,
		ISBN:        b.ISBN,
		Title:       b.Title,
		Description: b.Description,
		Publisher:   b.Publisher,
		Country:     b.Country,
		Language:    b.Language,
		PageCount:   b.PageCount,
		EditionYear: b.EditionYear,
		Price:       b.Price,
		Authors:     authors,
		Genres:      genres,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toListBooksResponse(books []model.Book) ListBooksResponse {
	data := make([]Book, 0, len(books))
	for _, b := range books {
		data = append(data, toBook(b))
	}
	return ListBooksResponse{Data: data, Total: len(data)}
}
