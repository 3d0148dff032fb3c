package handler

import (
	"time"

	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/model"
)

type CreateGenreRequest struct {
	Name        string  `json:"nombre" binding:"required,max=100"`
	Description *string `json:"descripcion" binding:"omitempty,max=2000"`
}

type UpdateGenreRequest struct {
	Name        *string `json:"nombre" binding:"omitempty,max=100"`
	Description *string `json:"descripcion" binding:"omitempty,max=2000"`
}

type GenreSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"nombre"`
}

type Genre struct {
	ID          uint      `json:"id"`
	Name        string    `json:"nombre"`
	Description *string   `json:"descripcion,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type GenreResponse struct {
	Data Genre `json:"data"`
}

type ListGenresResponse struct {
	Data  []Genre `json:"data"`
	Total int     `json:"total"`
}

func toGenreSummary(g model.Genre) GenreSummary {
	return GenreSummary{ID: g.ID, Name: g.Name}
}

func toGenre(g model.Genre) Genre {
	return Genre{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}
