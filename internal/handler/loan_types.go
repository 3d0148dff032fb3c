package handler

import (
	"time"

	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/model"
)

type CreateLoanRequest struct {
	LoanDate *model.Date      `json:"fecha_prestamo" binding:"required" swaggertype:"string" example:"2024-03-01"`
	DueDate  *model.Date      `json:"fecha_devolucion" binding:"required" swaggertype:"string" example:"2024-03-15"`
	Status   model.LoanStatus `json:"estado" binding:"omitempty,oneof=activo devuelto retrasado" swaggertype:"string" example:"activo"`
	UserID   uint             `json:"usuario_id" binding:"required"`
	BookIDs  []uint           `json:"libros_id" binding:"required,min=1"`
}

// UpdateLoanRequest carries only the fields to change. A present libros_id
// list replaces the borrowed books.
type UpdateLoanRequest struct {
	LoanDate *model.Date       `json:"fecha_prestamo" swaggertype:"string" example:"2024-03-01"`
	DueDate  *model.Date       `json:"fecha_devolucion" swaggertype:"string" example:"2024-03-15"`
	Status   *model.LoanStatus `json:"estado" binding:"omitempty,oneof=activo devuelto retrasado" swaggertype:"string" example:"devuelto"`
	UserID   *uint             `json:"usuario_id" binding:"omitempty,min=1"`
	BookIDs  []uint            `json:"libros_id" binding:"omitempty,min=1"`
}

func (r UpdateLoanRequest) empty() bool {
	return r.LoanDate == nil && r.DueDate == nil && r.Status == nil &&
		r.UserID == nil && r.BookIDs == nil
}

type Loan struct {
	ID        uint             `json:"id"`
	LoanDate  model.Date       `json:"fecha_prestamo" swaggertype:"string" example:"2024-03-01"`
	DueDate   model.Date       `json:"fecha_devolucion" swaggertype:"string" example:"2024-03-15"`
	Status    model.LoanStatus `json:"estado" swaggertype:"string" example:"activo"`
	UserID    uint             `json:"usuario_id"`
	BookIDs   []uint           `json:"libros_id"`
	Books     []BookSummary    `json:"libros"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type LoanResponse struct {
	Data Loan `json:"data"`
}

type ListLoansResponse struct {
	Data  []Loan `json:"data"`
	Total int    `json:"total"`
}

func toLoan(l model.Loan) Loan {
	ids := make([]uint, 0, len(l.Books))
	books := make([]BookSummary, 0, len(l.Books))
	for _, b := range l.Books {
		ids = append(ids, b.ID)
		books = append(books, toBookSummary(b))
	}

	return Loan{
		ID:        l.ID,
		LoanDate:  model.DateOf(l.LoanDate),
		DueDate:   model.DateOf(l.DueDate),
		Status:    l.Status,
		UserID:    l.UserID,
		BookIDs:   ids,
		Books:     books,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func toListLoansResponse(loans []model.Loan) ListLoansResponse {
	data := make([]Loan, 0, len(loans))
	for _, l := range loans {
		data = append(data, toLoan(l))
	}
	return ListLoansResponse{Data: data, Total: len(data)}
}
