package handler

import (
	"time"

	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/model"
)

type CreateUserRequest struct {
	Email      string      `json:"email" binding:"required,email,max=255"`
	FirstName  string      `json:"nombre" binding:"required,max=100"`
	LastName   string      `json:"apellido" binding:"required,max=100"`
	BirthDate  *model.Date `json:"fecha_nacimiento" binding:"required" swaggertype:"string" example:"1990-05-17"`
	NationalID string      `json:"dni" binding:"required,max=20"`
	Country    string      `json:"pais" binding:"required,max=100"`
	City       string      `json:"ciudad" binding:"required,max=100"`
	Address    string      `json:"direccion" binding:"required,max=255"`
	Phone      string      `json:"telefono" binding:"required,max=30"`
	Password   string      `json:"password" binding:"required,min=8,max=72"`
}

type UpdateUserRequest struct {
	Email      *string     `json:"email" binding:"omitempty,email,max=255"`
	FirstName  *string     `json:"nombre" binding:"omitempty,max=100"`
	LastName   *string     `json:"apellido" binding:"omitempty,max=100"`
	BirthDate  *model.Date `json:"fecha_nacimiento" swaggertype:"string" example:"1990-05-17"`
	NationalID *string     `json:"dni" binding:"omitempty,max=20"`
	Country    *string     `json:"pais" binding:"omitempty,max=100"`
	City       *string     `json:"ciudad" binding:"omitempty,max=100"`
	Address    *string     `json:"direccion" binding:"omitempty,max=255"`
	Phone      *string     `json:"telefono" binding:"omitempty,max=30"`
	Password   *string     `json:"password" binding:"omitempty,min=8,max=72"`
}

func (r UpdateUserRequest) empty() bool {
	return r.Email == nil && r.FirstName == nil && r.LastName == nil &&
		r.BirthDate == nil && r.NationalID == nil && r.Country == nil &&
		r.City == nil && r.Address == nil && r.Phone == nil && r.Password == nil
}

// User never carries the password hash.
type User struct {
	ID         uint       `json:"id"`
	Email      string     `json:"email"`
	FirstName  string     `json:"nombre"`
	LastName   string     `json:"apellido"`
	BirthDate  model.Date `json:"fecha_nacimiento" swaggertype:"string" example:"1990-05-17"`
	NationalID string     `json:"dni"`
	Country    string     `json:"pais"`
	City       string     `json:"ciudad"`
	Address    string     `json:"direccion"`
	Phone      string     `json:"telefono"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type UserResponse struct {
	Data User `json:"data"`
}

type ListUsersResponse struct {
	Data  []User `json:"data"`
	Total int    `json:"total"`
}

func toUser(u model.User) User {
	return User{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		BirthDate:  model.DateOf(u.BirthDate),
		NationalID: u.NationalID,
		Country:    u.Country,
		City:       u.City,
		Address:    u.Address,
		Phone:      u.Phone,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
