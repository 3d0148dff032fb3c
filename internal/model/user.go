package model

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"not null;uniqueIndex"`
	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	BirthDate    datatypes.Date
	NationalID   string `gorm:"column:dni;not null;uniqueIndex"`
	Country      string `gorm:"not null"`
	City         string `gorm:"not null"`
	Address      string `gorm:"not null"`
	Phone        string `gorm:"not null"`
	PasswordHash string `gorm:"column:password;not null"`
	Loans        []Loan `gorm:"foreignKey:UserID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
