package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LoanStatus string

const (
	LoanActive   LoanStatus = "activo"
	LoanReturned LoanStatus = "devuelto"
	LoanLate     LoanStatus = "retrasado"
)

func (s LoanStatus) Valid() bool {
	switch s {
	case LoanActive, LoanReturned, LoanLate:
		return true
	}
	return false
}

type Loan struct {
	ID        uint           `gorm:"primaryKey"`
	LoanDate  datatypes.Date `gorm:"not null"`
	DueDate   datatypes.Date `gorm:"not null"`
	Status    LoanStatus     `gorm:"type:varchar(16);not null;index"`
	UserID    uint           `gorm:"not null;index"`
	User      User           `gorm:"constraint:OnDelete:RESTRICT"`
	Books     []Book         `gorm:"many2many:prestamos_libros;joinForeignKey:PrestamoID;joinReferences:LibroID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Loan) TableName() string {
	return "prestamos"
}

func (l *Loan) BeforeCreate(tx *gorm.DB) (err error) {
	if l.Status == "" {
		l.Status = LoanActive
	}
	return
}

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&Author{},
		&Genre{},
		&User{},
		&Book{},
		&Loan{},
	}
}
