package model

import (
	"time"

	"gorm.io/datatypes"
)

type Author struct {
	ID          uint   `gorm:"primaryKey"`
	FirstName   string `gorm:"not null;index"`
	LastName    string `gorm:"not null;index"`
	Nationality string `gorm:"not null"`
	BirthDate   datatypes.Date
	DeathDate   *datatypes.Date
	Biography   string `gorm:"type:text;not null"`
	Image       *string
	Books       []Book `gorm:"many2many:libros_autores;joinForeignKey:AutorID;joinReferences:LibroID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Author) TableName() string {
	return "autores"
}

// FullName is the "nombre apellido" form used by author lookups.
func (a Author) FullName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}
