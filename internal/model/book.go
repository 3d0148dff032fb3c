package model

import "time"

type Book struct {
	ID          uint   `gorm:"primaryKey"`
	ISBN        string `gorm:"size:13;uniqueIndex;not null"`
	Title       string `gorm:"not null"`
	Description string
	Publisher   string
	Country     string
	Language    string
	PageCount   int
	EditionYear int
	Price       float64  `gorm:"type:numeric(10,2)"`
	Authors     []Author `gorm:"many2many:libros_autores;joinForeignKey:LibroID;joinReferences:AutorID;constraint:OnDelete:CASCADE"`
	Genres      []Genre  `gorm:"many2many:libros_generos;joinForeignKey:LibroID;joinReferences:GeneroID;constraint:OnDelete:CASCADE"`
	Loans       []Loan   `gorm:"many2many:prestamos_libros;joinForeignKey:LibroID;joinReferences:PrestamoID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Book) TableName() string {
	return "libros"
}
