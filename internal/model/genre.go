package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Genre struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null;uniqueIndex"`
	Description *string
	Books       []Book `gorm:"many2many:libros_generos;joinForeignKey:GeneroID;joinReferences:LibroID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Genre) TableName() string {
	return "generos"
}

// NormalizeGenreName is the stored form of a genre name. Names collide
// case-insensitively.
func NormalizeGenreName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (g *Genre) BeforeSave(tx *gorm.DB) (err error) {
	g.Name = NormalizeGenreName(g.Name)
	return
}
