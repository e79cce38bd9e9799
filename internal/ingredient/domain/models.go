// Package domain contains persistence models for purchased ingredients.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Genre classifies an ingredient purchase.
type Genre string

const (
	GenreMeat      Genre = "meat"
	GenreVegetable Genre = "vegetable"
	GenreSeasoning Genre = "seasoning"
	GenreSauce     Genre = "sauce"
	GenreFrozen    Genre = "frozen"
	GenreDrink     Genre = "drink"
)

// Valid reports whether the genre is one of the recognized values.
func (g Genre) Valid() bool {
	switch g {
	case GenreMeat, GenreVegetable, GenreSeasoning, GenreSauce, GenreFrozen, GenreDrink:
		return true
	default:
		return false
	}
}

// Ingredient represents a purchased ingredient record. UnitPrice is
// recomputed from Price/Quantity on every create and update; dish costs
// snapshot it at link time and are never recomputed when it changes later.
type Ingredient struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null;index" json:"name"`
	Store     string       `gorm:"type:text;not null;default:''" json:"store"`
	Quantity  float64      `gorm:"not null" json:"quantity"`
	Unit      string       `gorm:"type:text;not null;default:''" json:"unit"`
	Price     float64      `gorm:"not null" json:"price"`
	UnitPrice float64      `gorm:"column:unit_price;not null;default:0" json:"unit_price"`
	Genre     Genre        `gorm:"type:text;not null" json:"genre"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Ingredient) TableName() string { return "ingredients" }
