// Package domain contains the freeform memo model.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Memo is a freeform note attached to nothing in particular.
type Memo struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Title     string       `gorm:"type:text;not null" json:"title"`
	Content   string       `gorm:"type:text;not null;default:''" json:"content"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Memo) TableName() string { return "memos" }
