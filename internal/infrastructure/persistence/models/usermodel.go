package models

import (
	"time"
)

// UserModel represents the database persistence model for users
// This is the anti-corruption layer between domain and database
type UserModel struct {
	ID           uint    `gorm:"primarykey"`
	Username     string  `gorm:"uniqueIndex;not null;size:80"`
	Email        string  `gorm:"uniqueIndex;not null;size:120"`
	PasswordHash *string `gorm:"size:255"`
	CreatedAt    time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}
