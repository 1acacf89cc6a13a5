package entity

import "gorm.io/gorm"

// Operator is a dispatcher account allowed to edit the board.
type Operator struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;size:255" json:"email"`
	Password string `json:"-"`
	Name     string `json:"name"`
}
