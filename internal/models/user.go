package models

import (
	"time"
)

type UserRole string

const (
	RoleUser       UserRole = "user"
	RoleInstructor UserRole = "instructor"
	RoleAdmin      UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"not null;size:100"`
	Email string `json:"email" gorm:"uniqueIndex;not null;size:255"`

	// Password holds the bcrypt hash; never serialized.
	Password string   `json:"-" gorm:"not null;size:255"`
	Role     UserRole `json:"role" gorm:"not null;size:20;default:user"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
