package models

import (
	"fmt"
	"time"
)

type InstructorStatus string

const (
	InstructorAvailable InstructorStatus = "available"
	InstructorBusy      InstructorStatus = "busy"
)

// Instructor is created automatically when a user registers with the
// instructor role. LicenseID is derived from the owning user id.
type Instructor struct {
	ID         uint             `json:"id" gorm:"primaryKey"`
	UserID     uint             `json:"user_id" gorm:"uniqueIndex;not null"`
	Name       string           `json:"name" gorm:"not null;size:100"`
	Email      string           `json:"email" gorm:"not null;size:255"`
	LicenseID  string           `json:"license_id" gorm:"not null;size:20"`
	Experience string           `json:"experience" gorm:"size:100"`
	Status     InstructorStatus `json:"status" gorm:"not null;size:20;default:available"`
	ImageURL   *string          `json:"image_url" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Instructor) TableName() string {
	return "instructors"
}

// LicenseIDFor derives the license identifier for a newly registered
// instructor from the user id ("LIC" + zero-padded 4 digits).
func LicenseIDFor(userID uint) string {
	return fmt.Sprintf("LIC%04d", userID)
}
