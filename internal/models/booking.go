package models

import (
	"time"

	"gorm.io/datatypes"
)

type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingApproved BookingStatus = "approved"
	BookingRejected BookingStatus = "rejected"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingApproved, BookingRejected:
		return true
	}
	return false
}

// Active reports whether the status counts toward the one-active-booking
// rule (terminal statuses do not).
func (s BookingStatus) Active() bool {
	return s == BookingPending || s == BookingApproved
}

type Booking struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"not null;index"`
	UserName    string         `json:"user_name" gorm:"not null;size:100"`
	Contact     string         `json:"contact" gorm:"not null;size:10"`
	Address     string         `json:"address" gorm:"size:500"`
	TimeSlot    string         `json:"time_slot" gorm:"not null;size:50"`
	Date        datatypes.Date `json:"date" gorm:"not null"`
	LicenseType string         `json:"license_type" gorm:"size:50"`

	// InstructorID stays nil until an instructor is requested or assigned;
	// once set it is never cleared by a status transition.
	InstructorID *uint         `json:"instructor_id" gorm:"index"`
	Status       BookingStatus `json:"status" gorm:"not null;size:20;default:pending;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}
