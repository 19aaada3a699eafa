package models

import (
	"time"
)

type NotificationType string

const (
	NotificationBooking       NotificationType = "booking"
	NotificationBookingUpdate NotificationType = "booking_update"
)

type Notification struct {
	ID      uint             `json:"id" gorm:"primaryKey"`
	UserID  uint             `json:"user_id" gorm:"not null;index"`
	Message string           `json:"message" gorm:"not null;size:1000"`
	Type    NotificationType `json:"type" gorm:"not null;size:30"`
	IsRead  bool             `json:"is_read" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
