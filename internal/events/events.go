// Package events publishes booking lifecycle events for in-process consumers.
package events

import (
	"context"
	"time"
)

const (
	// Source identifies this service in event envelopes.
	Source = "booking-service"

	// Version of the event envelope schema.
	Version = "1.0"
)

// Event types emitted by the booking lifecycle engine.
const (
	TypeBookingCreated       = "booking.created"
	TypeBookingStatusChanged = "booking.status_changed"
)

// Event is the envelope wrapped around every published payload.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// BookingCreatedEvent is published when a user submits a booking.
type BookingCreatedEvent struct {
	BookingID    uint   `json:"booking_id"`
	UserID       uint   `json:"user_id"`
	InstructorID *uint  `json:"instructor_id,omitempty"`
	Date         string `json:"date"`
	TimeSlot     string `json:"time_slot"`
}

// BookingStatusChangedEvent is published on admin-driven transitions.
type BookingStatusChangedEvent struct {
	BookingID    uint   `json:"booking_id"`
	UserID       uint   `json:"user_id"`
	Status       string `json:"status"`
	InstructorID *uint  `json:"instructor_id,omitempty"`
}

// EventPublisher abstracts the transport carrying lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
	Close() error
}
