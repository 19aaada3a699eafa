package repositories

import (
	"context"
	"errors"

	"github.com/driveeasy/booking-service/internal/models"
)

// ErrDuplicateActiveBooking is returned by Create when the storage-layer
// uniqueness guarantee rejects a second active booking for the same user.
var ErrDuplicateActiveBooking = errors.New("user already has an active booking")

// UserBookingRow is a booking joined with its assigned instructor,
// as returned to the booking owner.
type UserBookingRow struct {
	models.Booking
	InstructorName    *string `json:"instructor_name"`
	InstructorEmail   *string `json:"instructor_email"`
	InstructorLicense *string `json:"instructor_license"`
}

// AdminBookingRow is a booking joined with the owning user's email and the
// assigned instructor's name, as listed on the admin dashboard.
type AdminBookingRow struct {
	models.Booking
	UserEmail      string  `json:"user_email"`
	InstructorName *string `json:"instructor_name"`
}

// InstructorBookingRow is an approved booking joined with the student's
// name and email, as listed on the instructor's schedule.
type InstructorBookingRow struct {
	models.Booking
	UserEmail string `json:"user_email"`
}

type BookingRepository interface {
	// Create inserts a pending booking. The bookings table carries a partial
	// unique index on user_id over active statuses; a violation surfaces as
	// ErrDuplicateActiveBooking.
	Create(ctx context.Context, booking *models.Booking) error

	GetByID(ctx context.Context, id uint) (*models.Booking, error)

	// CountActiveByUser counts bookings with status pending or approved.
	CountActiveByUser(ctx context.Context, userID uint) (int64, error)

	// UpdateStatus sets status and instructor_id on a booking.
	UpdateStatus(ctx context.Context, id uint, status models.BookingStatus, instructorID *uint) error

	// ListByUser returns the user's bookings, newest first.
	ListByUser(ctx context.Context, userID uint) ([]*UserBookingRow, error)

	// ListAll returns every booking, pending first then by creation time.
	ListAll(ctx context.Context) ([]*AdminBookingRow, error)

	// ListApprovedByInstructor returns an instructor's approved lessons
	// ordered by date and time slot.
	ListApprovedByInstructor(ctx context.Context, instructorID uint) ([]*InstructorBookingRow, error)
}
