package validator

import (
	"github.com/driveeasy/booking-service/internal/models"
)

// RegisterRequest is the payload for POST /register.
type RegisterRequest struct {
	Name     string          `json:"name" validate:"required,trimmed_name"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=6"`
	Role     models.UserRole `json:"role" validate:"required,user_role"`
}

// LoginRequest is the payload for POST /login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// BookingCreateRequest is the payload for POST /bookings. StartDate is a
// date-only string; the booking service rejects dates before today.
type BookingCreateRequest struct {
	StudentName  string `json:"studentName" validate:"required,trimmed_name"`
	Phone        string `json:"phone" validate:"required,contact_number"`
	Address      string `json:"address" validate:"required"`
	StartDate    string `json:"startDate" validate:"required,datetime=2006-01-02"`
	TimeSlot     string `json:"timeSlot" validate:"required"`
	LicenseType  string `json:"licenseType"`
	InstructorID *uint  `json:"instructorId"`
}

// BookingUpdateRequest is the payload for PUT /admin/bookings/:id. Status
// membership is checked by the booking service so that an unknown value
// maps to the invalid-status business error, not a validation failure.
type BookingUpdateRequest struct {
	Status       models.BookingStatus `json:"status" validate:"required"`
	InstructorID *uint                `json:"instructor_id"`
}
