package services

import (
	"errors"

	"github.com/driveeasy/booking-service/internal/repositories"
)

// Business errors surfaced to handlers. Storage failures are wrapped with
// context instead and map to an internal error at the boundary.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")

	ErrBookingNotFound    = errors.New("booking not found")
	ErrInstructorNotFound = errors.New("instructor not found")

	// ErrInstructorProfileNotFound signals a user with the instructor role
	// that has no instructors row to resolve against.
	ErrInstructorProfileNotFound = errors.New("instructor profile not found")

	ErrInvalidStatus      = errors.New("invalid status")
	ErrInstructorRequired = errors.New("instructor must be assigned when approving")

	// ErrDuplicateActiveBooking is shared with the repository layer, which
	// raises it from the storage constraint backing the invariant.
	ErrDuplicateActiveBooking = repositories.ErrDuplicateActiveBooking
)
