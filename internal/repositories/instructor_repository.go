package repositories

import (
	"context"

	"github.com/driveeasy/booking-service/internal/models"
)

type InstructorRepository interface {
	Create(ctx context.Context, instructor *models.Instructor) error
	GetByID(ctx context.Context, id uint) (*models.Instructor, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Instructor, error)

	// List returns all instructors ordered by name.
	List(ctx context.Context) ([]*models.Instructor, error)

	UpdateStatus(ctx context.Context, id uint, status models.InstructorStatus) error
}
