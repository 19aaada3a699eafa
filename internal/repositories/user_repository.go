package repositories

import (
	"context"

	"github.com/driveeasy/booking-service/internal/models"
)

// UserRepository owns credential and profile rows.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List returns all users, newest first (admin listing).
	List(ctx context.Context) ([]*models.User, error)
}
