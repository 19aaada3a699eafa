package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/driveeasy/booking-service/internal/models"
	"github.com/driveeasy/booking-service/internal/repositories"
	"github.com/driveeasy/booking-service/internal/validator"
)

// ===== SERVICE INTERFACE =====

type AuthService interface {
	// Register creates a user (and, for the instructor role, the derived
	// instructor profile) and returns the new user id.
	Register(ctx context.Context, req *validator.RegisterRequest) (uint, error)

	// Login verifies credentials and returns the user for session binding.
	Login(ctx context.Context, req *validator.LoginRequest) (*models.User, error)

	// ListUsers returns all accounts, newest first (admin listing).
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// ===== SERVICE IMPLEMENTATION =====

type authService struct {
	repo       repositories.Repository
	logger     *slog.Logger
	validator  *validator.Validator
	bcryptCost int
}

func NewAuthService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, bcryptCost int) AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{
		repo:       repo,
		logger:     logger,
		validator:  v,
		bcryptCost: bcryptCost,
	}
}

func (s *authService) Register(ctx context.Context, req *validator.RegisterRequest) (uint, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return 0, errs
	}

	email := NormalizeEmail(req.Email)

	exists, err := s.repo.User().ExistsByEmail(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing email: %w", err)
	}
	if exists {
		return 0, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hash),
		Role:     req.Role,
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.User().Create(ctx, user); err != nil {
			// The unique index on email backstops the pre-check.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return err
		}

		if user.Role == models.RoleInstructor {
			instructor := &models.Instructor{
				UserID:     user.ID,
				Name:       user.Name,
				Email:      user.Email,
				LicenseID:  models.LicenseIDFor(user.ID),
				Experience: "New Instructor",
				Status:     models.InstructorAvailable,
			}
			if err := tx.Instructor().Create(ctx, instructor); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return 0, ErrEmailTaken
		}
		return 0, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user.ID, nil
}

func (s *authService) Login(ctx context.Context, req *validator.LoginRequest) (*models.User, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	user, err := s.repo.User().GetByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("user logged in", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.User().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// NormalizeEmail lowercases and trims an address; all storage and lookups
// go through this so the unique index sees one canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
