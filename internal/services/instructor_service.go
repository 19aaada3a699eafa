package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/driveeasy/booking-service/internal/models"
	"github.com/driveeasy/booking-service/internal/repositories"
)

type InstructorService interface {
	List(ctx context.Context) ([]*models.Instructor, error)
	Get(ctx context.Context, id uint) (*models.Instructor, error)
}

type instructorService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewInstructorService(repo repositories.Repository, logger *slog.Logger) InstructorService {
	return &instructorService{
		repo:   repo,
		logger: logger,
	}
}

func (s *instructorService) List(ctx context.Context) ([]*models.Instructor, error) {
	instructors, err := s.repo.Instructor().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list instructors: %w", err)
	}
	return instructors, nil
}

func (s *instructorService) Get(ctx context.Context, id uint) (*models.Instructor, error) {
	instructor, err := s.repo.Instructor().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstructorNotFound
		}
		return nil, fmt.Errorf("failed to get instructor: %w", err)
	}
	return instructor, nil
}
