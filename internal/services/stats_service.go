package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/driveeasy/booking-service/internal/repositories"
)

type StatsService interface {
	Overview(ctx context.Context) (*repositories.Stats, error)
}

type statsService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewStatsService(repo repositories.Repository, logger *slog.Logger) StatsService {
	return &statsService{
		repo:   repo,
		logger: logger,
	}
}

func (s *statsService) Overview(ctx context.Context) (*repositories.Stats, error) {
	stats, err := s.repo.Stats().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return stats, nil
}
