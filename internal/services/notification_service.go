package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/driveeasy/booking-service/internal/models"
	"github.com/driveeasy/booking-service/internal/repositories"
)

// notificationListLimit caps how many rows a single listing returns.
const notificationListLimit = 50

// ===== SERVICE INTERFACE =====

type NotificationService interface {
	// Notify appends an unread notification for the user.
	Notify(ctx context.Context, userID uint, message string, typ models.NotificationType) error

	// List returns the user's newest notifications.
	List(ctx context.Context, userID uint) ([]*models.Notification, error)

	// MarkRead flips is_read if the notification belongs to the user;
	// anything else is a silent no-op.
	MarkRead(ctx context.Context, id, userID uint) error

	// MarkAllRead flips every unread notification for the user. Idempotent.
	MarkAllRead(ctx context.Context, userID uint) error
}

// ===== SERVICE IMPLEMENTATION =====

type notificationService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewNotificationService(repo repositories.Repository, logger *slog.Logger) NotificationService {
	return &notificationService{
		repo:   repo,
		logger: logger,
	}
}

func (s *notificationService) Notify(ctx context.Context, userID uint, message string, typ models.NotificationType) error {
	notification := &models.Notification{
		UserID:  userID,
		Message: message,
		Type:    typ,
	}
	if err := s.repo.Notification().Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	s.logger.Debug("notification stored", "user_id", userID, "type", typ)
	return nil
}

func (s *notificationService) List(ctx context.Context, userID uint) ([]*models.Notification, error) {
	notifications, err := s.repo.Notification().ListByUser(ctx, userID, notificationListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID uint) error {
	if err := s.repo.Notification().MarkRead(ctx, id, userID); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uint) error {
	if err := s.repo.Notification().MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
