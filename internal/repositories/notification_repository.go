package repositories

import (
	"context"

	"github.com/driveeasy/booking-service/internal/models"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error

	// ListByUser returns the newest notifications for a user, capped at limit.
	ListByUser(ctx context.Context, userID uint, limit int) ([]*models.Notification, error)

	// MarkRead flips is_read for a notification owned by userID. A miss
	// (wrong owner or missing row) is a no-op, keeping the operation
	// idempotent.
	MarkRead(ctx context.Context, id, userID uint) error

	// MarkAllRead flips every unread notification for the user.
	MarkAllRead(ctx context.Context, userID uint) error
}
