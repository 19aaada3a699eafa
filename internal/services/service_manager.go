package services

import (
	"context"
	"log/slog"

	"github.com/driveeasy/booking-service/internal/events"
	"github.com/driveeasy/booking-service/internal/repositories"
	"github.com/driveeasy/booking-service/internal/validator"
)

// ServiceManager bundles all domain services behind one constructor.
type ServiceManager interface {
	Auth() AuthService
	Booking() BookingService
	Notification() NotificationService
	Instructor() InstructorService
	Stats() StatsService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

type defaultServiceManager struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger

	auth         AuthService
	booking      BookingService
	notification NotificationService
	instructor   InstructorService
	stats        StatsService
}

func NewDefaultServiceManager(
	repo repositories.Repository,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
	bcryptCost int,
) ServiceManager {
	notification := NewNotificationService(repo, logger)

	return &defaultServiceManager{
		repo:         repo,
		publisher:    publisher,
		logger:       logger,
		auth:         NewAuthService(repo, logger, v, bcryptCost),
		booking:      NewBookingService(repo, notification, publisher, logger, v),
		notification: notification,
		instructor:   NewInstructorService(repo, logger),
		stats:        NewStatsService(repo, logger),
	}
}

func (m *defaultServiceManager) Auth() AuthService                 { return m.auth }
func (m *defaultServiceManager) Booking() BookingService           { return m.booking }
func (m *defaultServiceManager) Notification() NotificationService { return m.notification }
func (m *defaultServiceManager) Instructor() InstructorService     { return m.instructor }
func (m *defaultServiceManager) Stats() StatsService               { return m.stats }

func (m *defaultServiceManager) Initialize(ctx context.Context) error {
	return m.repo.Ping(ctx)
}

func (m *defaultServiceManager) Shutdown(ctx context.Context) error {
	return m.publisher.Close()
}
