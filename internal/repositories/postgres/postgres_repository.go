package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/driveeasy/booking-service/internal/models"
	"github.com/driveeasy/booking-service/internal/repositories"
)

// PostgreSQLRepository implements the aggregate Repository interface.
type PostgreSQLRepository struct {
	db          *gorm.DB
	redisClient *redis.Client

	user         repositories.UserRepository
	instructor   repositories.InstructorRepository
	booking      repositories.BookingRepository
	notification repositories.NotificationRepository
	stats        repositories.StatsRepository
}

// RepositoryConfig holds configuration for repository initialization.
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

// NewPostgreSQLRepository creates a repository bundle with all sub-repositories.
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	repo := &PostgreSQLRepository{
		db:          config.DB,
		redisClient: config.RedisClient,
	}

	repo.user = NewUserPostgreSQL(config.DB)
	repo.instructor = NewInstructorPostgreSQL(config.DB, config.RedisClient)
	repo.booking = NewBookingPostgreSQL(config.DB)
	repo.notification = NewNotificationPostgreSQL(config.DB)
	repo.stats = NewStatsPostgreSQL(config.DB, config.RedisClient)

	return repo
}

func (r *PostgreSQLRepository) User() repositories.UserRepository {
	return r.user
}

func (r *PostgreSQLRepository) Instructor() repositories.InstructorRepository {
	return r.instructor
}

func (r *PostgreSQLRepository) Booking() repositories.BookingRepository {
	return r.booking
}

func (r *PostgreSQLRepository) Notification() repositories.NotificationRepository {
	return r.notification
}

func (r *PostgreSQLRepository) Stats() repositories.StatsRepository {
	return r.stats
}

// WithTransaction runs fn against a repository bound to a single database
// transaction.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := NewPostgreSQLRepository(RepositoryConfig{
			DB:          tx,
			RedisClient: r.redisClient,
		})
		return fn(txRepo)
	})
}

func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}

// Manager implements repositories.RepositoryManager.
type Manager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

func NewRepositoryManager(config RepositoryConfig) *Manager {
	return &Manager{config: config}
}

// Initialize migrates the schema and installs the partial unique index that
// guarantees at most one active booking per user, then builds the
// repository bundle.
func (m *Manager) Initialize() error {
	db := m.config.DB

	if err := db.AutoMigrate(
		&models.User{},
		&models.Instructor{},
		&models.Booking{},
		&models.Notification{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// The check-then-insert in the booking service is not atomic; this index
	// converts the race into a unique-violation on insert.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_one_active_per_user
		 ON bookings (user_id) WHERE status IN ('pending', 'approved')`,
	).Error; err != nil {
		return fmt.Errorf("failed to create active-booking index: %w", err)
	}

	m.repo = NewPostgreSQLRepository(m.config)
	return nil
}

func (m *Manager) GetRepository() repositories.Repository {
	return m.repo
}

func (m *Manager) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.repo.Ping(ctx)
}

func (m *Manager) Shutdown(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}
	return m.repo.Close()
}
