package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/driveeasy/booking-service/internal/cache"
	"github.com/driveeasy/booking-service/internal/models"
	"github.com/driveeasy/booking-service/internal/repositories"
)

const statsCacheKey = "overview"

type statsPostgreSQL struct {
	db    *gorm.DB
	cache *cache.CacheHelper
}

func NewStatsPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.StatsRepository {
	return &statsPostgreSQL{
		db:    db,
		cache: cache.NewCacheHelper(redisClient, cache.StatsCacheConfig.Prefix),
	}
}

func (r *statsPostgreSQL) Get(ctx context.Context) (*repositories.Stats, error) {
	// Cache trouble is never fatal for a stats read; any miss or error falls
	// through to the database.
	var cached repositories.Stats
	if err := r.cache.Get(ctx, statsCacheKey, &cached); err == nil {
		return &cached, nil
	}

	stats := &repositories.Stats{}

	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.RoleUser).
		Count(&stats.ActiveLearners).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count learners: %w", err)
	}

	if err := r.db.WithContext(ctx).Model(&models.Booking{}).Count(&stats.ClassesBooked).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	err = r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("status = ?", models.BookingPending).
		Count(&stats.PendingBookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count pending bookings: %w", err)
	}

	err = r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("status = ?", models.BookingApproved).
		Count(&stats.ApprovedBookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count approved bookings: %w", err)
	}

	_ = r.cache.Set(ctx, statsCacheKey, stats, cache.StatsCacheConfig.TTL)

	return stats, nil
}
