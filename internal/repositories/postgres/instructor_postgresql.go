package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/driveeasy/booking-service/internal/cache"
	"github.com/driveeasy/booking-service/internal/models"
	"github.com/driveeasy/booking-service/internal/repositories"
)

const instructorListCacheKey = "instructors"

type instructorPostgreSQL struct {
	db    *gorm.DB
	cache *cache.CacheHelper
}

func NewInstructorPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.InstructorRepository {
	return &instructorPostgreSQL{
		db:    db,
		cache: cache.NewCacheHelper(redisClient, cache.ListingCacheConfig.Prefix),
	}
}

func (r *instructorPostgreSQL) Create(ctx context.Context, instructor *models.Instructor) error {
	if err := r.db.WithContext(ctx).Create(instructor).Error; err != nil {
		return fmt.Errorf("failed to create instructor: %w", err)
	}
	_ = r.cache.Delete(ctx, instructorListCacheKey)
	return nil
}

func (r *instructorPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Instructor, error) {
	var instructor models.Instructor
	if err := r.db.WithContext(ctx).First(&instructor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get instructor: %w", err)
	}
	return &instructor, nil
}

func (r *instructorPostgreSQL) GetByUserID(ctx context.Context, userID uint) (*models.Instructor, error) {
	var instructor models.Instructor
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&instructor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get instructor by user: %w", err)
	}
	return &instructor, nil
}

// List serves the public directory; results are cached briefly and
// invalidated by any instructor write.
func (r *instructorPostgreSQL) List(ctx context.Context) ([]*models.Instructor, error) {
	var cached []*models.Instructor
	if err := r.cache.Get(ctx, instructorListCacheKey, &cached); err == nil {
		return cached, nil
	}

	var instructors []*models.Instructor
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&instructors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list instructors: %w", err)
	}

	_ = r.cache.Set(ctx, instructorListCacheKey, instructors, cache.ListingCacheConfig.TTL)

	return instructors, nil
}

func (r *instructorPostgreSQL) UpdateStatus(ctx context.Context, id uint, status models.InstructorStatus) error {
	err := r.db.WithContext(ctx).
		Model(&models.Instructor{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("failed to update instructor status: %w", err)
	}
	_ = r.cache.Delete(ctx, instructorListCacheKey)
	return nil
}
