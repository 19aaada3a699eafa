package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/driveeasy/booking-service/internal/models"
	"github.com/driveeasy/booking-service/internal/repositories"
)

type bookingPostgreSQL struct {
	db *gorm.DB
}

func NewBookingPostgreSQL(db *gorm.DB) repositories.BookingRepository {
	return &bookingPostgreSQL{db: db}
}

func (r *bookingPostgreSQL) Create(ctx context.Context, booking *models.Booking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		// The partial unique index on (user_id) over active statuses rejects
		// a second active booking; surface it as the business error.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repositories.ErrDuplicateActiveBooking
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *bookingPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingPostgreSQL) CountActiveByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("user_id = ? AND status IN ?", userID, []models.BookingStatus{models.BookingPending, models.BookingApproved}).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active bookings: %w", err)
	}
	return count, nil
}

func (r *bookingPostgreSQL) UpdateStatus(ctx context.Context, id uint, status models.BookingStatus, instructorID *uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        status,
			"instructor_id": instructorID,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	return nil
}

func (r *bookingPostgreSQL) ListByUser(ctx context.Context, userID uint) ([]*repositories.UserBookingRow, error) {
	var rows []*repositories.UserBookingRow
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("bookings.*, i.name AS instructor_name, i.email AS instructor_email, i.license_id AS instructor_license").
		Joins("LEFT JOIN instructors i ON i.id = bookings.instructor_id").
		Where("bookings.user_id = ?", userID).
		Order("bookings.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user bookings: %w", err)
	}
	return rows, nil
}

func (r *bookingPostgreSQL) ListAll(ctx context.Context) ([]*repositories.AdminBookingRow, error) {
	var rows []*repositories.AdminBookingRow
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("bookings.*, u.email AS user_email, i.name AS instructor_name").
		Joins("JOIN users u ON u.id = bookings.user_id").
		Joins("LEFT JOIN instructors i ON i.id = bookings.instructor_id").
		Order(`CASE bookings.status
			WHEN 'pending' THEN 1
			WHEN 'approved' THEN 2
			WHEN 'rejected' THEN 3
		END, bookings.created_at DESC`).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return rows, nil
}

func (r *bookingPostgreSQL) ListApprovedByInstructor(ctx context.Context, instructorID uint) ([]*repositories.InstructorBookingRow, error) {
	var rows []*repositories.InstructorBookingRow
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("bookings.*, u.email AS user_email").
		Joins("JOIN users u ON u.id = bookings.user_id").
		Where("bookings.instructor_id = ? AND bookings.status = ?", instructorID, models.BookingApproved).
		Order("bookings.date ASC, bookings.time_slot ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list instructor bookings: %w", err)
	}
	return rows, nil
}
