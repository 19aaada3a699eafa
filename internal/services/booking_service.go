package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/driveeasy/booking-service/internal/events"
	"github.com/driveeasy/booking-service/internal/models"
	"github.com/driveeasy/booking-service/internal/repositories"
	"github.com/driveeasy/booking-service/internal/validator"
)

const dateLayout = "2006-01-02"

// ===== SERVICE INTERFACE =====

type BookingService interface {
	// Create validates and inserts a pending booking for the user, emits
	// the submission notification and returns the booking id. A user may
	// hold at most one booking in a non-terminal status.
	Create(ctx context.Context, userID uint, req *validator.BookingCreateRequest) (uint, error)

	// UpdateStatus drives the admin transition pending -> approved/rejected
	// (or back to pending) with optional instructor assignment.
	UpdateStatus(ctx context.Context, bookingID uint, req *validator.BookingUpdateRequest) error

	ListByUser(ctx context.Context, userID uint) ([]*repositories.UserBookingRow, error)

	// ListForInstructor resolves the instructor profile for a user and
	// returns their approved lessons.
	ListForInstructor(ctx context.Context, userID uint) ([]*repositories.InstructorBookingRow, error)

	ListAll(ctx context.Context) ([]*repositories.AdminBookingRow, error)

	// ExportReport renders all bookings as an xlsx workbook.
	ExportReport(ctx context.Context) (*excelize.File, error)
}

// ===== SERVICE IMPLEMENTATION =====

type bookingService struct {
	repo      repositories.Repository
	notifier  NotificationService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewBookingService(
	repo repositories.Repository,
	notifier NotificationService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
) BookingService {
	return &bookingService{
		repo:      repo,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *bookingService) Create(ctx context.Context, userID uint, req *validator.BookingCreateRequest) (uint, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return 0, errs
	}

	date, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return 0, validator.ValidationErrors{{
			Field:   "startDate",
			Message: "Invalid date format",
			Rule:    "datetime",
		}}
	}
	if date.Before(todayStart()) {
		return 0, validator.ValidationErrors{{
			Field:   "startDate",
			Message: "Please select a valid future date",
			Rule:    "future_or_today",
		}}
	}

	// Friendly fast path; the partial unique index closes the race between
	// this check and the insert.
	active, err := s.repo.Booking().CountActiveByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to check active bookings: %w", err)
	}
	if active > 0 {
		return 0, ErrDuplicateActiveBooking
	}

	booking := &models.Booking{
		UserID:       userID,
		UserName:     strings.TrimSpace(req.StudentName),
		Contact:      req.Phone,
		Address:      strings.TrimSpace(req.Address),
		TimeSlot:     req.TimeSlot,
		Date:         datatypes.Date(date),
		LicenseType:  req.LicenseType,
		InstructorID: req.InstructorID,
		Status:       models.BookingPending,
	}

	if err := s.repo.Booking().Create(ctx, booking); err != nil {
		if errors.Is(err, ErrDuplicateActiveBooking) {
			return 0, ErrDuplicateActiveBooking
		}
		return 0, fmt.Errorf("failed to create booking: %w", err)
	}

	message := fmt.Sprintf(
		"Your booking for %s (%s) has been submitted and is pending admin approval.",
		req.StartDate, req.TimeSlot,
	)
	if req.InstructorID != nil {
		if instructor, err := s.repo.Instructor().GetByID(ctx, *req.InstructorID); err == nil {
			message += fmt.Sprintf(" Requested instructor: %s.", instructor.Name)
		}
	} else {
		message += " An instructor will be assigned after approval."
	}

	if err := s.notifier.Notify(ctx, userID, message, models.NotificationBooking); err != nil {
		// The booking itself succeeded; a lost notification is logged, not
		// surfaced as a failed booking.
		s.logger.Error("failed to notify booking submission", "booking_id", booking.ID, "error", err)
	}

	if err := s.publisher.Publish(ctx, events.TypeBookingCreated, events.BookingCreatedEvent{
		BookingID:    booking.ID,
		UserID:       userID,
		InstructorID: req.InstructorID,
		Date:         req.StartDate,
		TimeSlot:     req.TimeSlot,
	}); err != nil {
		s.logger.Error("failed to publish booking.created", "booking_id", booking.ID, "error", err)
	}

	s.logger.Info("booking created", "booking_id", booking.ID, "user_id", userID)
	return booking.ID, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, bookingID uint, req *validator.BookingUpdateRequest) error {
	booking, err := s.repo.Booking().GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to get booking: %w", err)
	}

	if !req.Status.Valid() {
		return ErrInvalidStatus
	}

	// Approval requires an instructor, either supplied now or attached
	// earlier on the booking itself.
	if req.Status == models.BookingApproved && req.InstructorID == nil && booking.InstructorID == nil {
		return ErrInstructorRequired
	}

	// A supplied instructor wins; the existing assignment is retained
	// otherwise and never cleared by a transition.
	instructorID := booking.InstructorID
	if req.InstructorID != nil {
		instructorID = req.InstructorID
	}

	if err := s.repo.Booking().UpdateStatus(ctx, bookingID, req.Status, instructorID); err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	// Any instructor supplied with a transition is marked busy, not only on
	// approval. This mirrors the long-standing behavior admins rely on.
	instructorName := "Instructor"
	if req.InstructorID != nil {
		if instructor, err := s.repo.Instructor().GetByID(ctx, *req.InstructorID); err == nil {
			instructorName = instructor.Name
			if err := s.repo.Instructor().UpdateStatus(ctx, instructor.ID, models.InstructorBusy); err != nil {
				s.logger.Error("failed to mark instructor busy", "instructor_id", instructor.ID, "error", err)
			}
		}
	}

	bookingDate := time.Time(booking.Date).Format(dateLayout)
	switch req.Status {
	case models.BookingApproved:
		message := fmt.Sprintf(
			"Great news! Your booking for %s (%s) has been APPROVED!\n\nInstructor: %s\nDate: %s\nTime: %s\n\nPlease arrive 10 minutes early. Happy learning!",
			bookingDate, booking.TimeSlot, instructorName, bookingDate, booking.TimeSlot,
		)
		if err := s.notifier.Notify(ctx, booking.UserID, message, models.NotificationBookingUpdate); err != nil {
			s.logger.Error("failed to notify approval", "booking_id", bookingID, "error", err)
		}
	case models.BookingRejected:
		message := fmt.Sprintf(
			"Sorry, your booking for %s (%s) could not be approved. Please try booking a different time slot or contact us for assistance.",
			bookingDate, booking.TimeSlot,
		)
		if err := s.notifier.Notify(ctx, booking.UserID, message, models.NotificationBookingUpdate); err != nil {
			s.logger.Error("failed to notify rejection", "booking_id", bookingID, "error", err)
		}
	case models.BookingPending:
		// Setting a booking back to pending produces no user notification.
	}

	if err := s.publisher.Publish(ctx, events.TypeBookingStatusChanged, events.BookingStatusChangedEvent{
		BookingID:    bookingID,
		UserID:       booking.UserID,
		Status:       string(req.Status),
		InstructorID: instructorID,
	}); err != nil {
		s.logger.Error("failed to publish booking.status_changed", "booking_id", bookingID, "error", err)
	}

	s.logger.Info("booking status updated", "booking_id", bookingID, "status", req.Status)
	return nil
}

func (s *bookingService) ListByUser(ctx context.Context, userID uint) ([]*repositories.UserBookingRow, error) {
	rows, err := s.repo.Booking().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return rows, nil
}

func (s *bookingService) ListForInstructor(ctx context.Context, userID uint) ([]*repositories.InstructorBookingRow, error) {
	instructor, err := s.repo.Instructor().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstructorProfileNotFound
		}
		return nil, fmt.Errorf("failed to resolve instructor profile: %w", err)
	}

	rows, err := s.repo.Booking().ListApprovedByInstructor(ctx, instructor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list instructor bookings: %w", err)
	}
	return rows, nil
}

func (s *bookingService) ListAll(ctx context.Context) ([]*repositories.AdminBookingRow, error) {
	rows, err := s.repo.Booking().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return rows, nil
}

func (s *bookingService) ExportReport(ctx context.Context) (*excelize.File, error) {
	rows, err := s.repo.Booking().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for export: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Bookings"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to prepare workbook: %w", err)
	}

	header := []interface{}{"ID", "Student", "Email", "Contact", "Date", "Time Slot", "License Type", "Instructor", "Status", "Created At"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write report header: %w", err)
	}

	for i, row := range rows {
		instructorName := ""
		if row.InstructorName != nil {
			instructorName = *row.InstructorName
		}
		record := []interface{}{
			row.ID,
			row.UserName,
			row.UserEmail,
			row.Contact,
			time.Time(row.Date).Format(dateLayout),
			row.TimeSlot,
			row.LicenseType,
			instructorName,
			string(row.Status),
			row.CreatedAt.Format(time.RFC3339),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &record); err != nil {
			return nil, fmt.Errorf("failed to write report row: %w", err)
		}
	}

	return f, nil
}

func todayStart() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
