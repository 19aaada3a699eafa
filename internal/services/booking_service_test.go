package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/driveeasy/booking-service/internal/events"
	"github.com/driveeasy/booking-service/internal/models"
	"github.com/driveeasy/booking-service/internal/repositories"
	"github.com/driveeasy/booking-service/internal/validator"
)

func newTestBookingService(t *testing.T) (BookingService, *fakeRepository, *events.MockEventPublisher) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := newFakeRepository()
	publisher := events.NewMockEventPublisher(logger)
	notifier := NewNotificationService(repo, logger)
	svc := NewBookingService(repo, notifier, publisher, logger, validator.New())

	return svc, repo, publisher
}

func validBookingRequest() *validator.BookingCreateRequest {
	return &validator.BookingCreateRequest{
		StudentName: "Asha Kumar",
		Phone:       "9876543210",
		Address:     "12 Lake View Road",
		StartDate:   time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		TimeSlot:    "10:00 AM - 11:00 AM",
		LicenseType: "LMV",
	}
}

func seedInstructor(repo *fakeRepository, name string) *models.Instructor {
	instructor := &models.Instructor{
		UserID:    100,
		Name:      name,
		Email:     strings.ToLower(name) + "@driveeasy.test",
		LicenseID: "LIC0100",
		Status:    models.InstructorAvailable,
	}
	_ = repo.Instructor().Create(context.Background(), instructor)
	return instructor
}

func TestBookingServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending booking with notification and event", func(t *testing.T) {
		svc, repo, publisher := newTestBookingService(t)

		id, err := svc.Create(ctx, 1, validBookingRequest())
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if id == 0 {
			t.Fatal("expected a booking id")
		}

		booking, err := repo.Booking().GetByID(ctx, id)
		if err != nil {
			t.Fatalf("stored booking not found: %v", err)
		}
		if booking.Status != models.BookingPending {
			t.Errorf("expected pending status, got %s", booking.Status)
		}
		if booking.InstructorID != nil {
			t.Error("expected no instructor on a fresh booking")
		}

		notifications, _ := repo.Notification().ListByUser(ctx, 1, 10)
		if len(notifications) != 1 {
			t.Fatalf("expected 1 notification, got %d", len(notifications))
		}
		if !strings.Contains(notifications[0].Message, "An instructor will be assigned after approval.") {
			t.Errorf("unexpected notification message: %q", notifications[0].Message)
		}
		if notifications[0].Type != models.NotificationBooking {
			t.Errorf("expected booking notification type, got %s", notifications[0].Type)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.TypeBookingCreated {
			t.Errorf("expected one booking.created event, got %+v", published)
		}
	})

	t.Run("names the requested instructor in the notification", func(t *testing.T) {
		svc, repo, _ := newTestBookingService(t)
		instructor := seedInstructor(repo, "Ravi")

		req := validBookingRequest()
		req.InstructorID = &instructor.ID

		if _, err := svc.Create(ctx, 1, req); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		notifications, _ := repo.Notification().ListByUser(ctx, 1, 10)
		if len(notifications) != 1 {
			t.Fatalf("expected 1 notification, got %d", len(notifications))
		}
		if !strings.Contains(notifications[0].Message, "Requested instructor: Ravi.") {
			t.Errorf("unexpected notification message: %q", notifications[0].Message)
		}
	})

	t.Run("rejects a past date", func(t *testing.T) {
		svc, _, _ := newTestBookingService(t)

		req := validBookingRequest()
		req.StartDate = time.Now().AddDate(0, 0, -1).Format("2006-01-02")

		_, err := svc.Create(ctx, 1, req)
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("expected validation errors, got %v", err)
		}
		if verrs[0].Message != "Please select a valid future date" {
			t.Errorf("unexpected message: %q", verrs[0].Message)
		}
	})

	t.Run("rejects an invalid contact number", func(t *testing.T) {
		svc, _, _ := newTestBookingService(t)

		req := validBookingRequest()
		req.Phone = "12345"

		_, err := svc.Create(ctx, 1, req)
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("expected validation errors, got %v", err)
		}
	})

	t.Run("rejects a second active booking", func(t *testing.T) {
		svc, _, _ := newTestBookingService(t)

		if _, err := svc.Create(ctx, 1, validBookingRequest()); err != nil {
			t.Fatalf("first Create failed: %v", err)
		}
		_, err := svc.Create(ctx, 1, validBookingRequest())
		if !errors.Is(err, ErrDuplicateActiveBooking) {
			t.Errorf("expected ErrDuplicateActiveBooking, got %v", err)
		}
	})

	t.Run("allows a new booking after the previous one is rejected", func(t *testing.T) {
		svc, repo, _ := newTestBookingService(t)

		id, err := svc.Create(ctx, 1, validBookingRequest())
		if err != nil {
			t.Fatalf("first Create failed: %v", err)
		}
		if err := repo.Booking().UpdateStatus(ctx, id, models.BookingRejected, nil); err != nil {
			t.Fatalf("UpdateStatus failed: %v", err)
		}

		if _, err := svc.Create(ctx, 1, validBookingRequest()); err != nil {
			t.Errorf("expected Create to succeed after rejection, got %v", err)
		}
	})

	t.Run("maps a unique violation on insert to the duplicate error", func(t *testing.T) {
		// Simulates losing the race: the count check passes but a concurrent
		// insert already claimed the active slot.
		svc, repo, _ := newTestBookingService(t)
		repo.bookingCreateErr = repositories.ErrDuplicateActiveBooking

		_, err := svc.Create(ctx, 1, validBookingRequest())
		if !errors.Is(err, ErrDuplicateActiveBooking) {
			t.Errorf("expected ErrDuplicateActiveBooking, got %v", err)
		}
	})
}

func TestBookingServiceUpdateStatus(t *testing.T) {
	ctx := context.Background()

	seedBooking := func(repo *fakeRepository, userID uint, status models.BookingStatus, instructorID *uint) *models.Booking {
		booking := &models.Booking{
			UserID:       userID,
			UserName:     "Asha Kumar",
			Contact:      "9876543210",
			TimeSlot:     "10:00 AM - 11:00 AM",
			Date:         datatypes.Date(time.Now().AddDate(0, 0, 7)),
			Status:       status,
			InstructorID: instructorID,
		}
		_ = repo.Booking().Create(ctx, booking)
		return booking
	}

	t.Run("approves with a supplied instructor", func(t *testing.T) {
		svc, repo, publisher := newTestBookingService(t)
		instructor := seedInstructor(repo, "Ravi")
		booking := seedBooking(repo, 1, models.BookingPending, nil)

		err := svc.UpdateStatus(ctx, booking.ID, &validator.BookingUpdateRequest{
			Status:       models.BookingApproved,
			InstructorID: &instructor.ID,
		})
		if err != nil {
			t.Fatalf("UpdateStatus failed: %v", err)
		}

		updated, _ := repo.Booking().GetByID(ctx, booking.ID)
		if updated.Status != models.BookingApproved {
			t.Errorf("expected approved, got %s", updated.Status)
		}
		if updated.InstructorID == nil || *updated.InstructorID != instructor.ID {
			t.Error("expected instructor to be assigned")
		}

		assigned, _ := repo.Instructor().GetByID(ctx, instructor.ID)
		if assigned.Status != models.InstructorBusy {
			t.Errorf("expected instructor busy, got %s", assigned.Status)
		}

		notifications, _ := repo.Notification().ListByUser(ctx, 1, 10)
		if len(notifications) != 1 {
			t.Fatalf("expected 1 notification, got %d", len(notifications))
		}
		if !strings.Contains(notifications[0].Message, "APPROVED") ||
			!strings.Contains(notifications[0].Message, "Instructor: Ravi") {
			t.Errorf("unexpected approval message: %q", notifications[0].Message)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.TypeBookingStatusChanged {
			t.Errorf("expected one booking.status_changed event, got %+v", published)
		}
	})

	t.Run("approval without any instructor fails", func(t *testing.T) {
		svc, repo, _ := newTestBookingService(t)
		booking := seedBooking(repo, 1, models.BookingPending, nil)

		err := svc.UpdateStatus(ctx, booking.ID, &validator.BookingUpdateRequest{
			Status: models.BookingApproved,
		})
		if !errors.Is(err, ErrInstructorRequired) {
			t.Errorf("expected ErrInstructorRequired, got %v", err)
		}

		unchanged, _ := repo.Booking().GetByID(ctx, booking.ID)
		if unchanged.Status != models.BookingPending {
			t.Errorf("booking should stay pending, got %s", unchanged.Status)
		}
	})

	t.Run("approval keeps a previously attached instructor", func(t *testing.T) {
		svc, repo, _ := newTestBookingService(t)
		instructor := seedInstructor(repo, "Ravi")
		booking := seedBooking(repo, 1, models.BookingPending, &instructor.ID)

		err := svc.UpdateStatus(ctx, booking.ID, &validator.BookingUpdateRequest{
			Status: models.BookingApproved,
		})
		if err != nil {
			t.Fatalf("UpdateStatus failed: %v", err)
		}

		updated, _ := repo.Booking().GetByID(ctx, booking.ID)
		if updated.InstructorID == nil || *updated.InstructorID != instructor.ID {
			t.Error("expected existing instructor assignment to be retained")
		}

		// No instructor came in with the request, so availability is untouched.
		unchanged, _ := repo.Instructor().GetByID(ctx, instructor.ID)
		if unchanged.Status != models.InstructorAvailable {
			t.Errorf("expected instructor still available, got %s", unchanged.Status)
		}
	})

	t.Run("rejection retains the instructor and notifies the user", func(t *testing.T) {
		svc, repo, _ := newTestBookingService(t)
		instructor := seedInstructor(repo, "Ravi")
		booking := seedBooking(repo, 1, models.BookingApproved, &instructor.ID)

		err := svc.UpdateStatus(ctx, booking.ID, &validator.BookingUpdateRequest{
			Status: models.BookingRejected,
		})
		if err != nil {
			t.Fatalf("UpdateStatus failed: %v", err)
		}

		updated, _ := repo.Booking().GetByID(ctx, booking.ID)
		if updated.Status != models.BookingRejected {
			t.Errorf("expected rejected, got %s", updated.Status)
		}
		if updated.InstructorID == nil || *updated.InstructorID != instructor.ID {
			t.Error("rejection must not clear the instructor assignment")
		}

		notifications, _ := repo.Notification().ListByUser(ctx, 1, 10)
		if len(notifications) != 1 || !strings.Contains(notifications[0].Message, "could not be approved") {
			t.Errorf("unexpected rejection notification: %+v", notifications)
		}
	})

	t.Run("setting back to pending emits no notification", func(t *testing.T) {
		svc, repo, publisher := newTestBookingService(t)
		instructor := seedInstructor(repo, "Ravi")
		booking := seedBooking(repo, 1, models.BookingApproved, &instructor.ID)

		err := svc.UpdateStatus(ctx, booking.ID, &validator.BookingUpdateRequest{
			Status: models.BookingPending,
		})
		if err != nil {
			t.Fatalf("UpdateStatus failed: %v", err)
		}

		notifications, _ := repo.Notification().ListByUser(ctx, 1, 10)
		if len(notifications) != 0 {
			t.Errorf("expected no notifications, got %d", len(notifications))
		}
		if len(publisher.GetPublishedEvents()) != 1 {
			t.Error("status change should still publish an event")
		}
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, _, _ := newTestBookingService(t)

		err := svc.UpdateStatus(ctx, 999, &validator.BookingUpdateRequest{
			Status: models.BookingApproved,
		})
		if !errors.Is(err, ErrBookingNotFound) {
			t.Errorf("expected ErrBookingNotFound, got %v", err)
		}
	})

	t.Run("unknown status value", func(t *testing.T) {
		svc, repo, _ := newTestBookingService(t)
		booking := seedBooking(repo, 1, models.BookingPending, nil)

		err := svc.UpdateStatus(ctx, booking.ID, &validator.BookingUpdateRequest{
			Status: models.BookingStatus("cancelled"),
		})
		if !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("expected ErrInvalidStatus, got %v", err)
		}
	})
}

func TestBookingServiceListForInstructor(t *testing.T) {
	ctx := context.Background()

	t.Run("returns approved lessons for the instructor profile", func(t *testing.T) {
		svc, repo, _ := newTestBookingService(t)
		instructor := seedInstructor(repo, "Ravi")

		_ = repo.Booking().Create(ctx, &models.Booking{
			UserID:       1,
			UserName:     "Asha Kumar",
			Status:       models.BookingApproved,
			InstructorID: &instructor.ID,
			Date:         datatypes.Date(time.Now().AddDate(0, 0, 3)),
		})
		_ = repo.Booking().Create(ctx, &models.Booking{
			UserID:   2,
			UserName: "Vik Patel",
			Status:   models.BookingPending,
			Date:     datatypes.Date(time.Now().AddDate(0, 0, 4)),
		})

		rows, err := svc.ListForInstructor(ctx, instructor.UserID)
		if err != nil {
			t.Fatalf("ListForInstructor failed: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("expected 1 approved lesson, got %d", len(rows))
		}
		if rows[0].UserName != "Asha Kumar" {
			t.Errorf("unexpected student: %s", rows[0].UserName)
		}
	})

	t.Run("user without an instructor profile", func(t *testing.T) {
		svc, _, _ := newTestBookingService(t)

		_, err := svc.ListForInstructor(ctx, 42)
		if !errors.Is(err, ErrInstructorProfileNotFound) {
			t.Errorf("expected ErrInstructorProfileNotFound, got %v", err)
		}
	})
}

func TestBookingServiceExportReport(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestBookingService(t)

	if _, err := svc.Create(ctx, 1, validBookingRequest()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	f, err := svc.ExportReport(ctx)
	if err != nil {
		t.Fatalf("ExportReport failed: %v", err)
	}
	defer f.Close()

	header, err := f.GetCellValue("Bookings", "A1")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if header != "ID" {
		t.Errorf("expected header ID, got %q", header)
	}

	student, _ := f.GetCellValue("Bookings", "B2")
	if student != "Asha Kumar" {
		t.Errorf("expected student name in row 2, got %q", student)
	}
}
