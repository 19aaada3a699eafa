package services

import (
	"context"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/driveeasy/booking-service/internal/models"
	"github.com/driveeasy/booking-service/internal/repositories"
)

// fakeRepository is an in-memory Repository used by the service tests. It
// mirrors the storage-layer guarantees the services rely on, including the
// partial unique index on active bookings.
type fakeRepository struct {
	users         []*models.User
	instructors   []*models.Instructor
	bookings      []*models.Booking
	notifications []*models.Notification

	nextUserID         uint
	nextInstructorID   uint
	nextBookingID      uint
	nextNotificationID uint

	// bookingCreateErr forces the next booking insert to fail, simulating a
	// concurrent insert hitting the unique index.
	bookingCreateErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{}
}

func (f *fakeRepository) User() repositories.UserRepository { return &fakeUserRepo{f} }

func (f *fakeRepository) Instructor() repositories.InstructorRepository {
	return &fakeInstructorRepo{f}
}

func (f *fakeRepository) Booking() repositories.BookingRepository { return &fakeBookingRepo{f} }

func (f *fakeRepository) Notification() repositories.NotificationRepository {
	return &fakeNotificationRepo{f}
}

func (f *fakeRepository) Stats() repositories.StatsRepository { return &fakeStatsRepo{f} }

func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}

func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

// ===== USERS =====

type fakeUserRepo struct{ f *fakeRepository }

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range r.f.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	r.f.nextUserID++
	user.ID = r.f.nextUserID
	stored := *user
	r.f.users = append(r.f.users, &stored)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	for _, u := range r.f.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(r.f.users))
	for i := len(r.f.users) - 1; i >= 0; i-- {
		copied := *r.f.users[i]
		out = append(out, &copied)
	}
	return out, nil
}

// ===== INSTRUCTORS =====

type fakeInstructorRepo struct{ f *fakeRepository }

func (r *fakeInstructorRepo) Create(_ context.Context, instructor *models.Instructor) error {
	r.f.nextInstructorID++
	instructor.ID = r.f.nextInstructorID
	stored := *instructor
	r.f.instructors = append(r.f.instructors, &stored)
	return nil
}

func (r *fakeInstructorRepo) GetByID(_ context.Context, id uint) (*models.Instructor, error) {
	for _, ins := range r.f.instructors {
		if ins.ID == id {
			copied := *ins
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeInstructorRepo) GetByUserID(_ context.Context, userID uint) (*models.Instructor, error) {
	for _, ins := range r.f.instructors {
		if ins.UserID == userID {
			copied := *ins
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeInstructorRepo) List(_ context.Context) ([]*models.Instructor, error) {
	out := make([]*models.Instructor, len(r.f.instructors))
	for i, ins := range r.f.instructors {
		copied := *ins
		out[i] = &copied
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (r *fakeInstructorRepo) UpdateStatus(_ context.Context, id uint, status models.InstructorStatus) error {
	for _, ins := range r.f.instructors {
		if ins.ID == id {
			ins.Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ===== BOOKINGS =====

type fakeBookingRepo struct{ f *fakeRepository }

func (r *fakeBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	if r.f.bookingCreateErr != nil {
		err := r.f.bookingCreateErr
		r.f.bookingCreateErr = nil
		return err
	}
	for _, b := range r.f.bookings {
		if b.UserID == booking.UserID && b.Status.Active() {
			return repositories.ErrDuplicateActiveBooking
		}
	}
	r.f.nextBookingID++
	booking.ID = r.f.nextBookingID
	stored := *booking
	r.f.bookings = append(r.f.bookings, &stored)
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id uint) (*models.Booking, error) {
	for _, b := range r.f.bookings {
		if b.ID == id {
			copied := *b
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBookingRepo) CountActiveByUser(_ context.Context, userID uint) (int64, error) {
	var count int64
	for _, b := range r.f.bookings {
		if b.UserID == userID && b.Status.Active() {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id uint, status models.BookingStatus, instructorID *uint) error {
	for _, b := range r.f.bookings {
		if b.ID == id {
			b.Status = status
			b.InstructorID = instructorID
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeBookingRepo) ListByUser(_ context.Context, userID uint) ([]*repositories.UserBookingRow, error) {
	var out []*repositories.UserBookingRow
	for i := len(r.f.bookings) - 1; i >= 0; i-- {
		b := r.f.bookings[i]
		if b.UserID != userID {
			continue
		}
		row := &repositories.UserBookingRow{Booking: *b}
		if b.InstructorID != nil {
			for _, ins := range r.f.instructors {
				if ins.ID == *b.InstructorID {
					name, email, license := ins.Name, ins.Email, ins.LicenseID
					row.InstructorName = &name
					row.InstructorEmail = &email
					row.InstructorLicense = &license
				}
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeBookingRepo) ListAll(_ context.Context) ([]*repositories.AdminBookingRow, error) {
	var pending, rest []*repositories.AdminBookingRow
	for _, b := range r.f.bookings {
		row := &repositories.AdminBookingRow{Booking: *b}
		for _, u := range r.f.users {
			if u.ID == b.UserID {
				row.UserEmail = u.Email
			}
		}
		if b.InstructorID != nil {
			for _, ins := range r.f.instructors {
				if ins.ID == *b.InstructorID {
					name := ins.Name
					row.InstructorName = &name
				}
			}
		}
		if b.Status == models.BookingPending {
			pending = append(pending, row)
		} else {
			rest = append(rest, row)
		}
	}
	return append(pending, rest...), nil
}

func (r *fakeBookingRepo) ListApprovedByInstructor(_ context.Context, instructorID uint) ([]*repositories.InstructorBookingRow, error) {
	var out []*repositories.InstructorBookingRow
	for _, b := range r.f.bookings {
		if b.Status != models.BookingApproved || b.InstructorID == nil || *b.InstructorID != instructorID {
			continue
		}
		row := &repositories.InstructorBookingRow{Booking: *b}
		for _, u := range r.f.users {
			if u.ID == b.UserID {
				row.UserEmail = u.Email
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// ===== NOTIFICATIONS =====

type fakeNotificationRepo struct{ f *fakeRepository }

func (r *fakeNotificationRepo) Create(_ context.Context, notification *models.Notification) error {
	r.f.nextNotificationID++
	notification.ID = r.f.nextNotificationID
	stored := *notification
	r.f.notifications = append(r.f.notifications, &stored)
	return nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID uint, limit int) ([]*models.Notification, error) {
	var out []*models.Notification
	for i := len(r.f.notifications) - 1; i >= 0 && len(out) < limit; i-- {
		if r.f.notifications[i].UserID == userID {
			copied := *r.f.notifications[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id, userID uint) error {
	for _, n := range r.f.notifications {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID uint) error {
	for _, n := range r.f.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

// ===== STATS =====

type fakeStatsRepo struct{ f *fakeRepository }

func (r *fakeStatsRepo) Get(_ context.Context) (*repositories.Stats, error) {
	stats := &repositories.Stats{}
	for _, u := range r.f.users {
		if u.Role == models.RoleUser {
			stats.ActiveLearners++
		}
	}
	for _, b := range r.f.bookings {
		stats.ClassesBooked++
		switch b.Status {
		case models.BookingPending:
			stats.PendingBookings++
		case models.BookingApproved:
			stats.ApprovedBookings++
		}
	}
	return stats, nil
}
