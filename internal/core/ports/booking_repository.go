package ports

import (
	"context"

	"github.com/way2pg/way2pg-api/internal/core/domain"
)

// BookingRepository defines persistence operations for booking requests.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	// FindByIDAndStudent retrieves a booking scoped to its owning student, so a
	// foreign booking is indistinguishable from a missing one.
	FindByIDAndStudent(ctx context.Context, id, studentID string) (*domain.Booking, error)
	// FindPending returns the pending booking for (student, accommodation),
	// or domain.ErrBookingNotFound when none exists.
	FindPending(ctx context.Context, studentID, accommodationID string) (*domain.Booking, error)
	// ListByStudent returns the student's bookings ordered newest-first.
	ListByStudent(ctx context.Context, studentID string) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
	DeleteByAccommodation(ctx context.Context, accommodationID string) error
	DeleteByStudent(ctx context.Context, studentID string) error
}
