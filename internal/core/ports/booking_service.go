package ports

import (
	"context"
	"time"

	"github.com/way2pg/way2pg-api/internal/core/domain"
)

// AccommodationSnapshot is the listing summary embedded in booking responses.
type AccommodationSnapshot struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Address string         `json:"address"`
	Images  []domain.Image `json:"images"`
}

// BookingView is a booking enriched with its accommodation snapshot.
type BookingView struct {
	ID            string                `json:"id"`
	Status        string                `json:"status"`
	Message       string                `json:"message"`
	CreatedAt     time.Time             `json:"created_at"`
	Accommodation AccommodationSnapshot `json:"accommodation"`
}

// CreateBookingInput carries the parameters for a new interest request.
type CreateBookingInput struct {
	StudentID       string
	AccommodationID string
	Message         string
}

// BookingService defines the student-facing booking lifecycle.
type BookingService interface {
	// Create starts a pending request. It fails with
	// domain.ErrAccommodationNotFound when the listing is absent and
	// domain.ErrDuplicateRequest when the student already holds a pending
	// request for the same listing.
	Create(ctx context.Context, input CreateBookingInput) (*BookingView, error)
	// Cancel transitions pending → cancelled. A booking not owned by the
	// student fails exactly like a missing one.
	Cancel(ctx context.Context, studentID, bookingID string) (*BookingView, error)
	// List returns the student's bookings newest-first.
	List(ctx context.Context, studentID string) ([]BookingView, error)
}
