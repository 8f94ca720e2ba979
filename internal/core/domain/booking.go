package domain

import (
	"errors"
	"time"
)

// BookingStatus represents the lifecycle state of a student's interest request.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions.
// BookingConfirmed is declared in the status set but no operation transitions
// into it yet; it stays here as a target-only extension point until product
// decides on an owner-confirmation flow.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingPending: {BookingCancelled},
}

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrDuplicateRequest = errors.New("a pending request for this accommodation already exists")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
)

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// DefaultBookingMessage is stored when the student submits no message.
const DefaultBookingMessage = "I am interested in this accommodation. Please share the details."

// Booking links one student to one accommodation. At most one pending booking
// may exist per (student, accommodation) pair; the check is read-then-write at
// creation time, so concurrent duplicate submissions can race past it. That
// weak guarantee is accepted rather than enforced with a unique index.
type Booking struct {
	ID              string        `json:"id" bson:"_id,omitempty"`
	StudentID       string        `json:"student_id" bson:"student_id"`
	AccommodationID string        `json:"accommodation_id" bson:"accommodation_id"`
	Status          BookingStatus `json:"status" bson:"status"`
	Message         string        `json:"message" bson:"message"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" bson:"updated_at"`
}
