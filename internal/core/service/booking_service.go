package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/way2pg/way2pg-api/internal/core/domain"
	"github.com/way2pg/way2pg-api/internal/core/ports"
)

// BookingService implements the student-facing booking lifecycle.
type BookingService struct {
	bookings       ports.BookingRepository
	accommodations ports.AccommodationRepository
	users          ports.UserRepository
	notifier       ports.Notifier
	logger         zerolog.Logger
}

func NewBookingService(bookings ports.BookingRepository, accommodations ports.AccommodationRepository, users ports.UserRepository, notifier ports.Notifier, logger zerolog.Logger) *BookingService {
	return &BookingService{
		bookings:       bookings,
		accommodations: accommodations,
		users:          users,
		notifier:       notifier,
		logger:         logger,
	}
}

// Create starts a pending request against an existing accommodation.
//
// The duplicate guard is a read-then-write check: concurrent submissions from
// the same student can both pass it and leave two pending bookings. That race
// is accepted; there is no unique index backing the invariant.
func (s *BookingService) Create(ctx context.Context, input ports.CreateBookingInput) (*ports.BookingView, error) {
	accommodation, err := s.accommodations.FindByID(ctx, input.AccommodationID)
	if err != nil {
		return nil, err
	}

	_, err = s.bookings.FindPending(ctx, input.StudentID, input.AccommodationID)
	switch {
	case err == nil:
		return nil, domain.ErrDuplicateRequest
	case !errors.Is(err, domain.ErrBookingNotFound):
		return nil, err
	}

	message := input.Message
	if message == "" {
		message = domain.DefaultBookingMessage
	}

	booking, err := s.bookings.Create(ctx, &domain.Booking{
		StudentID:       input.StudentID,
		AccommodationID: input.AccommodationID,
		Status:          domain.BookingPending,
		Message:         message,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("accommodation_id", input.AccommodationID).Msg("failed to create booking")
		return nil, err
	}

	s.logger.Info().
		Str("booking_id", booking.ID).
		Str("student_id", booking.StudentID).
		Str("accommodation_id", booking.AccommodationID).
		Msg("booking created")

	s.notifyOwner(ctx, ports.NotifyBookingCreated, booking, accommodation)

	view := bookingView(booking, accommodation)
	return &view, nil
}

// Cancel transitions pending → cancelled for the student's own booking.
func (s *BookingService) Cancel(ctx context.Context, studentID, bookingID string) (*ports.BookingView, error) {
	booking, err := s.bookings.FindByIDAndStudent(ctx, bookingID, studentID)
	if err != nil {
		return nil, err
	}

	if booking.Status == domain.BookingCancelled {
		// Double-cancel is surfaced, not absorbed: the caller learns their
		// request was a no-op.
		return nil, domain.ErrAlreadyCancelled
	}
	if !booking.Status.CanTransitionTo(domain.BookingCancelled) {
		return nil, domain.ErrAlreadyCancelled
	}

	if err := s.bookings.UpdateStatus(ctx, booking.ID, domain.BookingCancelled); err != nil {
		return nil, err
	}
	booking.Status = domain.BookingCancelled

	s.logger.Info().Str("booking_id", booking.ID).Str("student_id", studentID).Msg("booking cancelled")

	accommodation, err := s.accommodations.FindByID(ctx, booking.AccommodationID)
	if err != nil {
		// The listing may have vanished since; the cancellation already stuck.
		accommodation = nil
	} else {
		s.notifyOwner(ctx, ports.NotifyBookingCancelled, booking, accommodation)
	}

	view := bookingView(booking, accommodation)
	return &view, nil
}

// List returns the student's bookings newest-first, each enriched with its
// accommodation snapshot.
func (s *BookingService) List(ctx context.Context, studentID string) ([]ports.BookingView, error) {
	bookings, err := s.bookings.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	views := make([]ports.BookingView, 0, len(bookings))
	for _, b := range bookings {
		accommodation, err := s.accommodations.FindByID(ctx, b.AccommodationID)
		if err != nil {
			if errors.Is(err, domain.ErrAccommodationNotFound) {
				views = append(views, bookingView(b, nil))
				continue
			}
			return nil, err
		}
		views = append(views, bookingView(b, accommodation))
	}
	return views, nil
}

func (s *BookingService) notifyOwner(ctx context.Context, kind string, b *domain.Booking, a *domain.Accommodation) {
	if s.notifier == nil {
		return
	}

	owner, err := s.users.FindByID(ctx, a.OwnerID)
	if err != nil || owner.Email == "" {
		return
	}
	student, err := s.users.FindByID(ctx, b.StudentID)
	studentName := ""
	if err == nil {
		studentName = student.Name
	}

	s.notifier.Enqueue(ports.BookingNotification{
		Kind:              kind,
		BookingID:         b.ID,
		AccommodationName: a.Name,
		StudentName:       studentName,
		OwnerEmail:        owner.Email,
		Message:           b.Message,
	})
}

func bookingView(b *domain.Booking, a *domain.Accommodation) ports.BookingView {
	view := ports.BookingView{
		ID:        b.ID,
		Status:    string(b.Status),
		Message:   b.Message,
		CreatedAt: b.CreatedAt,
	}
	if a != nil {
		view.Accommodation = ports.AccommodationSnapshot{
			ID:      a.ID,
			Name:    a.Name,
			Address: a.Address,
			Images:  a.Images,
		}
	}
	return view
}
