package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/way2pg/way2pg-api/internal/core/ports"
)

type notificationService struct {
	mailer ports.Mailer
	dedup  ports.NotificationDeduper
	log    zerolog.Logger
}

// NewNotificationService returns a NotificationService that mails the owner
// about booking activity. Delivery is best effort; nothing here feeds back
// into the request that produced the notification.
func NewNotificationService(mailer ports.Mailer, dedup ports.NotificationDeduper, log zerolog.Logger) ports.NotificationService {
	return &notificationService{mailer: mailer, dedup: dedup, log: log}
}

func (s *notificationService) Process(ctx context.Context, n ports.BookingNotification) error {
	isDup, err := s.dedup.IsDuplicate(ctx, n.BookingID, n.Kind)
	if err != nil {
		s.log.Warn().Err(err).Str("booking_id", n.BookingID).Msg("dedup check failed, sending anyway")
	} else if isDup {
		s.log.Debug().Str("booking_id", n.BookingID).Str("kind", n.Kind).Msg("duplicate notification skipped")
		return nil
	}

	subject, body := composeMail(n)

	// Mark before sending so a crashed retry cannot double-mail the owner.
	if markErr := s.dedup.Mark(ctx, n.BookingID, n.Kind); markErr != nil {
		s.log.Warn().Err(markErr).Str("booking_id", n.BookingID).Msg("failed to set dedup key")
	}

	if err := s.mailer.Send(n.OwnerEmail, subject, body); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}

	s.log.Info().
		Str("booking_id", n.BookingID).
		Str("kind", n.Kind).
		Msg("notification sent")
	return nil
}

func composeMail(n ports.BookingNotification) (subject, body string) {
	switch n.Kind {
	case ports.NotifyBookingCancelled:
		subject = fmt.Sprintf("Request withdrawn for %s", n.AccommodationName)
		body = fmt.Sprintf("%s has withdrawn their request for %s.", n.StudentName, n.AccommodationName)
	default:
		subject = fmt.Sprintf("New request for %s", n.AccommodationName)
		body = fmt.Sprintf("%s is interested in %s.\n\nMessage:\n%s", n.StudentName, n.AccommodationName, n.Message)
	}
	return subject, body
}
