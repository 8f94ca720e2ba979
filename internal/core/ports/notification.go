package ports

import "context"

// Notification event kinds.
const (
	NotifyBookingCreated   = "booking_created"
	NotifyBookingCancelled = "booking_cancelled"
)

// BookingNotification is the unit of work handed to the notification pipeline
// when a booking changes state.
type BookingNotification struct {
	Kind              string
	BookingID         string
	AccommodationName string
	StudentName       string
	OwnerEmail        string
	Message           string
}

// NotificationService processes one queued booking notification.
type NotificationService interface {
	Process(ctx context.Context, n BookingNotification) error
}

// NotificationDeduper suppresses repeat deliveries of the same notification.
type NotificationDeduper interface {
	IsDuplicate(ctx context.Context, bookingID, kind string) (bool, error)
	Mark(ctx context.Context, bookingID, kind string) error
}

// Notifier enqueues a notification for asynchronous delivery. Implementations
// must never block request handling beyond a bounded channel send.
type Notifier interface {
	Enqueue(n BookingNotification)
}
