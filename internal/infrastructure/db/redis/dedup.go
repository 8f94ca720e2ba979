package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// NotificationDedup suppresses repeat booking notifications backed by Redis.
// Key format: notify:<booking_id>:<kind>
type NotificationDedup struct {
	client *redis.Client
}

// NewNotificationDedup creates a NotificationDedup wrapping the given Redis client.
func NewNotificationDedup(client *redis.Client) *NotificationDedup {
	return &NotificationDedup{client: client}
}

// IsDuplicate reports whether this notification was already delivered.
func (d *NotificationDedup) IsDuplicate(ctx context.Context, bookingID, kind string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(bookingID, kind)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this notification was delivered (expires after dedupTTL).
func (d *NotificationDedup) Mark(ctx context.Context, bookingID, kind string) error {
	return d.client.Set(ctx, d.key(bookingID, kind), "1", dedupTTL).Err()
}

func (d *NotificationDedup) key(bookingID, kind string) string {
	return fmt.Sprintf("notify:%s:%s", bookingID, kind)
}
