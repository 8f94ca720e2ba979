package ports

import (
	"context"

	"github.com/way2pg/way2pg-api/internal/core/domain"
)

// AdminService defines moderation operations available to the admin role.
type AdminService interface {
	ListUsers(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	// ApproveOwner flips the approval flag on an owner account. Non-owner
	// targets fail with domain.ErrUserNotFound.
	ApproveOwner(ctx context.Context, userID string) (*domain.User, error)
	// DeleteUser removes an account and everything hanging off it: an owner's
	// listings (with their images and bookings), a student's bookings.
	DeleteUser(ctx context.Context, userID string) error
}
