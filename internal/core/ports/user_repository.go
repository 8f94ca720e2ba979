package ports

import (
	"context"

	"github.com/way2pg/way2pg-api/internal/core/domain"
)

// UserFilter narrows admin user listings.
type UserFilter struct {
	Role         string // optional: filter by role
	PendingOwner bool   // true = only owners still awaiting approval
}

// UserRepository defines persistence operations for user accounts.
// Phone uniqueness is enforced by the store (unique index).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	// SetOwnerApproval flips the approval flag on an owner profile.
	SetOwnerApproval(ctx context.Context, id string, approved bool) error
	UpdatePasswordHash(ctx context.Context, id string, hash string) error
	Delete(ctx context.Context, id string) error
}
