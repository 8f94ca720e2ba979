package ports

import (
	"context"

	"github.com/way2pg/way2pg-api/internal/core/domain"
)

// RegisterInput carries all data needed to open an account. CompanyName and
// BusinessRegistrationID are required only when Role is owner.
type RegisterInput struct {
	Name                   string
	Phone                  string
	Email                  string
	Password               string
	Role                   string
	CompanyName            string
	BusinessRegistrationID string
}

// AuthService implements signup, login and the password-reset flow.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies phone+password and returns a signed token with the user.
	Login(ctx context.Context, phone, password string) (string, *domain.User, error)
	// RequestPasswordReset issues a short-lived reset code and mails it. It
	// reports success even for unknown phones to avoid account enumeration.
	RequestPasswordReset(ctx context.Context, phone string) error
	ConfirmPasswordReset(ctx context.Context, phone, code, newPassword string) error
}

// ResetCodeStore keeps password-reset codes with a TTL.
type ResetCodeStore interface {
	Put(ctx context.Context, phone, code string) error
	Get(ctx context.Context, phone string) (string, error)
	Del(ctx context.Context, phone string) error
}
