package domain

import (
	"errors"
	"time"
)

const (
	RoleStudent = "student"
	RoleOwner   = "owner"
	RoleAdmin   = "admin"
)

// ValidRole reports whether role belongs to the fixed role set.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleOwner || role == RoleAdmin
}

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrResetCodeInvalid   = errors.New("invalid or expired reset code")
)

// OwnerProfile holds the owner-only part of a user record. Its presence is what
// makes a user the owner variant; students and admins never carry one, so the
// owner-approval precondition cannot be confused with their implicit approval.
type OwnerProfile struct {
	CompanyName            string `json:"company_name"`
	BusinessRegistrationID string `json:"business_registration_id"`
	// Approved starts false and flips only by admin action. Listings owned by
	// an unapproved owner stay hidden from public browsing.
	Approved bool `json:"approved"`
}

// User models an account in the marketplace. Phone is the login identity,
// normalised to the +91 prefix before storage.
type User struct {
	ID            string        `json:"id"`
	Phone         string        `json:"phone"`
	Email         string        `json:"email,omitempty"`
	Name          string        `json:"name"`
	PasswordHash  string        `json:"-"`
	Role          string        `json:"role"`
	Owner         *OwnerProfile `json:"owner,omitempty"`
	PhoneVerified bool          `json:"phone_verified"`
	EmailVerified bool          `json:"email_verified"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// IsApproved reports whether the account operates with full privileges.
// Students and admins are approved by construction; owners require the admin
// approval flag on their profile.
func (u *User) IsApproved() bool {
	if u.Role != RoleOwner {
		return true
	}
	return u.Owner != nil && u.Owner.Approved
}
