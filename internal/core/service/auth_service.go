package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/way2pg/way2pg-api/internal/core/domain"
	"github.com/way2pg/way2pg-api/internal/core/ports"
)

const defaultTokenTTL = time.Hour

// AuthService implements signup, login and the password-reset flow.
type AuthService struct {
	users      ports.UserRepository
	resetCodes ports.ResetCodeStore
	mailer     ports.Mailer
	jwtSecret  string
	tokenTTL   time.Duration
	logger     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, resetCodes ports.ResetCodeStore, mailer ports.Mailer, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		users:      users,
		resetCodes: resetCodes,
		mailer:     mailer,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		logger:     logger,
	}
}

// NormalizePhone strips separators and pins the number to the +91 prefix.
// "09876543210", "9876543210" and "+919876543210" all normalise to the same key.
//
// The country code and trunk zero are stripped only when the digit count says
// they are actually present: a bare 10-digit mobile may itself start with 91
// or contain a 0, and must pass through untouched.
func NormalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	switch {
	case len(d) == 12 && strings.HasPrefix(d, "91"):
		d = d[2:]
	case len(d) == 11 && strings.HasPrefix(d, "0"):
		d = d[1:]
	}
	return "+91" + d
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Phone == "" || input.Password == "" || !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidCredentials
	}
	if input.Role == domain.RoleAdmin {
		// Admin accounts are seeded out of band, never self-registered.
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Phone:        NormalizePhone(input.Phone),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hash),
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if input.Role == domain.RoleOwner {
		if input.CompanyName == "" || input.BusinessRegistrationID == "" {
			return nil, domain.ErrInvalidCredentials
		}
		// Owners start unapproved; an admin must flip the flag before their
		// listings surface publicly.
		user.Owner = &domain.OwnerProfile{
			CompanyName:            input.CompanyName,
			BusinessRegistrationID: input.BusinessRegistrationID,
			Approved:               false,
		}
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("phone", created.Phone).Str("role", created.Role).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, phone, password string) (string, *domain.User, error) {
	if phone == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByPhone(ctx, NormalizePhone(phone))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// generateToken mints the short-lived credential asserting identity and role.
// Role is embedded so that authorization needs no store round trip; the auth
// middleware reconciles the resulting staleness against the live record.
func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) RequestPasswordReset(ctx context.Context, phone string) error {
	user, err := s.users.FindByPhone(ctx, NormalizePhone(phone))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Report success for unknown phones as well; a distinguishable
			// response would allow account enumeration.
			return nil
		}
		return err
	}
	if user.Email == "" {
		s.logger.Warn().Str("phone", user.Phone).Msg("password reset requested for account without email")
		return nil
	}

	code := uuid.NewString()
	if err := s.resetCodes.Put(ctx, user.Phone, code); err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}

	body := fmt.Sprintf("Your Way2PG password reset code is:\n\n%s\n\nIt expires in 10 minutes.", code)
	if err := s.mailer.Send(user.Email, "Way2PG password reset", body); err != nil {
		s.logger.Error().Err(err).Str("phone", user.Phone).Msg("failed to send reset mail")
		return err
	}

	s.logger.Info().Str("phone", user.Phone).Msg("password reset code issued")
	return nil
}

func (s *AuthService) ConfirmPasswordReset(ctx context.Context, phone, code, newPassword string) error {
	if code == "" || newPassword == "" {
		return domain.ErrResetCodeInvalid
	}

	normalized := NormalizePhone(phone)
	cached, err := s.resetCodes.Get(ctx, normalized)
	if err != nil || cached != code {
		return domain.ErrResetCodeInvalid
	}

	user, err := s.users.FindByPhone(ctx, normalized)
	if err != nil {
		return domain.ErrResetCodeInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	_ = s.resetCodes.Del(ctx, normalized)
	s.logger.Info().Str("phone", normalized).Msg("password reset completed")
	return nil
}
