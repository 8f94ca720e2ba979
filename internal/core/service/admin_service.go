package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/way2pg/way2pg-api/internal/core/domain"
	"github.com/way2pg/way2pg-api/internal/core/ports"
)

// AdminService implements moderation: owner approval and user removal with
// full cascades.
type AdminService struct {
	users          ports.UserRepository
	accommodations ports.AccommodationRepository
	bookings       ports.BookingRepository
	media          ports.MediaStore
	logger         zerolog.Logger
}

func NewAdminService(users ports.UserRepository, accommodations ports.AccommodationRepository, bookings ports.BookingRepository, media ports.MediaStore, logger zerolog.Logger) *AdminService {
	return &AdminService{
		users:          users,
		accommodations: accommodations,
		bookings:       bookings,
		media:          media,
		logger:         logger,
	}
}

func (s *AdminService) ListUsers(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	return s.users.List(ctx, filter)
}

func (s *AdminService) ApproveOwner(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleOwner || user.Owner == nil {
		return nil, domain.ErrUserNotFound
	}

	if err := s.users.SetOwnerApproval(ctx, userID, true); err != nil {
		return nil, err
	}
	user.Owner.Approved = true

	s.logger.Info().Str("user_id", userID).Str("company", user.Owner.CompanyName).Msg("owner approved")
	return user, nil
}

// DeleteUser removes an account together with its dependents. Owners lose
// their listings (images released best-effort, bookings removed); students
// lose their bookings. Dependents go first, the user record last.
func (s *AdminService) DeleteUser(ctx context.Context, userID string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	switch user.Role {
	case domain.RoleOwner:
		listings, err := s.accommodations.FindByOwner(ctx, userID)
		if err != nil {
			return err
		}
		for _, a := range listings {
			s.releaseImages(ctx, a)
			if err := s.bookings.DeleteByAccommodation(ctx, a.ID); err != nil {
				return err
			}
			if err := s.accommodations.Delete(ctx, a.ID); err != nil {
				return err
			}
		}
	case domain.RoleStudent:
		if err := s.bookings.DeleteByStudent(ctx, userID); err != nil {
			return err
		}
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Str("role", user.Role).Msg("user deleted")
	return nil
}

func (s *AdminService) releaseImages(ctx context.Context, a *domain.Accommodation) {
	for _, img := range a.Images {
		if img.PublicID == "" {
			continue
		}
		if err := s.media.Delete(ctx, img.PublicID); err != nil {
			s.logger.Warn().Err(err).
				Str("accommodation_id", a.ID).
				Str("public_id", img.PublicID).
				Msg("image release failed, continuing cascade")
		}
	}
}
