package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/way2pg/way2pg-api/internal/core/domain"
	"github.com/way2pg/way2pg-api/internal/core/ports"
)

const imagesFolder = "way2pg/accommodations"

// AccommodationService implements listing management and public browsing.
type AccommodationService struct {
	accommodations ports.AccommodationRepository
	bookings       ports.BookingRepository
	users          ports.UserRepository
	media          ports.MediaStore
	logger         zerolog.Logger
}

func NewAccommodationService(accommodations ports.AccommodationRepository, bookings ports.BookingRepository, users ports.UserRepository, media ports.MediaStore, logger zerolog.Logger) *AccommodationService {
	return &AccommodationService{
		accommodations: accommodations,
		bookings:       bookings,
		users:          users,
		media:          media,
		logger:         logger,
	}
}

func (s *AccommodationService) Create(ctx context.Context, actorID, actorRole, ownerID string, input ports.AccommodationInput) (*domain.Accommodation, error) {
	if actorRole != domain.RoleAdmin || ownerID == "" {
		// Owners always create for themselves; only admins may name another owner.
		ownerID = actorID
	}

	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner.Role != domain.RoleOwner {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	created, err := s.accommodations.Create(ctx, &domain.Accommodation{
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
		Address:     input.Address,
		Price:       input.Price,
		Amenities:   input.Amenities,
		Images:      []domain.Image{},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("accommodation_id", created.ID).Str("owner_id", ownerID).Msg("accommodation created")
	return created, nil
}

func (s *AccommodationService) Update(ctx context.Context, actorID, actorRole, id string, input ports.AccommodationInput) (*domain.Accommodation, error) {
	accommodation, err := s.findForActor(ctx, actorID, actorRole, id)
	if err != nil {
		return nil, err
	}

	accommodation.Name = input.Name
	accommodation.Description = input.Description
	accommodation.Address = input.Address
	accommodation.Price = input.Price
	accommodation.Amenities = input.Amenities
	accommodation.UpdatedAt = time.Now().UTC()

	if err := s.accommodations.Update(ctx, accommodation); err != nil {
		return nil, err
	}
	return accommodation, nil
}

// Delete removes a listing and everything hanging off it. Image deletions are
// best effort: one failing identifier must not block the rest of the cascade.
func (s *AccommodationService) Delete(ctx context.Context, actorID, actorRole, id string) error {
	accommodation, err := s.findForActor(ctx, actorID, actorRole, id)
	if err != nil {
		return err
	}

	s.releaseImages(ctx, accommodation)

	if err := s.bookings.DeleteByAccommodation(ctx, accommodation.ID); err != nil {
		return err
	}
	if err := s.accommodations.Delete(ctx, accommodation.ID); err != nil {
		return err
	}

	s.logger.Info().Str("accommodation_id", accommodation.ID).Msg("accommodation deleted")
	return nil
}

func (s *AccommodationService) AttachImage(ctx context.Context, actorID, actorRole, id string, data []byte, filename string) (*domain.Accommodation, error) {
	accommodation, err := s.findForActor(ctx, actorID, actorRole, id)
	if err != nil {
		return nil, err
	}

	img, err := s.media.Upload(ctx, data, imagesFolder, filename)
	if err != nil {
		s.logger.Error().Err(err).Str("accommodation_id", id).Msg("image upload failed")
		return nil, err
	}

	if err := s.accommodations.AppendImage(ctx, accommodation.ID, img); err != nil {
		return nil, err
	}
	accommodation.Images = append(accommodation.Images, img)
	return accommodation, nil
}

func (s *AccommodationService) Browse(ctx context.Context, filter ports.BrowseFilter) ([]*domain.Accommodation, error) {
	approved, err := s.users.List(ctx, ports.UserFilter{Role: domain.RoleOwner})
	if err != nil {
		return nil, err
	}

	ownerIDs := make([]string, 0, len(approved))
	for _, owner := range approved {
		if owner.IsApproved() {
			ownerIDs = append(ownerIDs, owner.ID)
		}
	}
	if len(ownerIDs) == 0 {
		return []*domain.Accommodation{}, nil
	}

	return s.accommodations.List(ctx, ports.ListAccommodationsFilter{
		OwnerIDs: ownerIDs,
		City:     filter.City,
		MaxPrice: filter.MaxPrice,
		Amenity:  filter.Amenity,
	})
}

func (s *AccommodationService) GetPublic(ctx context.Context, id string) (*domain.Accommodation, error) {
	accommodation, err := s.accommodations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.FindByID(ctx, accommodation.OwnerID)
	if err != nil || !owner.IsApproved() {
		// An unapproved owner's listing is invisible, not forbidden.
		return nil, domain.ErrAccommodationNotFound
	}
	return accommodation, nil
}

func (s *AccommodationService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Accommodation, error) {
	return s.accommodations.FindByOwner(ctx, ownerID)
}

// findForActor resolves a listing the actor may modify. Owners see only their
// own listings; a foreign listing reads as missing.
func (s *AccommodationService) findForActor(ctx context.Context, actorID, actorRole, id string) (*domain.Accommodation, error) {
	accommodation, err := s.accommodations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorRole != domain.RoleAdmin && accommodation.OwnerID != actorID {
		return nil, domain.ErrAccommodationNotFound
	}
	return accommodation, nil
}

func (s *AccommodationService) releaseImages(ctx context.Context, a *domain.Accommodation) {
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
