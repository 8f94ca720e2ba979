package ports

import (
	"context"

	"github.com/way2pg/way2pg-api/internal/core/domain"
)

// AccommodationInput carries the writable attributes of a listing.
type AccommodationInput struct {
	Name        string
	Description string
	Address     string
	Price       float64
	Amenities   []string
}

// BrowseFilter carries the public browsing query parameters.
type BrowseFilter struct {
	City     string
	MaxPrice float64
	Amenity  string
}

// AccommodationService defines listing management and public browsing.
type AccommodationService interface {
	// Create registers a listing for ownerID. Admins may act on an owner's
	// behalf; actorRole distinguishes the two.
	Create(ctx context.Context, actorID, actorRole, ownerID string, input AccommodationInput) (*domain.Accommodation, error)
	// Update modifies a listing. Owners may touch only their own; a foreign
	// listing fails like a missing one. Admins may touch any.
	Update(ctx context.Context, actorID, actorRole, id string, input AccommodationInput) (*domain.Accommodation, error)
	// Delete cascades: hosted images are released best-effort, dependent
	// bookings removed, then the listing itself.
	Delete(ctx context.Context, actorID, actorRole, id string) error
	// AttachImage uploads picture bytes to the media host and appends the
	// resulting reference to the listing.
	AttachImage(ctx context.Context, actorID, actorRole, id string, data []byte, filename string) (*domain.Accommodation, error)
	// Browse returns publicly visible listings: only those whose owner has
	// been approved by an admin.
	Browse(ctx context.Context, filter BrowseFilter) ([]*domain.Accommodation, error)
	// GetPublic returns one publicly visible listing.
	GetPublic(ctx context.Context, id string) (*domain.Accommodation, error)
	// ListByOwner returns an owner's listings regardless of approval state.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Accommodation, error)
}
