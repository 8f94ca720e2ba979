package ports

import (
	"context"

	"github.com/way2pg/way2pg-api/internal/core/domain"
)

// ListAccommodationsFilter carries query parameters for browsing listings.
// OwnerIDs restricts results to listings owned by the given users; the service
// layer uses it to keep unapproved owners' listings out of public results.
type ListAccommodationsFilter struct {
	OwnerIDs []string // nil = no owner restriction
	City     string   // optional: substring match on address
	MaxPrice float64  // optional: price <= MaxPrice when > 0
	Amenity  string   // optional: must include this amenity
}

// AccommodationRepository defines persistence operations for listings.
type AccommodationRepository interface {
	Create(ctx context.Context, a *domain.Accommodation) (*domain.Accommodation, error)
	FindByID(ctx context.Context, id string) (*domain.Accommodation, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*domain.Accommodation, error)
	List(ctx context.Context, filter ListAccommodationsFilter) ([]*domain.Accommodation, error)
	Update(ctx context.Context, a *domain.Accommodation) error
	AppendImage(ctx context.Context, id string, img domain.Image) error
	Delete(ctx context.Context, id string) error
}
