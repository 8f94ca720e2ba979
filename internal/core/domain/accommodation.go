package domain

import (
	"errors"
	"time"
)

var ErrAccommodationNotFound = errors.New("accommodation not found")

// Image references an externally hosted picture. PublicID is the media host's
// deletable identifier; deletion by PublicID is idempotent.
type Image struct {
	URL      string `json:"url" bson:"url"`
	PublicID string `json:"public_id" bson:"public_id"`
}

// Accommodation is a PG/hostel listing owned by exactly one owner-role user.
// It is publicly visible only while its owner holds admin approval.
type Accommodation struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	OwnerID     string    `json:"owner_id" bson:"owner_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Address     string    `json:"address" bson:"address"`
	Price       float64   `json:"price" bson:"price"`
	Amenities   []string  `json:"amenities" bson:"amenities"`
	Images      []Image   `json:"images" bson:"images"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
