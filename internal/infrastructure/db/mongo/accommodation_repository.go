package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/way2pg/way2pg-api/internal/core/domain"
	"github.com/way2pg/way2pg-api/internal/core/ports"
)

const accommodationsCollection = "accommodations"

type AccommodationRepository struct {
	coll *mongo.Collection
}

func NewAccommodationRepository(db *mongo.Database) *AccommodationRepository {
	return &AccommodationRepository{coll: db.Collection(accommodationsCollection)}
}

type mongoAccommodation struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID     string             `bson:"owner_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Address     string             `bson:"address"`
	Price       float64            `bson:"price"`
	Amenities   []string           `bson:"amenities"`
	Images      []domain.Image     `bson:"images"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (r *AccommodationRepository) Create(ctx context.Context, a *domain.Accommodation) (*domain.Accommodation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoAccommodation(a)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert accommodation: %w", err)
	}

	created := *a
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *AccommodationRepository) FindByID(ctx context.Context, id string) (*domain.Accommodation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccommodationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoAccommodation
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccommodationNotFound
		}
		return nil, fmt.Errorf("find accommodation: %w", err)
	}
	return fromMongoAccommodation(&ma), nil
}

func (r *AccommodationRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Accommodation, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID})
}

func (r *AccommodationRepository) List(ctx context.Context, filter ports.ListAccommodationsFilter) ([]*domain.Accommodation, error) {
	query := bson.M{}
	if filter.OwnerIDs != nil {
		query["owner_id"] = bson.M{"$in": filter.OwnerIDs}
	}
	if filter.City != "" {
		query["address"] = bson.M{"$regex": filter.City, "$options": "i"}
	}
	if filter.MaxPrice > 0 {
		query["price"] = bson.M{"$lte": filter.MaxPrice}
	}
	if filter.Amenity != "" {
		query["amenities"] = filter.Amenity
	}
	return r.find(ctx, query)
}

func (r *AccommodationRepository) Update(ctx context.Context, a *domain.Accommodation) error {
	oid, err := primitive.ObjectIDFromHex(a.ID)
	if err != nil {
		return domain.ErrAccommodationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":        a.Name,
		"description": a.Description,
		"address":     a.Address,
		"price":       a.Price,
		"amenities":   a.Amenities,
		"updated_at":  a.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update accommodation: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccommodationNotFound
	}
	return nil
}

func (r *AccommodationRepository) AppendImage(ctx context.Context, id string, img domain.Image) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccommodationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$push": bson.M{"images": img},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("append image: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccommodationNotFound
	}
	return nil
}

func (r *AccommodationRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccommodationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete accommodation: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAccommodationNotFound
	}
	return nil
}

// EnsureIndexes creates the owner lookup index.
func (r *AccommodationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *AccommodationRepository) find(ctx context.Context, query bson.M) ([]*domain.Accommodation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list accommodations: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Accommodation
	for cur.Next(ctx) {
		var ma mongoAccommodation
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode accommodation: %w", err)
		}
		out = append(out, fromMongoAccommodation(&ma))
	}
	return out, cur.Err()
}

func toMongoAccommodation(a *domain.Accommodation) mongoAccommodation {
	return mongoAccommodation{
		OwnerID:     a.OwnerID,
		Name:        a.Name,
		Description: a.Description,
		Address:     a.Address,
		Price:       a.Price,
		Amenities:   a.Amenities,
		Images:      a.Images,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func fromMongoAccommodation(ma *mongoAccommodation) *domain.Accommodation {
	return &domain.Accommodation{
		ID:          ma.ID.Hex(),
		OwnerID:     ma.OwnerID,
		Name:        ma.Name,
		Description: ma.Description,
		Address:     ma.Address,
		Price:       ma.Price,
		Amenities:   ma.Amenities,
		Images:      ma.Images,
		CreatedAt:   ma.CreatedAt,
		UpdatedAt:   ma.UpdatedAt,
	}
}
