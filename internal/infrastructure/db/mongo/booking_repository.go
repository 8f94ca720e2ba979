package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/way2pg/way2pg-api/internal/core/domain"
)

const bookingsCollection = "bookings"

type BookingRepository struct {
	coll *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{coll: db.Collection(bookingsCollection)}
}

type mongoBooking struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	StudentID       string             `bson:"student_id"`
	AccommodationID string             `bson:"accommodation_id"`
	Status          string             `bson:"status"`
	Message         string             `bson:"message"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoBooking{
		StudentID:       b.StudentID,
		AccommodationID: b.AccommodationID,
		Status:          string(b.Status),
		Message:         b.Message,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	created := *b
	created.CreatedAt = now
	created.UpdatedAt = now
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *BookingRepository) FindByIDAndStudent(ctx context.Context, id, studentID string) (*domain.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookingNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid, "student_id": studentID})
}

func (r *BookingRepository) FindPending(ctx context.Context, studentID, accommodationID string) (*domain.Booking, error) {
	return r.findOne(ctx, bson.M{
		"student_id":       studentID,
		"accommodation_id": accommodationID,
		"status":           string(domain.BookingPending),
	})
}

func (r *BookingRepository) ListByStudent(ctx context.Context, studentID string) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"student_id": studentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Booking
	for cur.Next(ctx) {
		var mb mongoBooking
		if err := cur.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode booking: %w", err)
		}
		out = append(out, fromMongoBooking(&mb))
	}
	return out, cur.Err()
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBookingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) DeleteByAccommodation(ctx context.Context, accommodationID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"accommodation_id": accommodationID}); err != nil {
		return fmt.Errorf("delete bookings by accommodation: %w", err)
	}
	return nil
}

func (r *BookingRepository) DeleteByStudent(ctx context.Context, studentID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"student_id": studentID}); err != nil {
		return fmt.Errorf("delete bookings by student: %w", err)
	}
	return nil
}

// EnsureIndexes creates lookup indexes. The (student, accommodation, status)
// index speeds the pending-duplicate check; it is deliberately not unique, so
// the duplicate guard stays a read-then-write check with its documented race.
func (r *BookingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "student_id", Value: 1},
			{Key: "accommodation_id", Value: 1},
			{Key: "status", Value: 1},
		}},
		{Keys: bson.D{{Key: "accommodation_id", Value: 1}}},
		{Keys: bson.D{{Key: "student_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *BookingRepository) findOne(ctx context.Context, filter bson.M) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBooking
	if err := r.coll.FindOne(ctx, filter).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return fromMongoBooking(&mb), nil
}

func fromMongoBooking(mb *mongoBooking) *domain.Booking {
	return &domain.Booking{
		ID:              mb.ID.Hex(),
		StudentID:       mb.StudentID,
		AccommodationID: mb.AccommodationID,
		Status:          domain.BookingStatus(mb.Status),
		Message:         mb.Message,
		CreatedAt:       mb.CreatedAt,
		UpdatedAt:       mb.UpdatedAt,
	}
}
