package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"slotwise/database"
	"slotwise/models"
)

// ErrOverlap is returned by CreateGuarded when the interval is already taken.
var ErrOverlap = errors.New("booking interval overlaps an existing booking")

// mongoBookingRepo implements BookingRepository using MongoDB.
type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of mongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoBookingRepo{coll: db.Collection("bookings")}
}

// overlapFilter matches bookings of the host whose half-open interval
// intersects iv: existing.start < iv.End && existing.end > iv.Start.
func overlapFilter(hostID string, iv models.Interval) bson.M {
	return bson.M{
		"hostId":         hostID,
		"interval.start": bson.M{"$lt": iv.End},
		"interval.end":   bson.M{"$gt": iv.Start},
	}
}

func (r *mongoBookingRepo) FindOverlapping(ctx context.Context, hostID string, iv models.Interval) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, overlapFilter(hostID, iv))
	if err != nil {
		return nil, fmt.Errorf("error querying bookings for host %s: %w", hostID, err)
	}
	defer cursor.Close(ctx)

	var out []models.Booking
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return out, nil
}

func (r *mongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": bookingID}).Decode(&b); err != nil {
		return nil, fmt.Errorf("error fetching booking %s: %w", bookingID, err)
	}
	return &b, nil
}

func (r *mongoBookingRepo) Delete(ctx context.Context, bookingID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": bookingID})
	if err != nil {
		return fmt.Errorf("error deleting booking %s: %w", bookingID, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
