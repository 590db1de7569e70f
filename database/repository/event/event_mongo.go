package eventRepo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"slotwise/database"
	"slotwise/models"
)

// mongoEventTypeRepo implements EventTypeRepository using MongoDB.
type mongoEventTypeRepo struct {
	coll *mongo.Collection
}

// NewMongoEventTypeRepo constructs a new instance of mongoEventTypeRepo.
func NewMongoEventTypeRepo() EventTypeRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoEventTypeRepo{coll: db.Collection("event_types")}
}

func (r *mongoEventTypeRepo) GetByID(ctx context.Context, eventTypeID string) (*models.EventType, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var et models.EventType
	if err := r.coll.FindOne(ctx, bson.M{"id": eventTypeID}).Decode(&et); err != nil {
		return nil, fmt.Errorf("error fetching event type %s: %w", eventTypeID, err)
	}
	return &et, nil
}

func (r *mongoEventTypeRepo) ListByHost(ctx context.Context, hostID string, activeOnly bool) ([]models.EventType, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"hostId": hostID}
	if activeOnly {
		filter["isActive"] = true
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing event types for host %s: %w", hostID, err)
	}
	defer cursor.Close(ctx)

	var out []models.EventType
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding event types: %w", err)
	}
	// Case-insensitive name ordering, matching the public page listing.
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (r *mongoEventTypeRepo) Create(ctx context.Context, et *models.EventType) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, et); err != nil {
		return fmt.Errorf("error creating event type: %w", err)
	}
	return nil
}

func (r *mongoEventTypeRepo) Update(ctx context.Context, et *models.EventType) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": et.ID, "hostId": et.HostID}
	res, err := r.coll.ReplaceOne(ctx, filter, et)
	if err != nil {
		return fmt.Errorf("error updating event type %s: %w", et.ID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoEventTypeRepo) Delete(ctx context.Context, hostID, eventTypeID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": eventTypeID, "hostId": hostID})
	if err != nil {
		return fmt.Errorf("error deleting event type %s: %w", eventTypeID, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
