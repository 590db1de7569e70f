package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotwise/database"
	"slotwise/models"
)

// mongoScheduleRepo implements ScheduleRepository using MongoDB.
type mongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo constructs a new instance of mongoScheduleRepo.
func NewMongoScheduleRepo() ScheduleRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoScheduleRepo{coll: db.Collection("schedules")}
}

func (r *mongoScheduleRepo) GetByHost(ctx context.Context, hostID string) (*models.HostSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sched models.HostSchedule
	if err := r.coll.FindOne(ctx, bson.M{"hostId": hostID}).Decode(&sched); err != nil {
		return nil, fmt.Errorf("error fetching schedule for host %s: %w", hostID, err)
	}
	return &sched, nil
}

func (r *mongoScheduleRepo) Upsert(ctx context.Context, sched *models.HostSchedule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sched.UpdatedAt = time.Now()
	filter := bson.M{"hostId": sched.HostID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, filter, sched, opts); err != nil {
		return fmt.Errorf("error upserting schedule for host %s: %w", sched.HostID, err)
	}
	return nil
}

// EnsureIndexes creates the necessary indexes on the schedules collection.
func (r *mongoScheduleRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "hostId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_host"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create schedule indexes: %w", err)
	}
	return nil
}
