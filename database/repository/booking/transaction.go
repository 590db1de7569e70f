package bookingRepo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"slotwise/models"
)

// CreateGuarded inserts the booking inside a session transaction. The
// overlap count runs in the same transaction as the insert, so with respect
// to other commits for the host the check-and-reserve is a single atomic
// step: of two concurrent commits for intersecting intervals, the second
// transaction observes the first insert and aborts with ErrOverlap.
func (r *mongoBookingRepo) CreateGuarded(ctx context.Context, booking *models.Booking) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		n, err := r.coll.CountDocuments(sc, overlapFilter(booking.HostID, booking.Interval))
		if err != nil {
			return fmt.Errorf("overlap re-check failed: %w", err)
		}
		if n > 0 {
			return ErrOverlap
		}
		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if errors.Is(err, ErrOverlap) {
			return ErrOverlap
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}

	return nil
}
