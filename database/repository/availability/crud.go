package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"gardenly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// setHours flips the available flag for a set of hours inside one
// transaction, so a failing write never applies part of the hour set.
func (r *mongoAvailabilityRepo) setHours(ctx context.Context, providerID, date string, hours []int, available bool) error {
	hours = models.SortedHours(hours)
	for _, h := range hours {
		if !models.ValidHour(h) {
			return fmt.Errorf("invalid hour %d for date %s", h, date)
		}
	}

	sess, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		for _, h := range hours {
			filter := bson.M{"providerId": providerID, "date": date, "hour": h}
			update := bson.M{"$set": bson.M{"available": available}}
			opts := options.Update().SetUpsert(true)
			if _, err := r.coll.UpdateOne(sc, filter, update, opts); err != nil {
				return fmt.Errorf("update hour %d failed: %w", h, err)
			}
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
		return fmt.Errorf("availability write failed: %w", err)
	}
	return nil
}

func (r *mongoAvailabilityRepo) SetAvailable(ctx context.Context, providerID, date string, hours []int) error {
	return r.setHours(ctx, providerID, date, hours, true)
}

func (r *mongoAvailabilityRepo) SetUnavailable(ctx context.Context, providerID, date string, hours []int) error {
	return r.setHours(ctx, providerID, date, hours, false)
}

func (r *mongoAvailabilityRepo) ApplyDefaultSchedule(ctx context.Context, providerID, date string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"providerId": providerID, "date": date})
	if err != nil {
		return fmt.Errorf("failed to check existing schedule for %s: %w", date, err)
	}
	if count > 0 {
		return nil
	}

	docs := make([]interface{}, 0, models.DefaultScheduleEnd-models.DefaultScheduleStart+1)
	for _, h := range models.DefaultScheduleHours() {
		docs = append(docs, models.AvailabilityBlock{
			ProviderID: providerID,
			Date:       date,
			Hour:       h,
			Available:  true,
		})
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to seed default schedule for %s: %w", date, err)
	}
	return nil
}

func (r *mongoAvailabilityRepo) ClearDay(ctx context.Context, providerID, date string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"providerId": providerID, "date": date}); err != nil {
		return fmt.Errorf("failed to clear day %s: %w", date, err)
	}
	return nil
}
