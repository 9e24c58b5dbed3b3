package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"gardenly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ClaimSlot performs the slot claim as one atomic unit: a conditional
// multi-update that flips every targeted hour from available to unavailable,
// followed by the booking insert. If any hour was taken in the meantime the
// conditional update modifies fewer documents than requested and the whole
// transaction aborts with ErrSlotConflict.
func (r *mongoBookingRepo) ClaimSlot(ctx context.Context, booking *models.Booking) error {
	hours := booking.Hours()

	sess, err := r.bookingColl.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{
			"providerId": booking.ProviderID,
			"date":       booking.Date,
			"hour":       bson.M{"$in": hours},
			"available":  true,
		}
		update := bson.M{"$set": bson.M{"available": false}}

		res, err := r.availabilityColl.UpdateMany(sc, filter, update)
		if err != nil {
			return fmt.Errorf("availability claim failed: %w", err)
		}
		if res.ModifiedCount != int64(len(hours)) {
			return ErrSlotConflict
		}

		if _, err := r.bookingColl.InsertOne(sc, booking); err != nil {
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
		if err == ErrSlotConflict {
			return ErrSlotConflict
		}
		return fmt.Errorf("claim transaction failed: %w", err)
	}
	return nil
}

// ClaimExisting assigns a slot to a broadcast candidate that won its offer:
// the same conditional availability flip as ClaimSlot, but updating the
// already-persisted booking row instead of inserting one. The booking
// update is conditional on the candidate still being pending.
func (r *mongoBookingRepo) ClaimExisting(ctx context.Context, booking *models.Booking) error {
	hours := booking.Hours()

	sess, err := r.bookingColl.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		availFilter := bson.M{
			"providerId": booking.ProviderID,
			"date":       booking.Date,
			"hour":       bson.M{"$in": hours},
			"available":  true,
		}
		res, err := r.availabilityColl.UpdateMany(sc, availFilter, bson.M{"$set": bson.M{"available": false}})
		if err != nil {
			return fmt.Errorf("availability claim failed: %w", err)
		}
		if res.ModifiedCount != int64(len(hours)) {
			return ErrSlotConflict
		}

		filter := bson.M{"id": booking.ID, "status": models.BookingPending}
		update := bson.M{"$set": bson.M{
			"date":          booking.Date,
			"startHour":     booking.StartHour,
			"durationHours": booking.DurationHours,
			"status":        models.BookingConfirmed,
			"updatedAt":     time.Now(),
		}}
		upd, err := r.bookingColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("candidate update failed: %w", err)
		}
		if upd.MatchedCount == 0 {
			return ErrStatusConflict
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
		if err == ErrSlotConflict || err == ErrStatusConflict {
			return err
		}
		return fmt.Errorf("claim transaction failed: %w", err)
	}
	return nil
}

// ReleaseSlot reverses a claim: the booking moves to a terminal status and
// its hours return to the calendar, in one transaction. The status update is
// conditional on the booking still being releasable.
func (r *mongoBookingRepo) ReleaseSlot(ctx context.Context, booking *models.Booking, to models.BookingStatus) error {
	hours := booking.Hours()

	sess, err := r.bookingColl.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{
			"id":     booking.ID,
			"status": bson.M{"$in": []models.BookingStatus{models.BookingPending, models.BookingConfirmed}},
		}
		update := bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}}
		res, err := r.bookingColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("status update failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrStatusConflict
		}

		availFilter := bson.M{
			"providerId": booking.ProviderID,
			"date":       booking.Date,
			"hour":       bson.M{"$in": hours},
		}
		availUpdate := bson.M{"$set": bson.M{"available": true}}
		if _, err := r.availabilityColl.UpdateMany(sc, availFilter, availUpdate); err != nil {
			return fmt.Errorf("availability release failed: %w", err)
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
		if err == ErrStatusConflict {
			return ErrStatusConflict
		}
		return fmt.Errorf("release transaction failed: %w", err)
	}
	return nil
}
