package offerRepo

import (
	"context"
	"fmt"
	"time"

	"gardenly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoOfferRepo) Insert(ctx context.Context, offer *models.Offer) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, offer); err != nil {
		return fmt.Errorf("failed to insert offer %s: %w", offer.ID, err)
	}
	return nil
}

func (r *mongoOfferRepo) GetByID(ctx context.Context, id string) (*models.Offer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var offer models.Offer
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&offer)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch offer %s: %w", id, err)
	}
	return &offer, nil
}

// Claim is a conditional write: it only matches an open offer, so among
// concurrent claimers exactly one update applies.
func (r *mongoOfferRepo) Claim(ctx context.Context, offerID, providerID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": offerID, "status": models.OfferOpen}
	update := bson.M{"$set": bson.M{
		"status":    models.OfferClaimed,
		"claimedBy": providerID,
		"updatedAt": time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to claim offer %s: %w", offerID, err)
	}
	if res.MatchedCount == 0 {
		return ErrOfferClaimed
	}
	return nil
}

func (r *mongoOfferRepo) UpdateStatus(ctx context.Context, id string, status models.OfferStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update offer %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
