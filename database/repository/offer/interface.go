package offerRepo

import (
	"context"
	"errors"

	"gardenly/database"
	"gardenly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrOfferClaimed is returned when a claim races another provider and the
// offer is no longer open.
var ErrOfferClaimed = errors.New("offer is no longer open")

// ErrNotFound is returned when an offer does not exist.
var ErrNotFound = errors.New("offer not found")

// OfferRepository persists broadcast job offers.
type OfferRepository interface {
	Insert(ctx context.Context, offer *models.Offer) error
	GetByID(ctx context.Context, id string) (*models.Offer, error)
	// Claim moves the offer from open to claimed for the given provider.
	// Exactly one concurrent claimer succeeds; the rest get ErrOfferClaimed.
	Claim(ctx context.Context, offerID, providerID string) error
	UpdateStatus(ctx context.Context, id string, status models.OfferStatus) error
	EnsureIndexes() error
}

type mongoOfferRepo struct {
	coll *mongo.Collection
}

// NewMongoOfferRepo constructs a MongoDB-backed OfferRepository.
func NewMongoOfferRepo() OfferRepository {
	return &mongoOfferRepo{
		coll: database.DB().Collection("offers"),
	}
}
