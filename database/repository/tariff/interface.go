package tariffRepo

import (
	"context"
	"errors"

	"gardenly/database"
	"gardenly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no tariff exists for the provider/service pair.
var ErrNotFound = errors.New("tariff not found")

// TariffRepository persists per-provider, per-service pricing rules.
type TariffRepository interface {
	// Get returns the tariff migrated to the current schema version.
	Get(ctx context.Context, providerID, serviceType string) (*models.TariffConfig, error)
	Save(ctx context.Context, tariff *models.TariffConfig) error
}

type mongoTariffRepo struct {
	coll *mongo.Collection
}

// NewMongoTariffRepo constructs a MongoDB-backed TariffRepository.
func NewMongoTariffRepo() TariffRepository {
	return &mongoTariffRepo{
		coll: database.DB().Collection("tariffs"),
	}
}
