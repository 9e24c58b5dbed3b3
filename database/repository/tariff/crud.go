package tariffRepo

import (
	"context"
	"fmt"
	"time"

	"gardenly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoTariffRepo) Get(ctx context.Context, providerID, serviceType string) (*models.TariffConfig, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"providerId": providerID, "serviceType": serviceType}
	var tariff models.TariffConfig
	err := r.coll.FindOne(ctx, filter).Decode(&tariff)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tariff %s/%s: %w", providerID, serviceType, err)
	}

	// Older documents are upgraded on read; the write path always stores
	// the current schema version.
	tariff.Migrate()
	return &tariff, nil
}

func (r *mongoTariffRepo) Save(ctx context.Context, tariff *models.TariffConfig) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tariff.SchemaVersion = models.TariffSchemaVersion
	filter := bson.M{"providerId": tariff.ProviderID, "serviceType": tariff.ServiceType}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, filter, tariff, opts); err != nil {
		return fmt.Errorf("failed to save tariff %s/%s: %w", tariff.ProviderID, tariff.ServiceType, err)
	}
	return nil
}
