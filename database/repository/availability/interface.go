package availabilityRepo

import (
	"context"

	"gardenly/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// AvailabilityRepository owns the calendar of hour blocks per provider/day.
type AvailabilityRepository interface {
	// GetDay returns the available hours for a provider on one date, ascending.
	GetDay(ctx context.Context, providerID, date string) ([]int, error)
	// GetRange returns available hours per date over [from, to] in a single
	// batched read.
	GetRange(ctx context.Context, providerID, from, to string) (map[string][]int, error)
	// SetAvailable marks the given hours bookable. Idempotent and
	// all-or-nothing for the requested hour set.
	SetAvailable(ctx context.Context, providerID, date string, hours []int) error
	// SetUnavailable marks the given hours not bookable. Idempotent and
	// all-or-nothing for the requested hour set.
	SetUnavailable(ctx context.Context, providerID, date string, hours []int) error
	// ApplyDefaultSchedule seeds hours 8..17 as available when the provider
	// has no blocks at all for the date.
	ApplyDefaultSchedule(ctx context.Context, providerID, date string) error
	// ClearDay removes every block for the date.
	ClearDay(ctx context.Context, providerID, date string) error
	// EnsureIndexes creates the collection indexes.
	EnsureIndexes() error
}

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a MongoDB-backed AvailabilityRepository.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	return &mongoAvailabilityRepo{
		coll: database.DB().Collection("availability"),
	}
}
