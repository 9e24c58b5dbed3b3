package availabilityRepo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gardenly/models"

	"go.mongodb.org/mongo-driver/bson"
)

func (r *mongoAvailabilityRepo) GetDay(ctx context.Context, providerID, date string) ([]int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"providerId": providerID, "date": date, "available": true}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability for %s: %w", date, err)
	}
	defer cursor.Close(ctx)

	var blocks []models.AvailabilityBlock
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, fmt.Errorf("failed to decode availability blocks: %w", err)
	}

	hours := make([]int, 0, len(blocks))
	for _, b := range blocks {
		hours = append(hours, b.Hour)
	}
	sort.Ints(hours)
	return hours, nil
}

// GetRange issues a single range query rather than one read per day.
func (r *mongoAvailabilityRepo) GetRange(ctx context.Context, providerID, from, to string) (map[string][]int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"providerId": providerID,
		"date":       bson.M{"$gte": from, "$lte": to},
		"available":  true,
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability range %s..%s: %w", from, to, err)
	}
	defer cursor.Close(ctx)

	var blocks []models.AvailabilityBlock
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, fmt.Errorf("failed to decode availability blocks: %w", err)
	}

	byDate := make(map[string][]int)
	for _, b := range blocks {
		byDate[b.Date] = append(byDate[b.Date], b.Hour)
	}
	for d := range byDate {
		sort.Ints(byDate[d])
	}
	return byDate, nil
}
