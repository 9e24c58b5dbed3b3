package reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gardenly/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// DraftStore holds in-progress booking drafts. The draft is caller-owned
// session state: the engine never reads it, and an expired draft simply
// disappears.
type DraftStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewDraftStore(client *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{Client: client, TTL: ttl}
}

func draftKey(id string) string { return "draft:" + id }

// Save persists the draft and returns its ID, minting one for new drafts.
func (s *DraftStore) Save(ctx context.Context, draft *models.BookingDraft) (string, error) {
	if draft.DraftID == "" {
		draft.DraftID = uuid.New().String()
	}
	draft.UpdatedAt = time.Now()

	data, err := json.Marshal(draft)
	if err != nil {
		return "", fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := s.Client.Set(ctx, draftKey(draft.DraftID), data, s.TTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store draft: %w", err)
	}
	return draft.DraftID, nil
}

func (s *DraftStore) Get(ctx context.Context, draftID string) (*models.BookingDraft, error) {
	data, err := s.Client.Get(ctx, draftKey(draftID)).Result()
	if err == redis.Nil {
		return nil, NewRequestError("draft %s not found or expired", draftID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch draft: %w", err)
	}

	var draft models.BookingDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse draft: %w", err)
	}
	return &draft, nil
}

func (s *DraftStore) Delete(ctx context.Context, draftID string) error {
	if err := s.Client.Del(ctx, draftKey(draftID)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
