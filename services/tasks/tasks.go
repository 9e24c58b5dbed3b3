package tasks

import (
	"encoding/json"
	"time"

	"gardenly/models"

	"github.com/hibiken/asynq"
)

const (
	TypeBookingNotify = "booking:notify"
	TypeOfferExpire   = "offer:expire"
)

// NewBookingNotifyTask builds the fire-and-forget notification task for a
// booking status change.
func NewBookingNotifyTask(payload models.BookingEventPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingNotify, b), nil
}

// NewOfferExpireTask builds the task that expires the losing candidates of
// a claimed offer. A short delay lets the claim transaction settle before
// siblings are swept.
func NewOfferExpireTask(payload models.OfferExpiryPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	opts := []asynq.Option{asynq.ProcessIn(5 * time.Second)}
	return asynq.NewTask(TypeOfferExpire, b), opts, nil
}
