package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"gardenly/config"
	"gardenly/models"
	"gardenly/services/reservation"
	"gardenly/services/tasks"
	"gardenly/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RedisQueueOpt returns the asynq Redis connection options.
func RedisQueueOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// Dispatcher enqueues background tasks. It implements
// reservation.ExpiryScheduler.
type Dispatcher struct {
	Client *asynq.Client
}

func NewDispatcher(client *asynq.Client) *Dispatcher {
	return &Dispatcher{Client: client}
}

func (d *Dispatcher) ScheduleSiblingExpiry(ctx context.Context, offerID, winningBookingID string) error {
	task, opts, err := tasks.NewOfferExpireTask(models.OfferExpiryPayload{
		OfferID:          offerID,
		WinningBookingID: winningBookingID,
	})
	if err != nil {
		return err
	}
	_, err = d.Client.EnqueueContext(ctx, task, opts...)
	return err
}

// InitWorker runs the async worker in background.
func InitWorker(engine *reservation.DefaultReservationEngine) {
	srv := asynq.NewServer(
		RedisQueueOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeOfferExpire, handleOfferExpiry(engine))
	mux.HandleFunc(tasks.TypeBookingNotify, handleBookingNotify)

	// Start async worker with retry logic.
	go func() {
		log.Println("[Worker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)
				if attempts == maxAttempts {
					log.Fatal("[Worker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleOfferExpiry(engine *reservation.DefaultReservationEngine) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.OfferExpiryPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid offer expiry payload", zap.Error(err))
			return err
		}
		return engine.ExpireSiblings(ctx, p.OfferID, p.WinningBookingID)
	}
}

// handleBookingNotify hands the event to the external push transport.
// Delivery failures are logged and retried by the queue; they never touch
// booking state.
func handleBookingNotify(_ context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()

	var p models.BookingEventPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		logger.Error("invalid booking notify payload", zap.Error(err))
		return err
	}

	logger.Info("dispatching booking event",
		zap.String("bookingID", p.BookingID),
		zap.String("event", p.Event),
		zap.String("providerID", p.ProviderID),
		zap.String("clientID", p.ClientID))
	return nil
}
