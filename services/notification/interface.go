package notification

import (
	"context"

	"gardenly/models"
	"gardenly/services/tasks"
	"gardenly/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NotificationService delivers booking status events to the parties of a
// booking. Delivery is fire-and-forget: a failure here never rolls back
// booking state.
type NotificationService interface {
	NotifyBookingEvent(ctx context.Context, booking models.Booking, event string)
}

// AsynqNotificationService enqueues events onto the background queue; the
// worker hands them to the external push transport.
type AsynqNotificationService struct {
	Client *asynq.Client
}

func NewAsynqNotificationService(client *asynq.Client) *AsynqNotificationService {
	return &AsynqNotificationService{Client: client}
}

func (s *AsynqNotificationService) NotifyBookingEvent(ctx context.Context, booking models.Booking, event string) {
	logger := utils.GetLogger()

	task, err := tasks.NewBookingNotifyTask(models.BookingEventPayload{
		BookingID:  booking.ID,
		ProviderID: booking.ProviderID,
		ClientID:   booking.ClientID,
		Event:      event,
		Date:       booking.Date,
		StartHour:  booking.StartHour,
	})
	if err != nil {
		logger.Error("failed to build notification task",
			zap.String("bookingID", booking.ID), zap.Error(err))
		return
	}
	if _, err := s.Client.EnqueueContext(ctx, task); err != nil {
		logger.Error("failed to enqueue notification",
			zap.String("bookingID", booking.ID), zap.String("event", event), zap.Error(err))
	}
}

// NoopNotificationService discards events; used in tests.
type NoopNotificationService struct{}

func (NoopNotificationService) NotifyBookingEvent(context.Context, models.Booking, string) {}
