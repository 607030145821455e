// AngelaMos | 2026
// service.go

package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	eventChannel   = "notifications:events"
	publishTimeout = 5 * time.Second
)

type Event struct {
	Type       string    `json:"type"`
	Recipient  int64     `json:"recipient_id"`
	Sender     int64     `json:"sender_id,omitempty"`
	Subject    string    `json:"subject,omitempty"`
	Preview    string    `json:"preview,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Service simulates out-of-band delivery: every event is logged and
// published on a Redis channel for any listening worker. Dispatch is
// fire-and-forget on a context detached from the request, so delivery
// failures never reach the committed response.
type Service struct {
	redis  *redis.Client
	logger *slog.Logger
}

func NewService(redisClient *redis.Client, logger *slog.Logger) *Service {
	return &Service{
		redis:  redisClient,
		logger: logger,
	}
}

func (s *Service) MessageReceived(recipientID, senderID int64, preview string) {
	s.dispatch(Event{
		Type:       "message_received",
		Recipient:  recipientID,
		Sender:     senderID,
		Preview:    preview,
		OccurredAt: time.Now(),
	})
}

func (s *Service) EmailDelivery(recipientID int64, subject string) {
	s.dispatch(Event{
		Type:       "email_delivery",
		Recipient:  recipientID,
		Subject:    subject,
		OccurredAt: time.Now(),
	})
}

func (s *Service) dispatch(event Event) {
	go func() {
		ctx, cancel := context.WithTimeout(
			context.Background(),
			publishTimeout,
		)
		defer cancel()

		s.logger.Info("notification",
			"type", event.Type,
			"recipient_id", event.Recipient,
		)

		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal notification", "error", err)
			return
		}

		if err := s.redis.Publish(ctx, eventChannel, payload).Err(); err != nil {
			s.logger.Error("publish notification",
				"type", event.Type,
				"error", err,
			)
		}
	}()
}
