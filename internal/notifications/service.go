package notifications

import (
	"context"

	"cinetix/internal/shared/config"
	"cinetix/pkg/logger"
)

// Service is the nil-safe publishing facade the reservation layer talks to.
// With no broker configured every publish is a no-op, so the booking core
// never depends on Kafka being up.
type Service interface {
	PublishBookingEvent(ctx context.Context, event *BookingEvent)
	Close() error
}

type service struct {
	producer EventProducer
	log      *logger.Logger
}

// NewService creates the publishing facade. When Kafka is disabled or the
// producer cannot be created, it degrades to a logging no-op.
func NewService(cfg config.KafkaConfig) Service {
	log := logger.GetDefault()

	if !cfg.Enabled {
		log.Info("Kafka disabled, booking events will not be published")
		return &service{log: log}
	}

	producer, err := NewKafkaEventProducer(DefaultKafkaProducerConfig(cfg.Brokers, cfg.Topic))
	if err != nil {
		log.WithError(err).Warn("failed to create Kafka producer, booking events will not be published")
		return &service{log: log}
	}

	return &service{producer: producer, log: log}
}

// PublishBookingEvent publishes asynchronously with respect to the booking
// flow: failures are logged, never surfaced to the caller. Event delivery is
// best-effort; the ledger is the source of truth.
func (s *service) PublishBookingEvent(ctx context.Context, event *BookingEvent) {
	if s.producer == nil {
		return
	}

	if err := s.producer.PublishBookingEvent(ctx, event); err != nil {
		s.log.ErrorWithContext(ctx, "failed to publish booking event", err, map[string]interface{}{
			"type":       string(event.Type),
			"booking_id": event.BookingID.String(),
		})
	}
}

func (s *service) Close() error {
	if s.producer == nil {
		return nil
	}
	return s.producer.Close()
}
