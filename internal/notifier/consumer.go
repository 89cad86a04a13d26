package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// setupConsumer applies QoS and starts consuming from the
// application-events queue.
func (s *Service) setupConsumer() (<-chan amqp.Delivery, error) {
	channel := s.rabbitClient.GetChannel()
	if channel == nil {
		return nil, fmt.Errorf("rabbitmq channel is nil")
	}

	// Per-consumer prefetch so one slow worker does not hoard messages.
	if err := channel.Qos(s.prefetchCount, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	deliveries, err := s.rabbitClient.Consume(s.consumerID)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	return deliveries, nil
}

// dispatch decodes deliveries and hands them to the worker pool. Malformed
// bodies are nacked without requeue right here.
func (s *Service) dispatch(ctx context.Context, deliveries <-chan amqp.Delivery) {
	s.logger.Info("Event dispatcher started", slog.String("consumer_id", s.consumerID))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Event dispatcher stopped - context canceled")
			return

		case delivery, ok := <-deliveries:
			if !ok {
				s.logger.Warn("RabbitMQ delivery channel closed")
				return
			}

			event, err := decodeEvent(delivery.Body)
			if err != nil {
				s.logger.Error("Dropping malformed event",
					slog.String("error", err.Error()),
					slog.String("body", string(delivery.Body)),
				)
				if nackErr := delivery.Nack(false, false); nackErr != nil {
					s.logger.Error("Failed to NACK malformed event", slog.String("error", nackErr.Error()))
				}
				continue
			}

			env := &envelope{event: event, deliveryTag: delivery.DeliveryTag}

			select {
			case s.eventsChan <- env:
				s.logger.Debug("Event dispatched to worker pool",
					slog.String("application_id", event.ApplicationID),
				)
			case <-ctx.Done():
				// Requeue so another consumer picks it up after shutdown.
				if nackErr := delivery.Nack(false, true); nackErr != nil && !errors.Is(nackErr, amqp.ErrClosed) {
					s.logger.Error("Failed to NACK event on shutdown", slog.String("error", nackErr.Error()))
				}
				return
			}
		}
	}
}
