package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// spawnPool starts the worker goroutines that process dispatched events.
func (s *Service) spawnPool(ctx context.Context) {
	s.logger.Info("Spawning notifier pool", slog.Int("concurrency", s.concurrency))

	for i := 0; i < s.concurrency; i++ {
		s.wg.Add(1)
		go s.workerLoop(ctx, i)
	}
}

// workerLoop processes events and acks or nacks each delivery based on the
// outcome.
func (s *Service) workerLoop(ctx context.Context, workerNum int) {
	defer s.wg.Done()

	workerName := fmt.Sprintf("%s-%d", s.consumerID, workerNum)
	s.logger.Info("Notifier worker started", slog.String("worker", workerName))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Notifier worker stopping", slog.String("worker", workerName))
			return

		case env, ok := <-s.eventsChan:
			if !ok {
				return
			}

			err := s.process(ctx, env.event)

			channel := s.rabbitClient.GetChannel()
			if channel == nil {
				s.logger.Error("No RabbitMQ channel for ack",
					slog.String("worker", workerName),
					slog.String("application_id", env.event.ApplicationID),
				)
				continue
			}

			if err != nil {
				s.logger.Error("Event processing failed",
					slog.String("worker", workerName),
					slog.String("application_id", env.event.ApplicationID),
					slog.String("error", err.Error()),
				)

				requeue := shouldRequeue(err)
				if nackErr := channel.Nack(env.deliveryTag, false, requeue); nackErr != nil {
					s.logger.Error("Failed to NACK event",
						slog.String("worker", workerName),
						slog.String("error", nackErr.Error()),
					)
				}
				continue
			}

			if ackErr := channel.Ack(env.deliveryTag, false); ackErr != nil {
				s.logger.Error("Failed to ACK event",
					slog.String("worker", workerName),
					slog.String("error", ackErr.Error()),
				)
			}
		}
	}
}

// shouldRequeue reports whether a failed event should go back on the
// queue. Only transient failures are retried.
func shouldRequeue(err error) bool {
	if errors.Is(err, ErrBadEvent) {
		return false
	}

	var retryable *RetryableError
	return errors.As(err, &retryable)
}
