package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/hirenow/hirenow-server/internal/notifier/storage"
	"github.com/hirenow/hirenow-server/shared/postgresql"
	"github.com/hirenow/hirenow-server/shared/rabbitmq"
)

// Config holds notifier service configuration.
type Config struct {
	Logger        *slog.Logger
	DBClient      *postgresql.Client
	RabbitClient  *rabbitmq.Client
	Concurrency   int
	PrefetchCount int
}

// envelope is one dispatched event together with its delivery tag for
// ack/nack.
type envelope struct {
	event       Event
	deliveryTag uint64
}

// Service consumes application-submitted events and records employer
// notifications.
type Service struct {
	logger        *slog.Logger
	storage       *storage.Storage
	rabbitClient  *rabbitmq.Client
	concurrency   int
	prefetchCount int
	consumerID    string
	eventsChan    chan *envelope
	wg            sync.WaitGroup
}

func New(cfg *Config) *Service {
	return &Service{
		logger:        cfg.Logger,
		storage:       storage.NewStorage(cfg.DBClient.GetDB()),
		rabbitClient:  cfg.RabbitClient,
		concurrency:   cfg.Concurrency,
		prefetchCount: cfg.PrefetchCount,
		consumerID:    "notifier-" + uuid.New().String()[:8],
		eventsChan:    make(chan *envelope),
	}
}

// Run consumes events until the context is canceled, then drains the
// worker pool.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("Starting notifier",
		slog.Int("concurrency", s.concurrency),
		slog.String("consumer_id", s.consumerID),
	)

	deliveries, err := s.setupConsumer()
	if err != nil {
		return fmt.Errorf("failed to setup consumer: %w", err)
	}

	s.spawnPool(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.dispatch(ctx, deliveries)
	}()

	<-ctx.Done()
	s.logger.Info("Notifier context canceled, stopping")

	s.wg.Wait()
	s.logger.Info("Notifier stopped")

	return nil
}
