package events

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/metrics"
)

const (
	DefaultDispatchInterval = 2 * time.Second
	DefaultDispatchBatch    = 100
	DefaultPublishTimeout   = 5 * time.Second
)

//go:generate mockgen -source=$GOFILE -destination=dispatcher_mocks_test.go -package=events_test

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type outboxRepo interface {
	Unpublished(ctx context.Context, limit int) ([]Event, error)
	MarkPublished(ctx context.Context, ids []int64) error
}

// Dispatcher drains stored activity events to the publisher outside of request handling.
// Delivery is at least once: a row is marked only after its publish succeeded.
type Dispatcher struct {
	repo           outboxRepo
	publisher      Publisher
	metricsManager *metrics.Manager

	interval       time.Duration
	batchSize      int
	publishTimeout time.Duration

	shutdownComplete chan struct{}
}

func NewDispatcher(repo outboxRepo, publisher Publisher, metricsManager *metrics.Manager) *Dispatcher {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &Dispatcher{
		repo:             repo,
		publisher:        publisher,
		metricsManager:   metricsManager,
		interval:         DefaultDispatchInterval,
		batchSize:        DefaultDispatchBatch,
		publishTimeout:   DefaultPublishTimeout,
		shutdownComplete: make(chan struct{}),
	}
}

// Start runs the polling loop until ctx is done. Call it in its own goroutine.
func (d *Dispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer func() {
		ticker.Stop()
		close(d.shutdownComplete)
	}()

	for {
		if _, err := d.DispatchOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Errorf("dispatch activity events: %s", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Wait blocks until a started dispatcher has stopped.
func (d *Dispatcher) Wait() {
	<-d.shutdownComplete
}

// DispatchOnce publishes one batch in id order and returns how many events were delivered.
// It stops at the first failed publish so a user's later events never overtake earlier ones.
func (d *Dispatcher) DispatchOnce(ctx context.Context) (int, error) {
	pending, err := d.repo.Unpublished(ctx, d.batchSize)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	publishCtx, cancel := context.WithTimeout(ctx, d.publishTimeout)
	defer cancel()

	delivered := make([]int64, 0, len(pending))
	for _, event := range pending {
		err := d.publisher.Publish(publishCtx, event)
		d.count(event.Type, err)
		if err != nil {
			log.Warnf("publish %s event %d: %s", event.Type, event.ID, err)
			break
		}
		delivered = append(delivered, event.ID)
	}

	if len(delivered) == 0 {
		return 0, nil
	}
	if err := d.repo.MarkPublished(ctx, delivered); err != nil {
		return 0, err
	}
	return len(delivered), nil
}

func (d *Dispatcher) count(eventType Type, err error) {
	if d.metricsManager == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	d.metricsManager.CounterEventsPublished.WithLabelValues(eventType.String(), result).Inc()
}
