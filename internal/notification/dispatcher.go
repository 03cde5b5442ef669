package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DispatcherConfig holds dispatcher configuration.
type DispatcherConfig struct {
	Workers     int
	QueueSize   int
	SendTimeout time.Duration
}

// Dispatcher delivers tasks asynchronously through a fixed worker pool fed by
// a bounded queue. Enqueueing never blocks the caller: a full queue drops the
// task and reports it, keeping webhook ingestion latency flat under burst.
type Dispatcher struct {
	config DispatcherConfig
	mailer Mailer
	logger *slog.Logger

	queue chan DeliveryTask
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewDispatcher creates a dispatcher and starts its workers.
func NewDispatcher(config DispatcherConfig, mailer Mailer, logger *slog.Logger) *Dispatcher {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.QueueSize < 1 {
		config.QueueSize = 1
	}
	if config.SendTimeout <= 0 {
		config.SendTimeout = 30 * time.Second
	}

	d := &Dispatcher{
		config: config,
		mailer: mailer,
		logger: logger,
		queue:  make(chan DeliveryTask, config.QueueSize),
	}

	for i := 0; i < config.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}

	return d
}

// Dispatch enqueues a task for delivery. Returns false when the queue is full
// or the dispatcher is shutting down; the caller logs and moves on, delivery
// failure never affects the stored grant.
func (d *Dispatcher) Dispatch(task DeliveryTask) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return false
	}

	select {
	case d.queue <- task:
		return true
	default:
		d.logger.Warn("notification queue full, dropping task",
			slog.String("owner_email", task.OwnerEmail),
			slog.String("tier", task.Tier.String()),
		)
		return false
	}
}

// Shutdown stops intake and waits for queued tasks to drain. Returns the
// context error if the deadline passes before the workers finish.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// worker consumes tasks until the queue closes.
func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for task := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.config.SendTimeout)
		err := d.mailer.Send(ctx, task)
		cancel()

		if err != nil {
			d.logger.Error("notification delivery failed",
				slog.String("owner_email", task.OwnerEmail),
				slog.String("tier", task.Tier.String()),
				slog.Any("error", err),
			)
			continue
		}

		d.logger.Info("notification delivered",
			slog.String("owner_email", task.OwnerEmail),
			slog.String("tier", task.Tier.String()),
		)
	}
}
