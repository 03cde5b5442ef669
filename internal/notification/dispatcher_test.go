package notification

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	grantsDomain "github.com/allisson/grants/internal/grants/domain"
)

// fakeMailer records sent tasks and optionally fails or blocks.
type fakeMailer struct {
	mu      sync.Mutex
	sent    []DeliveryTask
	err     error
	blockCh chan struct{}
}

func (f *fakeMailer) Send(ctx context.Context, task DeliveryTask) error {
	if f.blockCh != nil {
		select {
		case <-f.blockCh:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, task)
	return nil
}

func (f *fakeMailer) sentTasks() []DeliveryTask {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]DeliveryTask(nil), f.sent...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcher_Dispatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("DeliversTask", func(t *testing.T) {
		mailer := &fakeMailer{}
		dispatcher := NewDispatcher(DispatcherConfig{Workers: 2, QueueSize: 8}, mailer, testLogger())

		task := DeliveryTask{
			OwnerEmail: "buyer@example.com",
			Tier:       grantsDomain.TierDemo,
			Link:       "https://example.com/v1/access?token=dG9rZW4",
		}
		assert.True(t, dispatcher.Dispatch(task))

		require.NoError(t, dispatcher.Shutdown(context.Background()))
		assert.Equal(t, []DeliveryTask{task}, mailer.sentTasks())
	})

	t.Run("FullQueueDropsTask", func(t *testing.T) {
		blockCh := make(chan struct{})
		mailer := &fakeMailer{blockCh: blockCh}
		dispatcher := NewDispatcher(DispatcherConfig{Workers: 1, QueueSize: 1}, mailer, testLogger())

		task := DeliveryTask{OwnerEmail: "buyer@example.com", Tier: grantsDomain.TierDemo}

		// First task occupies the worker, second fills the queue. Either way
		// the queue is eventually full and a dispatch must fail.
		accepted := 0
		for i := 0; i < 10; i++ {
			if dispatcher.Dispatch(task) {
				accepted++
			}
		}
		assert.Less(t, accepted, 10)

		close(blockCh)
		require.NoError(t, dispatcher.Shutdown(context.Background()))
	})

	t.Run("RejectsAfterShutdown", func(t *testing.T) {
		mailer := &fakeMailer{}
		dispatcher := NewDispatcher(DispatcherConfig{Workers: 1, QueueSize: 1}, mailer, testLogger())

		require.NoError(t, dispatcher.Shutdown(context.Background()))

		assert.False(t, dispatcher.Dispatch(DeliveryTask{OwnerEmail: "buyer@example.com"}))
	})

	t.Run("DeliveryFailureDoesNotStopWorkers", func(t *testing.T) {
		mailer := &fakeMailer{err: errors.New("smtp unavailable")}
		dispatcher := NewDispatcher(DispatcherConfig{Workers: 1, QueueSize: 4}, mailer, testLogger())

		assert.True(t, dispatcher.Dispatch(DeliveryTask{OwnerEmail: "a@example.com"}))
		assert.True(t, dispatcher.Dispatch(DeliveryTask{OwnerEmail: "b@example.com"}))

		require.NoError(t, dispatcher.Shutdown(context.Background()))
		assert.Empty(t, mailer.sentTasks())
	})
}

func TestDispatcher_Shutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("DrainsQueuedTasks", func(t *testing.T) {
		mailer := &fakeMailer{}
		dispatcher := NewDispatcher(DispatcherConfig{Workers: 2, QueueSize: 16}, mailer, testLogger())

		for i := 0; i < 10; i++ {
			assert.True(t, dispatcher.Dispatch(DeliveryTask{OwnerEmail: "buyer@example.com"}))
		}

		require.NoError(t, dispatcher.Shutdown(context.Background()))
		assert.Len(t, mailer.sentTasks(), 10)
	})

	t.Run("Idempotent", func(t *testing.T) {
		dispatcher := NewDispatcher(DispatcherConfig{Workers: 1, QueueSize: 1}, &fakeMailer{}, testLogger())

		require.NoError(t, dispatcher.Shutdown(context.Background()))
		require.NoError(t, dispatcher.Shutdown(context.Background()))
	})

	t.Run("DeadlineExceeded", func(t *testing.T) {
		blockCh := make(chan struct{})
		mailer := &fakeMailer{blockCh: blockCh}
		dispatcher := NewDispatcher(
			DispatcherConfig{Workers: 1, QueueSize: 4, SendTimeout: time.Minute},
			mailer,
			testLogger(),
		)

		require.True(t, dispatcher.Dispatch(DeliveryTask{OwnerEmail: "buyer@example.com"}))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := dispatcher.Shutdown(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		// Unblock the worker so goleak stays clean.
		close(blockCh)
		assert.Eventually(t, func() bool {
			return len(mailer.sentTasks()) == 1
		}, time.Second, 10*time.Millisecond)
	})
}
