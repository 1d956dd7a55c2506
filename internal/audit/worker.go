package audit

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// drainTimeout bounds delivery of the events still queued at shutdown.
const drainTimeout = 5 * time.Second

// ErrQueueFull is returned when the async queue cannot take another event.
var ErrQueueFull = errors.New("audit queue full")

// Queue is a Store that hands events to a Worker over a bounded channel so
// slow sinks stay off the request path.
type Queue struct {
	ch chan Event
}

func NewQueue(size int) *Queue {
	return &Queue{ch: make(chan Event, size)}
}

// Append enqueues without blocking.
func (q *Queue) Append(_ context.Context, event Event) error {
	select {
	case q.ch <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Worker consumes queued audit events and forwards them to a sink.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, queue *Queue, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: queue.ch, logger: logger}
}

// Run forwards events until ctx is cancelled, then delivers whatever is still
// queued before returning. Sink errors are logged and the event is dropped.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain(ctx)
			return ctx.Err()
		case event := <-w.inbox:
			w.forward(ctx, event)
		}
	}
}

func (w *Worker) drain(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), drainTimeout)
	defer cancel()
	for {
		select {
		case event := <-w.inbox:
			w.forward(ctx, event)
		default:
			return
		}
	}
}

func (w *Worker) forward(ctx context.Context, event Event) {
	if err := w.store.Append(ctx, event); err != nil && w.logger != nil {
		w.logger.ErrorContext(ctx, "audit sink append failed",
			"action", string(event.Action),
			"error", err,
		)
	}
}
