// Package queue provides the rate-limited FIFO request queue that spaces out
// calls to the quota-limited generation API.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Task is a unit of work submitted to the queue.
type Task func(ctx context.Context) (interface{}, error)

type taskResult struct {
	value interface{}
	err   error
}

type pendingTask struct {
	ctx  context.Context
	run  Task
	done chan taskResult
}

// RequestQueue serializes outbound API calls so that consecutive dispatches
// are at least a configured interval apart. Tasks execute strictly in
// submission order, one at a time; a task failure is delivered only to its
// submitter and does not stop the drain loop. The backlog is unbounded.
type RequestQueue struct {
	interval time.Duration
	log      zerolog.Logger

	mu           sync.Mutex
	pending      []*pendingTask
	draining     bool
	lastDispatch time.Time

	// Injected clock, replaced in tests.
	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

// New creates a request queue enforcing the given minimum interval between
// consecutive dispatches.
func New(interval time.Duration, log zerolog.Logger) *RequestQueue {
	return &RequestQueue{
		interval: interval,
		log:      log.With().Str("component", "request_queue").Logger(),
		now:      time.Now,
		after:    time.After,
	}
}

// Submit enqueues a task and blocks until it has run, returning whatever the
// task returned. Tasks are never cancelled once enqueued; ctx is passed
// through to the task itself.
func (q *RequestQueue) Submit(ctx context.Context, task Task) (interface{}, error) {
	t := &pendingTask{
		ctx:  ctx,
		run:  task,
		done: make(chan taskResult, 1),
	}

	q.mu.Lock()
	q.pending = append(q.pending, t)
	depth := len(q.pending)
	startDrain := !q.draining
	if startDrain {
		q.draining = true
	}
	q.mu.Unlock()

	if depth > 1 {
		q.log.Debug().Int("depth", depth).Msg("Request queued behind backlog")
	}
	if startDrain {
		go q.drain()
	}

	res := <-t.done
	return res.value, res.err
}

// Depth returns the number of tasks waiting to be dispatched.
func (q *RequestQueue) Depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// drain executes pending tasks in FIFO order. Exactly one drain loop runs at
// a time; the draining flag is the only mutual exclusion in the system.
func (q *RequestQueue) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.draining = false
			q.mu.Unlock()
			return
		}
		t := q.pending[0]
		q.pending = q.pending[1:]
		wait := q.interval - q.now().Sub(q.lastDispatch)
		q.mu.Unlock()

		if wait > 0 {
			<-q.after(wait)
		}

		q.mu.Lock()
		q.lastDispatch = q.now()
		q.mu.Unlock()

		value, err := t.run(t.ctx)
		if err != nil {
			q.log.Debug().Err(err).Msg("Queued task failed")
		}
		t.done <- taskResult{value: value, err: err}
	}
}

// SubmitTyped routes a typed task through the queue. Methods cannot be
// generic, hence the package-level helper.
func SubmitTyped[T any](ctx context.Context, q *RequestQueue, task func(ctx context.Context) (T, error)) (T, error) {
	value, err := q.Submit(ctx, func(ctx context.Context) (interface{}, error) {
		return task(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return value.(T), nil
}
