// Package scheduler runs one-shot delayed tasks that can be revoked by key.
//
// Orders use their id as the key, so deleting an order revokes every timer
// that would otherwise act on it:
//
//	s := scheduler.NewDelayScheduler(logger)
//	s.ScheduleAfter(id.String(), 15*time.Second, func(ctx context.Context) error {
//	    return dispatch(ctx, id)
//	})
//	...
//	s.Cancel(id.String())
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Task is the work run when a timer fires. A returned error is logged, never retried.
type Task func(ctx context.Context) error

// DelayScheduler owns every outstanding timer of the process.
type DelayScheduler struct {
	mu      sync.Mutex
	pending map[string]map[*Handle]struct{}
	stopped bool

	ctx     context.Context
	cancel  context.CancelFunc
	running sync.WaitGroup
	logger  *slog.Logger
}

func NewDelayScheduler(logger *slog.Logger) *DelayScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &DelayScheduler{
		pending: make(map[string]map[*Handle]struct{}),
		ctx:     ctx,
		cancel:  cancel,
		logger:  logger.With("component", "delay_scheduler"),
	}
}

// Handle refers to one scheduled task.
type Handle struct {
	key   string
	timer *time.Timer
	owner *DelayScheduler
	done  chan struct{}
	once  sync.Once
}

// Key returns the key the task was scheduled under.
func (h *Handle) Key() string {
	return h.key
}

// Done is closed once the task has run or has been cancelled.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Cancel revokes the task. It reports false if the task already started or was
// cancelled before.
func (h *Handle) Cancel() bool {
	s := h.owner
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.detach(h) {
		return false
	}
	h.timer.Stop()
	h.finish()
	return true
}

func (h *Handle) finish() {
	h.once.Do(func() { close(h.done) })
}

// ScheduleAfter runs task once after d unless it is cancelled first.
// After Stop it returns a handle that is already done.
func (s *DelayScheduler) ScheduleAfter(key string, d time.Duration, task Task) *Handle {
	h := &Handle{
		key:   key,
		owner: s,
		done:  make(chan struct{}),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		h.finish()
		return h
	}

	if s.pending[key] == nil {
		s.pending[key] = make(map[*Handle]struct{})
	}
	s.pending[key][h] = struct{}{}
	h.timer = time.AfterFunc(d, func() { s.fire(h, task) })
	return h
}

// Cancel revokes every outstanding task scheduled under key and returns how many there were.
func (s *DelayScheduler) Cancel(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	handles := s.pending[key]
	delete(s.pending, key)
	for h := range handles {
		h.timer.Stop()
		h.finish()
	}
	return len(handles)
}

// Pending returns the number of tasks that have neither run nor been cancelled.
func (s *DelayScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, handles := range s.pending {
		n += len(handles)
	}
	return n
}

// PendingFor returns the number of outstanding tasks under key.
func (s *DelayScheduler) PendingFor(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending[key])
}

// Stop revokes every outstanding task, cancels the context of running ones
// and waits for them to return. Later calls to ScheduleAfter are ignored.
func (s *DelayScheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	revoked := 0
	for key, handles := range s.pending {
		for h := range handles {
			h.timer.Stop()
			h.finish()
			revoked++
		}
		delete(s.pending, key)
	}
	s.mu.Unlock()

	s.cancel()
	s.running.Wait()
	s.logger.Info("Delay scheduler stopped", "revoked", revoked)
}

func (s *DelayScheduler) fire(h *Handle, task Task) {
	s.mu.Lock()
	if !s.detach(h) {
		s.mu.Unlock()
		return
	}
	s.running.Add(1)
	s.mu.Unlock()

	defer s.running.Done()
	defer h.finish()

	if err := s.run(task); err != nil {
		s.logger.ErrorContext(s.ctx, "Scheduled task failed", "key", h.key, "error", err)
	}
}

func (s *DelayScheduler) run(task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return task(s.ctx)
}

// detach removes h from the pending set. Callers hold s.mu.
func (s *DelayScheduler) detach(h *Handle) bool {
	handles, ok := s.pending[h.key]
	if !ok {
		return false
	}
	if _, ok = handles[h]; !ok {
		return false
	}
	delete(handles, h)
	if len(handles) == 0 {
		delete(s.pending, h.key)
	}
	return true
}
