package screen

import (
	"context"
	"sync/atomic"
)

// Task is one cancellable in-flight flow owned by a screen
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// Go runs fn in its own goroutine with a context derived from parent
func Go(parent context.Context, fn func(ctx context.Context) error) *Task {
	ctx, cancel := context.WithCancel(parent)
	t := &Task{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(t.done)
		defer cancel()
		t.err = fn(ctx)
	}()
	return t
}

// Completed returns a task that has already finished with err
func Completed(err error) *Task {
	t := &Task{cancel: func() {}, done: make(chan struct{}), err: err}
	close(t.done)
	return t
}

// Cancel stops the task; results it produces afterwards are discarded
func (t *Task) Cancel() {
	t.cancel()
}

// Done is closed when the task returns
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task returns and reports its error
func (t *Task) Wait() error {
	<-t.done
	return t.err
}

// Sequence hands out monotonically increasing request tokens.
// Only the most recently issued token may write screen state.
type Sequence struct {
	n atomic.Uint64
}

// Next issues a new token, superseding all earlier ones
func (s *Sequence) Next() uint64 {
	return s.n.Add(1)
}

// IsLatest reports whether tok is the most recently issued token
func (s *Sequence) IsLatest(tok uint64) bool {
	return s.n.Load() == tok
}
