package screen

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Status is the coarse state a screen renders
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusDenied  Status = "denied"
	StatusFailed  Status = "failed"
)

const (
	// DeniedMessage is shown when location permission is refused
	DeniedMessage = "Permission to access location was denied"
	// MalformedMessage is shown when the provider answered with data that cannot be read
	MalformedMessage = "Weather data could not be read"
)

// cell holds one screen's view. Writes are accepted only from the latest,
// uncancelled flow; readers always get a private copy.
type cell[V any] struct {
	mu    sync.RWMutex
	view  V
	seq   Sequence
	task  *Task
	clone func(V) V
}

func newCell[V any](initial V, clone func(V) V) *cell[V] {
	return &cell[V]{view: initial, clone: clone}
}

func (c *cell[V]) get() V {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clone(c.view)
}

// begin supersedes the running flow, applies start to the view and launches fn
func (c *cell[V]) begin(ctx context.Context, start func(V) V, fn func(ctx context.Context, tok uint64) error) *Task {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.task != nil {
		c.task.Cancel()
	}
	tok := c.seq.Next()
	if start != nil {
		c.view = start(c.view)
	}
	c.task = Go(ctx, func(ctx context.Context) error {
		return fn(ctx, tok)
	})
	return c.task
}

// apply updates the view if tok is still current and its flow was not cancelled
func (c *cell[V]) apply(ctx context.Context, tok uint64, update func(V) V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ctx.Err() != nil || !c.seq.IsLatest(tok) {
		return false
	}
	c.view = update(c.view)
	return true
}

// end cancels the running flow and invalidates its token
func (c *cell[V]) end() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.task != nil {
		c.task.Cancel()
	}
	c.seq.Next()
}

func (c *cell[V]) current() *Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.task == nil {
		return Completed(nil)
	}
	return c.task
}

func replace[V any](v V) func(V) V {
	return func(V) V { return v }
}

func logFailure(ctx context.Context, logger *zap.Logger, msg string, err error) {
	if ctx.Err() != nil {
		logger.Debug(msg+" abandoned", zap.Error(err))
		return
	}
	logger.Warn(msg, zap.Error(err))
}

func logStale(logger *zap.Logger, tok uint64) {
	logger.Debug("dropping stale update", zap.Uint64("token", tok))
}
