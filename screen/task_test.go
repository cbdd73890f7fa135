package screen

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestTaskCancel(t *testing.T) {
	task := Go(context.Background(), func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	task.Cancel()

	select {
	case <-task.Done():
	case <-time.After(time.Second):
		t.Fatal("task did not stop after Cancel")
	}
	if err := task.Wait(); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() = %v, want context.Canceled", err)
	}
}

func TestCompleted(t *testing.T) {
	want := errors.New("boom")
	if err := Completed(want).Wait(); err != want {
		t.Errorf("Wait() = %v, want %v", err, want)
	}
	Completed(nil).Cancel()
}

func TestSequence(t *testing.T) {
	var s Sequence
	a := s.Next()
	if !s.IsLatest(a) {
		t.Fatal("first token should be latest")
	}
	b := s.Next()
	if s.IsLatest(a) || !s.IsLatest(b) {
		t.Errorf("IsLatest(%d)=%v IsLatest(%d)=%v", a, s.IsLatest(a), b, s.IsLatest(b))
	}
}
