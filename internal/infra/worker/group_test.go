package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGroup_RunsAllTasks(t *testing.T) {
	g := New(context.Background(), nil, WithLimit(5))
	var n atomic.Int32
	for i := 0; i < 5; i++ {
		err := g.WaitUntil(func(context.Context) error {
			n.Add(1)
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := n.Load(); got != 5 {
		t.Errorf("expected 5 tasks, got %d", got)
	}
}

func TestGroup_LimitFullDoesNotBlock(t *testing.T) {
	g := New(context.Background(), nil, WithLimit(1))
	release := make(chan struct{})
	if err := g.WaitUntil(func(context.Context) error {
		<-release
		return nil
	}); err != nil {
		t.Fatalf("first task: unexpected error: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- g.WaitUntil(func(context.Context) error { return nil }) }()
	select {
	case err := <-done:
		if !errors.Is(err, ErrBusy) {
			t.Errorf("expected ErrBusy, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("WaitUntil blocked with the limit full")
	}

	close(release)
	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.WaitUntil(func(context.Context) error { return nil }); err != nil {
		t.Errorf("slot freed: expected nil, got %v", err)
	}
	_ = g.Wait()
}

func TestGroup_OutlivesParentContext(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	g := New(parent, nil)
	cancel()

	var taskErr error
	g.WaitUntil(func(ctx context.Context) error {
		taskErr = ctx.Err()
		return nil
	})
	_ = g.Wait()
	if taskErr != nil {
		t.Errorf("task context must not inherit request cancellation, got %v", taskErr)
	}
}

func TestGroup_LogsFailuresAndPanics(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	g := New(context.Background(), zap.New(core))

	var ran atomic.Bool
	g.WaitUntil(func(context.Context) error { return errors.New("followup failed") })
	g.WaitUntil(func(context.Context) error { panic("boom") })
	g.WaitUntil(func(context.Context) error {
		ran.Store(true)
		return nil
	})

	if err := g.Wait(); err != nil {
		t.Fatalf("task errors are logged, not returned: %v", err)
	}
	if !ran.Load() {
		t.Error("a failing task must not stop the others")
	}
	if got := logs.FilterMessage("background task failed").Len(); got != 2 {
		t.Errorf("expected 2 logged failures, got %d", got)
	}
}

func TestGroup_Timeout(t *testing.T) {
	g := New(context.Background(), nil, WithTimeout(10*time.Millisecond))

	var taskErr error
	g.WaitUntil(func(ctx context.Context) error {
		<-ctx.Done()
		taskErr = ctx.Err()
		return taskErr
	})
	_ = g.Wait()
	if !errors.Is(taskErr, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", taskErr)
	}
}

func TestGroup_ShutdownGivesUp(t *testing.T) {
	g := New(context.Background(), nil)
	release := make(chan struct{})
	g.WaitUntil(func(context.Context) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := g.Shutdown(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	close(release)
	if err := g.Shutdown(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
