package workers

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool(t *testing.T) {
	t.Run("runs all submitted work", func(t *testing.T) {
		w := New(context.Background(), 3, false)
		var count int32
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			if !w.Submit(NewRunAction("count", func() error {
				atomic.AddInt32(&count, 1)
				wg.Done()
				return nil
			})) {
				t.Fatal("pool refused work before cancellation")
			}
		}
		wg.Wait()
		w.Stop()
		if count != 10 {
			t.Errorf("ran %d work items, want 10", count)
		}
	})

	t.Run("drops work submitted after cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		w := New(ctx, 1, false)
		cancel()
		if w.Submit(NewRunAction("never", func() error {
			t.Error("work ran after cancellation")
			return nil
		})) {
			t.Error("pool accepted work after cancellation")
		}
		w.Stop()
	})

	t.Run("stop waits for the running work", func(t *testing.T) {
		w := New(context.Background(), 1, false)
		started := make(chan struct{})
		var finished atomic.Bool
		w.Submit(NewRunAction("slow", func() error {
			close(started)
			time.Sleep(20 * time.Millisecond)
			finished.Store(true)
			return nil
		}))
		<-started
		w.Stop()
		if !finished.Load() {
			t.Error("Stop() returned before the running work finished")
		}
	})

	t.Run("a failing work item doesn't take the pool down", func(t *testing.T) {
		w := New(context.Background(), 1, false)
		done := make(chan struct{})
		w.Submit(NewRunAction("failing", func() error {
			return context.DeadlineExceeded
		}))
		w.Submit(NewRunAction("after", func() error {
			close(done)
			return nil
		}))
		<-done
		w.Stop()
	})
}
