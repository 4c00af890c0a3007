package engine

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// TestWorkerPoolFunctionality tests worker pool basic functionality.
func TestWorkerPoolFunctionality(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Start()

	// Test basic task submission
	var counter int64
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		submitted := pool.Submit(func() {
			atomic.AddInt64(&counter, 1)
			wg.Done()
		})
		if !submitted {
			wg.Done() // Decrement if not submitted
		}
	}

	// Wait with timeout
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		// Success
	case <-time.After(5 * time.Second):
		t.Fatal("Timeout waiting for tasks to complete")
	}

	pool.Stop()

	if counter < 90 { // Allow some tolerance for queue overflow
		t.Errorf("Expected at least 90 tasks completed, got %d", counter)
	}

	stats := pool.Stats()
	t.Logf("Pool stats: TasksTotal=%d, TasksDone=%d", stats.TasksTotal, stats.TasksDone)
}

// TestWorkerPoolSubmitWhenStopped tests that submission fails cleanly on a
// stopped pool.
func TestWorkerPoolSubmitWhenStopped(t *testing.T) {
	pool := NewWorkerPool(2)

	if pool.Submit(func() {}) {
		t.Error("Submit should fail before Start")
	}

	pool.Start()
	pool.Stop()

	if pool.Submit(func() {}) {
		t.Error("Submit should fail after Stop")
	}
	if pool.Stats().Running {
		t.Error("Stats should report a stopped pool")
	}
}

// TestWorkerPoolStartIdempotent tests that repeated Start and Stop calls do
// not panic or leak.
func TestWorkerPoolStartIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	pool.Start()

	var ran atomic.Bool
	var wg sync.WaitGroup
	wg.Add(1)
	if !pool.Submit(func() {
		ran.Store(true)
		wg.Done()
	}) {
		t.Fatal("Submit failed on a running pool")
	}
	wg.Wait()

	pool.Stop()
	pool.Stop()

	if !ran.Load() {
		t.Error("Task should have run")
	}
}

// TestWorkerPoolDefaultSize tests the CPU-count fallback.
func TestWorkerPoolDefaultSize(t *testing.T) {
	pool := NewWorkerPool(0)
	if pool.Stats().Workers < 1 {
		t.Errorf("Expected at least one worker, got %d", pool.Stats().Workers)
	}
}

// BenchmarkWorkerPool benchmarks single task round-trips through the pool.
func BenchmarkWorkerPool(b *testing.B) {
	pool := NewWorkerPool(4)
	pool.Start()
	defer pool.Stop()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var wg sync.WaitGroup
		wg.Add(1)
		pool.Submit(func() {
			wg.Done()
		})
		wg.Wait()
	}
}

// BenchmarkWorkerPoolParallel benchmarks parallel task submission.
func BenchmarkWorkerPoolParallel(b *testing.B) {
	pool := NewWorkerPool(8)
	pool.Start()
	defer pool.Stop()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			done := make(chan struct{})
			if pool.Submit(func() {
				close(done)
			}) {
				<-done
			}
		}
	})
}
