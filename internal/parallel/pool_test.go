package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// WorkerPool Creation Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewWorkerPool(n)
		if pool.Workers() != runtime.GOMAXPROCS(0) {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d", n, pool.Workers(), runtime.GOMAXPROCS(0))
		}
		pool.Close()
	}
}

// =============================================================================
// Submit Tests
// =============================================================================

func submitN(t *testing.T, pool *WorkerPool, n int, fn func(i int)) {
	t.Helper()
	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		if !pool.Submit(func() {
			defer wg.Done()
			fn(i)
		}) {
			t.Fatalf("Submit(%d) rejected by running pool", i)
		}
	}
	wg.Wait()
}

func TestWorkerPool_Submit(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	submitN(t, pool, 100, func(int) { counter.Add(1) })

	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
}

func TestWorkerPool_Submit_Nil(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	if pool.Submit(nil) {
		t.Error("Submit(nil) = true, want false")
	}
}

func TestWorkerPool_SubmitAfterClose(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Close()

	var executed atomic.Bool
	if pool.Submit(func() { executed.Store(true) }) {
		t.Error("Submit after Close = true, want false")
	}
	time.Sleep(20 * time.Millisecond)
	if executed.Load() {
		t.Error("Work was executed on closed pool")
	}
}

// =============================================================================
// Close Tests
// =============================================================================

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("Pool should not be running after Close")
	}
}

func TestWorkerPool_CloseRunsAcceptedWork(t *testing.T) {
	pool := NewWorkerPool(2)

	var counter atomic.Int64
	accepted := 0
	for range 100 {
		if pool.Submit(func() { counter.Add(1) }) {
			accepted++
		}
	}
	pool.Close()

	if counter.Load() != int64(accepted) {
		t.Errorf("completed %d of %d accepted jobs", counter.Load(), accepted)
	}
	if pool.QueuedWork() != 0 {
		t.Errorf("QueuedWork() = %d after Close, want 0", pool.QueuedWork())
	}
}

// =============================================================================
// Concurrency Tests
// =============================================================================

func TestWorkerPool_Concurrent(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			futures := make([]*Future[int], 50)
			for i := range futures {
				futures[i] = Go(pool, func() int {
					counter.Add(1)
					return i
				})
			}
			for i, f := range futures {
				if got := f.Wait(); got != i {
					t.Errorf("future %d = %d", i, got)
				}
			}
		}()
	}
	wg.Wait()

	if counter.Load() != 500 {
		t.Errorf("counter = %d, want 500", counter.Load())
	}
}

func TestWorkerPool_WorkStealing(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var slow, fast atomic.Int64
	submitN(t, pool, 100, func(i int) {
		if i%10 == 0 {
			time.Sleep(5 * time.Millisecond)
			slow.Add(1)
			return
		}
		fast.Add(1)
	})

	if slow.Load() != 10 || fast.Load() != 90 {
		t.Errorf("slow, fast = %d, %d, want 10, 90", slow.Load(), fast.Load())
	}
}

func TestWorkerPool_CloseRacesSubmit(t *testing.T) {
	for range 20 {
		pool := NewWorkerPool(2)
		var wg sync.WaitGroup
		futures := make([]*Future[bool], 200)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range futures {
				futures[i] = Go(pool, func() bool { return true })
			}
		}()
		pool.Close()
		wg.Wait()
		for i, f := range futures {
			if !f.Wait() {
				t.Fatalf("future %d lost", i)
			}
		}
	}
}

func TestWorkerPool_NoGoroutineLeak(t *testing.T) {
	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	baseline := runtime.NumGoroutine()

	for range 5 {
		pool := NewWorkerPool(4)
		submitN(t, pool, 100, func(int) {})
		pool.Close()
	}

	runtime.GC()
	time.Sleep(100 * time.Millisecond)
	if final := runtime.NumGoroutine(); final > baseline+2 {
		t.Errorf("goroutine count: baseline=%d, final=%d (leak detected)", baseline, final)
	}
}

// =============================================================================
// Future Tests
// =============================================================================

func TestFuture_NilPoolRunsInline(t *testing.T) {
	f := Go(nil, func() string { return "inline" })
	if !f.Ready() {
		t.Error("Ready() = false for inline job")
	}
	if got := f.Wait(); got != "inline" {
		t.Errorf("Wait() = %q, want %q", got, "inline")
	}
}

func TestFuture_Ready(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Close()

	release := make(chan struct{})
	f := Go(pool, func() int {
		<-release
		return 7
	})
	if f.Ready() {
		t.Error("Ready() = true before job finished")
	}
	close(release)
	if got := f.Wait(); got != 7 {
		t.Errorf("Wait() = %d, want 7", got)
	}
	if !f.Ready() {
		t.Error("Ready() = false after Wait")
	}
}
