package parallel

// Future holds the result of a job started with Go.
type Future[T any] struct {
	done chan struct{}
	val  T
}

// Go runs fn on the pool and returns a future for its result. When the pool
// is nil or closed, fn runs on the calling goroutine before Go returns.
func Go[T any](p *WorkerPool, fn func() T) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	run := func() {
		f.val = fn()
		close(f.done)
	}
	if p == nil || !p.Submit(run) {
		run()
	}
	return f
}

// Wait blocks until the job has finished and returns its result.
func (f *Future[T]) Wait() T {
	<-f.done
	return f.val
}

// Ready reports whether the result is available without blocking.
func (f *Future[T]) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
