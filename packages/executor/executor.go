package executor

import (
	"context"
	"fmt"
	"sync"
)

// Executor runs tasks.
type Executor interface {
	Execute(task func())
}

type sameThread struct{}

// SameThread returns an Executor that runs each task before Execute returns.
func SameThread() Executor {
	return sameThread{}
}

func (sameThread) Execute(task func()) {
	task()
}

// Pool runs each task on its own goroutine, at most size at a time.
type Pool struct {
	sem chan struct{}
	wg  sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewPool creates a pool. A size below one is treated as one.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{sem: make(chan struct{}, size)}
}

// Execute schedules task. Tasks submitted after Shutdown run inline.
func (p *Pool) Execute(task func()) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		task()
		return
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		p.sem <- struct{}{}
		defer func() { <-p.sem }()
		task()
	}()
}

// Shutdown stops accepting work and waits for running tasks.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.wg.Wait()
}

// Future is the pending result of a submitted function.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Submit runs fn on e. With SameThread the returned future is already
// complete and a panic in fn unwinds the caller; on other executors a panic
// is turned into an error.
func Submit[T any](e Executor, fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	if _, inline := e.(sameThread); inline {
		defer close(f.done)
		f.value, f.err = fn()
		return f
	}

	e.Execute(func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("task panicked: %v", r)
			}
		}()
		f.value, f.err = fn()
	})
	return f
}

// Completed returns a future that already holds value and err.
func Completed[T any](value T, err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), value: value, err: err}
	close(f.done)
	return f
}

// Get waits for the result or for ctx to be done.
func (f *Future[T]) Get(ctx context.Context) (T, error) {
	if f.Done() {
		return f.value, f.err
	}
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done reports whether the result is available.
func (f *Future[T]) Done() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
