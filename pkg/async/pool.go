package async

import (
	"context"
	"fmt"
	"sync"
)

// Work is a cancellable unit of work.
type Work[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Data T
	Err  error
}

// Future delivers the result of a submitted work unit. Stop cancels the
// work's context; a stopped work still delivers a result (usually
// context.Canceled).
type Future[T any] struct {
	c      chan T
	cancel context.CancelFunc
}

func newFuture[T any](c chan T, cancel context.CancelFunc) *Future[T] {
	return &Future[T]{c: c, cancel: cancel}
}

func (f *Future[T]) C() <-chan T {
	return f.c
}

func (f *Future[T]) Stop() {
	f.cancel()
}

type poolRequest struct {
	fn  Work[any]
	c   chan Result[any]
	ctx context.Context
}

// Pool runs submitted work on a fixed set of workers. Submitted work inherits
// the pool's lifetime: closing the pool cancels everything in flight.
type Pool struct {
	work       chan poolRequest
	mainCtx    context.Context
	mainCancel context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

func NewPool(nbWorkers int) *Pool {
	if nbWorkers <= 0 {
		nbWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		work:       make(chan poolRequest),
		mainCtx:    ctx,
		mainCancel: cancel,
	}
	p.wg.Add(nbWorkers)
	for range nbWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.mainCtx.Done():
			return
		case r := <-p.work:
			p.run(r)
		}
	}
}

func (p *Pool) run(r poolRequest) {
	defer func() {
		if rec := recover(); rec != nil {
			r.c <- Result[any]{Err: fmt.Errorf("worker panicked: %v", rec)}
		}
	}()
	v, err := r.fn(r.ctx)
	r.c <- Result[any]{Data: v, Err: err}
}

// Submit queues work and returns its future. If the pool is closing the
// future resolves immediately with context.Canceled.
func (p *Pool) Submit(w Work[any]) *Future[Result[any]] {
	c := make(chan Result[any], 1)
	ctx, cancel := context.WithCancel(p.mainCtx)

	select {
	case <-p.mainCtx.Done():
		c <- Result[any]{Err: context.Canceled}
	case p.work <- poolRequest{fn: w, c: c, ctx: ctx}:
	}

	return newFuture(c, cancel)
}

func (p *Pool) Close() {
	p.once.Do(func() {
		p.mainCancel()
		p.wg.Wait()
	})
}
