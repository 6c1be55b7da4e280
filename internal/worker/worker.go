package worker

import (
	"context"
	"sync"
)

// Task represents a unit of work executed by the pool.
type Task func()

// Pool runs submitted tasks on a fixed set of goroutines. A pool of one
// worker executes tasks strictly in submission order.
type Pool interface {
	Submit(Task)
	Do(ctx context.Context, fn func() error) error
	Stop()
}

// NewPool creates a pool with n workers. n<=0 defaults to 1.
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				if job != nil {
					job()
				}
			}
		}()
	}
	return p
}

type pool struct {
	jobs chan Task
	wg   sync.WaitGroup
}

func (p *pool) Submit(t Task) {
	p.jobs <- t
}

// Do queues fn and blocks until it has run, returning its error. If ctx is
// done before a worker picks fn up, fn is skipped and ctx.Err() returned.
// Once fn has started it always runs to completion.
func (p *pool) Do(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	task := func() {
		if err := ctx.Err(); err != nil {
			done <- err
			return
		}
		done <- fn()
	}
	select {
	case p.jobs <- task:
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-done
}

func (p *pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
