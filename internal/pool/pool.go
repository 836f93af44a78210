// Package pool provides a fixed-size worker pool for fire-and-forget
// compression tasks.
package pool

import (
	"errors"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidSize is returned by New when the requested size is below 1.
var ErrInvalidSize = errors.New("worker pool size must be at least 1")

// Task is a self-contained unit of work. Implementations carry their own
// captured inputs; the pool observes no result — a task's outcome is
// visible only through its side effects.
type Task interface {
	Run()
}

// Func adapts a plain function to the Task interface.
type Func func()

// Run calls f.
func (f Func) Run() { f() }

// queueDepth bounds the shared queue. Submit may wait for queue space
// when all workers are busy, but never for a task to complete.
const queueDepth = 256

// Pool is a fixed set of long-lived workers draining a shared queue.
// Tasks execute with no ordering guarantee relative to each other.
type Pool struct {
	tasks chan Task
	g     errgroup.Group
}

// New starts size workers, each blocking on the shared queue until work
// arrives or the pool is shut down.
func New(size int) (*Pool, error) {
	if size < 1 {
		return nil, ErrInvalidSize
	}
	p := &Pool{tasks: make(chan Task, queueDepth)}
	for i := 0; i < size; i++ {
		p.g.Go(p.work)
	}
	return p, nil
}

func (p *Pool) work() error {
	for t := range p.tasks {
		t.Run()
	}
	return nil
}

// Submit enqueues t for execution by exactly one worker. Submit must not
// be called after Shutdown.
func (p *Pool) Submit(t Task) {
	p.tasks <- t
}

// Shutdown drains the pool: no new task is accepted, every queued task
// still executes, and in-flight tasks run to completion. It blocks until
// all workers have exited.
func (p *Pool) Shutdown() {
	close(p.tasks)
	_ = p.g.Wait()
}
