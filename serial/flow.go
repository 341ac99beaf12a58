// Package serial provides a cooperative serial execution flow.
//
// A Flow runs tasks one at a time in the order they were scheduled, on a
// goroutine of its own. It can be suspended, which lets the task that is
// conceptually "in progress" finish asynchronous work before any queued
// task runs, without blocking an OS thread. Tasks can detect that they
// are executing on a given flow through their context, allowing callers
// that are already inside the flow to run work inline instead of
// scheduling it (and deadlocking on themselves).
package serial

import (
	"context"
	"sync"
)

type flowKey struct{}

// Task is a unit of work executed by a Flow. The context passed to the
// task derives from the context it was scheduled with and is tagged so
// that IsCurrent returns true for it.
type Task = func(ctx context.Context)

type queuedTask struct {
	ctx  context.Context
	task Task
}

// Flow is a serial task queue. The zero value is not usable; use New.
type Flow struct {
	mu sync.Mutex
	// Pending tasks in FIFO order.
	queue []queuedTask
	// Number of outstanding Suspend calls.
	suspensions int
	// True while a drain goroutine is running.
	draining bool
}

// New creates an idle Flow.
func New() *Flow {
	return &Flow{}
}

// Schedule enqueues a task. The task eventually runs on the flow's
// goroutine with a context derived from ctx. Schedule never blocks.
func (f *Flow) Schedule(ctx context.Context, task Task) {
	if task == nil {
		return
	}
	f.mu.Lock()
	f.queue = append(f.queue, queuedTask{ctx: ctx, task: task})
	f.startDrainLocked()
	f.mu.Unlock()
}

// Suspend pauses execution of queued tasks after the currently running
// task, if any, returns. Suspend calls nest: the flow resumes only once
// Resume has been called for each Suspend.
func (f *Flow) Suspend() {
	f.mu.Lock()
	f.suspensions++
	f.mu.Unlock()
}

// Resume undoes one Suspend and restarts task execution when no
// suspensions remain. Resume reports whether it had a matching Suspend;
// an unbalanced Resume has no effect and returns false.
func (f *Flow) Resume() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.suspensions == 0 {
		return false
	}
	f.suspensions--
	f.startDrainLocked()
	return true
}

// Suspended reports whether the flow currently has outstanding
// suspensions.
func (f *Flow) Suspended() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.suspensions > 0
}

// IsCurrent reports whether ctx belongs to a task currently executing on
// this flow. Callers already on the flow must not schedule work and wait
// for it, as the flow would never get around to running it.
func (f *Flow) IsCurrent(ctx context.Context) bool {
	return ctx != nil && ctx.Value(flowKey{}) == f
}

// startDrainLocked spawns the drain goroutine if tasks are runnable and
// no drainer is active. Callers must hold f.mu.
func (f *Flow) startDrainLocked() {
	if f.draining || f.suspensions > 0 || len(f.queue) == 0 {
		return
	}
	f.draining = true
	go f.drain()
}

// drain runs queued tasks until the queue empties or the flow is
// suspended. At most one drain goroutine exists at a time, which is what
// makes execution serial.
func (f *Flow) drain() {
	for {
		f.mu.Lock()
		if f.suspensions > 0 || len(f.queue) == 0 {
			f.draining = false
			f.mu.Unlock()
			return
		}
		next := f.queue[0]
		f.queue = f.queue[1:]
		f.mu.Unlock()

		ctx := next.ctx
		if ctx == nil {
			ctx = context.Background()
		}
		next.task(context.WithValue(ctx, flowKey{}, f))
	}
}
