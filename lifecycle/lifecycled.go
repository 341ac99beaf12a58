package lifecycle

import (
	"context"

	"github.com/RedWinterDawn/myco-commons-sub001/promise"
)

// Lifecycled represents a resource that transitions through the lifecycle
// stages. It exposes a set of asynchronous methods to drive the resource
// between them.
type Lifecycled interface {
	// Name provides a user-friendly name for the resource, that is used
	// in logs and error messages.
	Name() string
	// Init drives the resource from Uninitialized towards Initialized.
	// The returned promise resolves once initialization completes, or
	// rejects with the reason it could not. Init is idempotent when the
	// resource is already Initialized. Calling Init from any other stage
	// rejects with an invalid-stage error, except from Destroyed when
	// the resource is restartable.
	Init(ctx context.Context) *promise.Promise[struct{}]
	// Destroy drives the resource towards Destroyed. It is idempotent
	// when the resource is already Destroyed, and reentrant: calling it
	// again after a failed attempt retries teardown of whatever remains.
	// Destroying a resource that never started an initialization attempt
	// (stage Uninitialized or Initializing) rejects with an
	// invalid-stage error.
	Destroy(ctx context.Context) *promise.Promise[struct{}]
	// Stage returns the current stage of the resource. It never blocks
	// and reflects the last committed transition.
	Stage() Stage
	// Restartable reports whether the resource supports Init after
	// having been Destroyed.
	Restartable() bool
}

// Transition describes a committed stage change of a resource. It is
// passed to stage listeners.
type Transition struct {
	// Name of the resource that transitioned.
	Name string
	// The previous stage of the resource.
	From Stage
	// The new stage of the resource.
	To Stage
	// The error that caused this transition, if any. Set when entering
	// InitFailed.
	Cause error
}

// StageListener observes the stage changes of a Watchable resource.
type StageListener interface {
	// StageChanged is invoked after each committed transition. It runs
	// on the resource's execution flow and must not block.
	StageChanged(t Transition)
}

// Watchable is implemented by resources whose stage changes can be
// observed.
type Watchable interface {
	// AddStageListener registers a listener. No action is taken if the
	// listener is nil.
	AddStageListener(l StageListener)
	// RemoveStageListener removes a previously registered listener. No
	// action is taken if the listener is nil or not registered.
	RemoveStageListener(l StageListener)
}
