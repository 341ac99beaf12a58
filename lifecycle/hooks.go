package lifecycle

import "context"

// ContextHook is a context-aware hook.
type ContextHook = func(context.Context) error

// Hook is a naive hook.
type Hook = func() error

// Hooks contain the functions called by a Base to control the underlying
// resource.
type Hooks struct {
	// A friendly name for the resource (optional).
	Name string
	// Init acquires the resource. It runs off the execution flow, so it
	// may block for as long as initialization takes. Returning an error
	// (or panicking) moves the resource to InitFailed and triggers the
	// FailedInit cleanup hook.
	Init ContextHook
	// Destroy releases the resource. It runs off the execution flow.
	// Returning an error leaves the resource in Destroying, from which a
	// later Destroy call invokes this hook again; it should therefore be
	// idempotent, tearing down whatever remains.
	Destroy ContextHook
	// FailedInit releases whatever a failing Init hook partially
	// acquired. If nil, the Destroy hook function is invoked instead.
	// Errors returned by this hook are logged and never surfaced; the
	// caller always observes the original init failure.
	FailedInit ContextHook
}

func (h Hooks) copy() *Hooks {
	return &h
}
