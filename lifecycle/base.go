package lifecycle

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/RedWinterDawn/myco-commons-sub001/listeners"
	"github.com/RedWinterDawn/myco-commons-sub001/promise"
	"github.com/RedWinterDawn/myco-commons-sub001/serial"
)

// BaseOptions contains options for a Base.
type BaseOptions struct {
	// Restartable permits Init after the resource has been Destroyed
	// (default: false).
	Restartable bool
	// Sets the Logger to use to log lifecycle events. If nil, the
	// logging messages are discarded.
	Logger Logger
}

func (o BaseOptions) copy() *BaseOptions {
	return &o
}

// Base is a Lifecycled built from a set of provided hooks. It owns a
// serial execution flow on which every stage transition is serialized,
// which is what makes the state machine correct without locks: the stage
// is written only while the flow is held, and read through an atomic.
//
// While an init or destroy hook is in flight the flow is suspended, so
// no other operation scheduled on the resource interleaves with the
// hook, yet no OS thread is blocked waiting for it.
//
// Base is intended to be embedded:
//
//	type Database struct {
//	    *lifecycle.Base
//	    pool *connPool
//	}
//
//	func NewDatabase() *Database {
//	    d := &Database{}
//	    d.Base = lifecycle.NewBase(&lifecycle.Hooks{
//	        Name:    "database",
//	        Init:    d.connect,
//	        Destroy: d.disconnect,
//	    })
//	    return d
//	}
type Base struct {
	// Resource hooks
	hooks *Hooks
	// Resource options
	opts *BaseOptions
	// Current stage; written only on the flow, read from anywhere.
	stage atomic.Int32
	// The owned execution flow.
	flow *serial.Flow
	// Stage listeners
	listeners listeners.Container[StageListener]
}

// NewBase creates a Base with the provided hooks. It returns nil if
// either the hook structure, the init hook or the destroy hook is nil.
func NewBase(hooks *Hooks) *Base {
	return NewBaseWithOptions(hooks, nil)
}

// NewBaseWithOptions creates a Base with the provided hooks and options.
// It returns nil if either the hook structure, the init hook or the
// destroy hook is nil.
func NewBaseWithOptions(hooks *Hooks, opts *BaseOptions) *Base {
	if hooks == nil || hooks.Init == nil || hooks.Destroy == nil {
		return nil
	}
	if opts == nil {
		opts = &BaseOptions{}
	}
	return &Base{
		hooks: hooks.copy(),
		opts:  opts.copy(),
		flow:  serial.New(),
	}
}

// Name provides a user-friendly name for the resource, that is used in
// logs and error messages.
func (b *Base) Name() string {
	return b.hooks.Name
}

// Stage returns the current stage of the resource.
func (b *Base) Stage() Stage {
	return Stage(b.stage.Load())
}

// Restartable reports whether the resource supports Init after having
// been Destroyed.
func (b *Base) Restartable() bool {
	return b.opts.Restartable
}

// AddStageListener registers a listener invoked after each committed
// stage transition. No action is taken if l is nil.
func (b *Base) AddStageListener(l StageListener) {
	b.listeners.Add(l)
}

// RemoveStageListener removes a previously registered listener. No
// action is taken if l is nil or not registered.
func (b *Base) RemoveStageListener(l StageListener) {
	b.listeners.Remove(l)
}

// Init drives the resource towards Initialized. The returned promise
// resolves once the init hook completes. See Lifecycled.Init for the
// stage rules.
func (b *Base) Init(ctx context.Context) *promise.Promise[struct{}] {
	p := promise.New[struct{}]()
	b.dispatch(ctx, func(ctx context.Context) {
		b.beginInit(ctx, p)
	})
	return p
}

// Destroy drives the resource towards Destroyed. The returned promise
// resolves once the destroy hook completes. See Lifecycled.Destroy for
// the stage rules. A Destroy issued while another one is in flight
// queues behind it on the flow, and then either no-ops (the first
// attempt succeeded) or retries the destroy hook (it failed).
func (b *Base) Destroy(ctx context.Context) *promise.Promise[struct{}] {
	p := promise.New[struct{}]()
	b.dispatch(ctx, func(ctx context.Context) {
		b.beginDestroy(ctx, p)
	})
	return p
}

// dispatch runs the task on the owned flow. When the caller is already
// executing on the flow the task runs inline; scheduling it and waiting
// would deadlock, as the flow would never get around to it.
func (b *Base) dispatch(ctx context.Context, task serial.Task) {
	if b.flow.IsCurrent(ctx) {
		task(ctx)
		return
	}
	b.flow.Schedule(ctx, task)
}

// beginInit guards and starts the init sequence. It runs on the flow.
func (b *Base) beginInit(ctx context.Context, p *promise.Promise[struct{}]) {
	switch stage := b.Stage(); stage {
	case Initialized:
		b.settle(p, nil)
		return
	case Uninitialized:
	case Destroyed:
		if !b.Restartable() {
			b.settle(p, invalidStageError("init", b.Name(), stage))
			return
		}
	default:
		b.settle(p, invalidStageError("init", b.Name(), stage))
		return
	}

	b.transition(Initializing, nil)
	b.flow.Suspend()
	go b.runInit(ctx, p)
}

// runInit invokes the init hook and commits its outcome. The flow stays
// suspended until this function resumes it, exactly once on every path.
func (b *Base) runInit(ctx context.Context, p *promise.Promise[struct{}]) {
	err := runHook(ctx, b.hooks.Init)
	if err == nil {
		b.transition(Initialized, nil)
		b.resume()
		b.settle(p, nil)
		return
	}

	b.transition(InitFailed, err)

	// Release whatever the failing hook partially acquired. A cleanup
	// failure is logged, never surfaced: the caller must see the
	// original init failure.
	cleanup := b.hooks.FailedInit
	if cleanup == nil {
		cleanup = b.hooks.Destroy
	}
	if cleanupErr := runHook(ctx, cleanup); cleanupErr != nil {
		b.error(cleanupErr, "cleanup after failed init failed")
	}

	b.resume()
	b.settle(p, &HookError{Op: "init", Name: b.Name(), Err: err})
}

// beginDestroy guards and starts the destroy sequence. It runs on the
// flow.
func (b *Base) beginDestroy(ctx context.Context, p *promise.Promise[struct{}]) {
	switch stage := b.Stage(); stage {
	case Destroyed:
		b.settle(p, nil)
		return
	case Initialized, InitFailed, Destroying:
	default:
		b.settle(p, invalidStageError("destroy", b.Name(), stage))
		return
	}

	b.transition(Destroying, nil)
	b.flow.Suspend()
	go b.runDestroy(ctx, p)
}

// runDestroy invokes the destroy hook and commits its outcome. On
// failure the resource stays in Destroying so that a later Destroy call
// retries the hook.
func (b *Base) runDestroy(ctx context.Context, p *promise.Promise[struct{}]) {
	if err := runHook(ctx, b.hooks.Destroy); err != nil {
		b.resume()
		b.settle(p, &HookError{Op: "destroy", Name: b.Name(), Err: err})
		return
	}
	b.transition(Destroyed, nil)
	b.resume()
	b.settle(p, nil)
}

// transition commits a stage change and notifies listeners. It must only
// be called on the flow, or from a hook runner while the flow is
// suspended, preserving the single-writer discipline. Re-entering the
// current stage is a no-op.
func (b *Base) transition(to Stage, cause error) {
	from := Stage(b.stage.Swap(int32(to)))
	if from == to {
		return
	}
	b.info("transitioned to stage", "from", from.String(), "to", to.String())
	t := Transition{
		Name:  b.Name(),
		From:  from,
		To:    to,
		Cause: cause,
	}
	b.listeners.Each(func(l StageListener) {
		l.StageChanged(t)
	})
}

// resume resumes the flow after a hook completes. An unbalanced resume
// is a bug in this package; it is logged rather than silently ignored.
func (b *Base) resume() {
	if !b.flow.Resume() {
		b.error(nil, "execution flow resumed without matching suspend")
	}
}

// settle resolves or rejects a per-call promise. Settling the same
// promise twice is a programming error; it is logged, never silently
// double-fired.
func (b *Base) settle(p *promise.Promise[struct{}], err error) {
	var fired bool
	if err != nil {
		fired = p.Reject(err)
	} else {
		fired = p.Resolve(struct{}{})
	}
	if !fired {
		b.error(err, "operation result settled more than once")
	}
}

// info logs an information message.
func (b *Base) info(msg string, keysAndValues ...interface{}) {
	if b.opts.Logger != nil {
		b.opts.Logger.Info(msg, append(keysAndValues, "name", b.Name())...)
	}
}

// error logs an error.
func (b *Base) error(err error, msg string, keysAndValues ...interface{}) {
	if b.opts.Logger != nil {
		b.opts.Logger.Error(err, msg, append(keysAndValues, "name",
			b.Name())...)
	}
}

// runHook invokes a hook, converting a panic into an error so that a
// synchronous throw is treated identically to a returned failure.
func runHook(ctx context.Context, hook ContextHook) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("hook panicked: %v", r)
		}
	}()
	return hook(ctx)
}
