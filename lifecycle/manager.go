package lifecycle

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/RedWinterDawn/myco-commons-sub001/promise"
)

// ManagerOptions contains options for a Manager.
type ManagerOptions struct {
	// InitMode defines how children are initialized (default:
	// InitConcurrent). Children are always destroyed consecutively in
	// reverse registration order, regardless of this setting.
	InitMode InitMode
	// Restartable permits Init after the manager has been Destroyed. The
	// children must themselves be restartable for this to be of any use.
	Restartable bool
	// Sets the Logger to use to log lifecycle events. If nil, the
	// logging messages are discarded.
	Logger Logger
}

func (o ManagerOptions) copy() *ManagerOptions {
	return &o
}

// Manager composes an ordered collection of children behind a single
// Lifecycled facade. It is itself a Base, so it has its own stage
// machine; its hooks fan out to the children.
//
// When the manager's init fails, children that already initialized are
// left initialized: the manager does not roll back. Issuing a Destroy on
// the manager, which is legal from InitFailed, tears them down.
type Manager struct {
	*Base

	mode     InitMode
	children []Lifecycled
}

// NewManager creates a Manager owning the provided children. The id is
// used in logs and error messages; if empty, a generated one is used. It
// returns nil if any child is nil.
func NewManager(id string, children ...Lifecycled) *Manager {
	return NewManagerWithOptions(id, nil, children...)
}

// NewManagerWithOptions creates a Manager owning the provided children,
// with the provided options. It returns nil if any child is nil.
func NewManagerWithOptions(id string, opts *ManagerOptions,
	children ...Lifecycled) *Manager {
	for _, child := range children {
		if child == nil {
			return nil
		}
	}
	if opts == nil {
		opts = &ManagerOptions{}
	}
	if id == "" {
		id = "manager-" + uuid.NewString()
	}

	m := &Manager{
		mode:     opts.InitMode,
		children: append([]Lifecycled(nil), children...),
	}
	m.Base = NewBaseWithOptions(&Hooks{
		Name:    id,
		Init:    m.initChildren,
		Destroy: m.destroyChildren,
		// No rollback on a failed init: already-initialized children
		// stay initialized until the caller destroys the manager.
		FailedInit: NoopHook,
	}, &BaseOptions{
		Restartable: opts.Restartable,
		Logger:      opts.Logger,
	})
	return m
}

// Children returns the managed children in registration order.
func (m *Manager) Children() []Lifecycled {
	return append([]Lifecycled(nil), m.children...)
}

// initChildren is the manager's init hook.
func (m *Manager) initChildren(ctx context.Context) error {
	if m.mode == InitConsecutive {
		for _, child := range m.children {
			if _, err := child.Init(ctx).Result(); err != nil {
				return fmt.Errorf("initializing child %q: %w",
					child.Name(), err)
			}
		}
		return nil
	}

	// Concurrent: start every child, then wait for all of them to
	// settle, so that no child is abandoned mid-init when another fails.
	ps := make([]*promise.Promise[struct{}], len(m.children))
	for i, child := range m.children {
		ps[i] = child.Init(ctx)
	}
	_, err := promise.All(ps...).Result()
	return err
}

// destroyChildren is the manager's destroy hook. It iterates children in
// reverse registration order and attempts every one of them, collecting
// failures instead of stopping at the first.
func (m *Manager) destroyChildren(ctx context.Context) error {
	var errs *multierror.Error
	for i := len(m.children) - 1; i >= 0; i-- {
		child := m.children[i]
		if child.Stage() == Uninitialized {
			// Possible under InitConsecutive after an earlier child
			// failed: this child never started, nothing to tear down.
			m.info("skipping child that never started", "child",
				child.Name())
			continue
		}
		if _, err := child.Destroy(ctx).Result(); err != nil {
			m.error(err, "destroying child failed", "child", child.Name())
			errs = multierror.Append(errs, err)
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return fmt.Errorf("destroying children of %q: %w", m.Name(), err)
	}
	return nil
}
