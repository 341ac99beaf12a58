package lifecycle

import (
	"context"
	"fmt"

	"github.com/RedWinterDawn/myco-commons-sub001/promise"
)

// DependencyListener bridges a one-way dependency between two resources.
// Registered as a stage listener on an upstream resource, it exposes a
// one-shot Ready promise that resolves when the upstream reaches
// Initialized and rejects when the upstream fails or begins destruction.
// A dependent resource typically waits on Ready in its init hook.
//
// When the upstream becomes unavailable, the listener additionally
// checks, on the dependent's own execution flow, whether the dependent
// is Initializing or Initialized, and if so destroys it, logging the
// outcome without propagating it further.
//
// A listener watches a single initialization window; create a fresh one
// per Init attempt.
type DependencyListener struct {
	dependent *Base
	ready     *promise.Promise[struct{}]
}

// NewDependencyListener creates a listener that tears down the provided
// dependent when the watched upstream becomes unavailable. It returns
// nil if dependent is nil.
func NewDependencyListener(dependent *Base) *DependencyListener {
	if dependent == nil {
		return nil
	}
	return &DependencyListener{
		dependent: dependent,
		ready:     promise.New[struct{}](),
	}
}

// Ready returns the one-shot promise tracking the upstream. It resolves
// when the upstream reaches Initialized and rejects with an
// invalid-stage error naming the upstream when it fails or begins
// destruction.
func (d *DependencyListener) Ready() *promise.Promise[struct{}] {
	return d.ready
}

// StageChanged implements StageListener.
func (d *DependencyListener) StageChanged(t Transition) {
	switch {
	case t.To == Initialized:
		// No-op if the one-shot result already settled.
		d.ready.Resolve(struct{}{})
	case t.To == InitFailed || t.To.HasAchieved(Destroying):
		d.ready.Reject(fmt.Errorf("dependency %q unavailable in stage %s: %w",
			t.Name, t.To, errInvalidStage))
		d.teardownDependent(t.Name)
	}
}

// teardownDependent destroys the dependent if the upstream loss caught
// it initializing or initialized. The stage check runs on the
// dependent's flow; if the dependent is mid-init, the flow is suspended
// and the check naturally waits for the init attempt to settle.
func (d *DependencyListener) teardownDependent(upstream string) {
	d.dependent.flow.Schedule(context.Background(),
		func(ctx context.Context) {
			stage := d.dependent.Stage()
			if stage != Initializing && stage != Initialized {
				return
			}
			d.dependent.info("destroying after losing dependency",
				"dependency", upstream)
			// Running on the flow already, Destroy executes inline and
			// only starts the sequence; the outcome is settled later.
			p := d.dependent.Destroy(ctx)
			go func() {
				if _, err := p.Result(); err != nil {
					d.dependent.error(err,
						"destroying after losing dependency failed",
						"dependency", upstream)
					return
				}
				d.dependent.info("destroyed after losing dependency",
					"dependency", upstream)
			}()
		})
}
