package lifecycle

import "fmt"

// Stage represents a phase in the lifecycle state machine. Stages are
// totally ordered; a resource walks forward through them and never
// backwards, except for restartable resources which may re-enter the
// machine from Destroyed. The state machine provided by this package is
// the following:
//
//	+---------------+
//	| Uninitialized |
//	+-+-------------+
//	  |
//	+-v-------------+     +---------------+
//	| Initializing  +-----> InitFailed    |
//	+-+-------------+     +-+-------------+
//	  |                     |
//	+-v-------------+       |
//	| Initialized   |       |
//	+-+-------------+       |
//	  |                     |
//	+-v-------------+       |
//	| Destroying    <-------+
//	+-+-------------+
//	  |
//	+-v-------------+
//	| Destroyed     |
//	+---------------+
//
// Note that InitFailed ranks between Initializing and Initialized: a
// resource that failed to initialize has achieved Initializing, but not
// Initialized.
type Stage int32

const (
	// Uninitialized is the stage of a freshly created resource.
	Uninitialized Stage = iota
	// Initializing represents a resource whose init hook is in flight.
	Initializing
	// InitFailed represents a resource whose init hook failed.
	InitFailed
	// Initialized represents a fully initialized resource.
	Initialized
	// Destroying represents a resource whose destroy hook is in flight,
	// or whose last destroy attempt failed and may be retried.
	Destroying
	// Destroyed represents a fully torn down resource.
	Destroyed
)

// HasAchieved reports whether the resource has reached at least the
// provided stage. It is reflexive: s.HasAchieved(s) is always true.
func (s Stage) HasAchieved(target Stage) bool {
	return s >= target
}

func (s Stage) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Initializing:
		return "Initializing"
	case InitFailed:
		return "InitFailed"
	case Initialized:
		return "Initialized"
	case Destroying:
		return "Destroying"
	case Destroyed:
		return "Destroyed"
	default:
		return fmt.Sprintf("%d", int(s))
	}
}

// InitMode defines how a Manager initializes its children.
type InitMode uint8

const (
	// InitConcurrent starts every child's init at the same time. The
	// manager initializes successfully only if all children do.
	InitConcurrent InitMode = iota
	// InitConsecutive starts children strictly one after another, in
	// registration order, stopping at the first failure.
	InitConsecutive
)

func (m InitMode) String() string {
	switch m {
	case InitConcurrent:
		return "Concurrent"
	case InitConsecutive:
		return "Consecutive"
	default:
		return fmt.Sprintf("%d", int(m))
	}
}
