package lifecycle

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

var errInvalidStage = errors.New("invalid lifecycle stage")

// IsInvalidStage returns true if the cause of the error is an operation
// attempted from a stage that does not permit it. This is for example
// returned when initializing a resource that is being destroyed, or
// destroying a resource that was never initialized. It indicates a
// caller ordering bug rather than a failure of the resource itself.
func IsInvalidStage(err error) bool {
	return errors.Is(err, errInvalidStage)
}

func invalidStageError(op string, name string, stage Stage) error {
	return fmt.Errorf("cannot %s %q in stage %s: %w",
		op, name, stage, errInvalidStage)
}

// HookError indicates that a resource's init or destroy hook failed. It
// wraps the hook's original error, which is the reason the resource
// itself could not start or stop.
type HookError struct {
	// Op is the operation whose hook failed, "init" or "destroy".
	Op string
	// Name of the resource the hook belongs to.
	Name string
	// Err is the error returned (or the panic recovered) by the hook.
	Err error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("%s hook of %q failed: %v", e.Op, e.Name, e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

// IsHookFailure returns true if the error originates from a failing init
// or destroy hook, as opposed to an invalid-stage ordering error.
func IsHookFailure(err error) bool {
	var hookErr *HookError
	return errors.As(err, &hookErr)
}

// DestructionErrors extracts the individual per-child causes from the
// error returned by a Manager destroy, in the order the failures were
// encountered (reverse registration order). It returns nil if err does
// not carry an aggregate.
func DestructionErrors(err error) []error {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return nil
	}
	return merr.Errors
}
