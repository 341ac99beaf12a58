package lifecycle

import "context"

// DropContext is a helper function wrapping a context-naive hook as a
// context hook. The context provided to the resulting ContextHook is
// discarded.
func DropContext(hook Hook) ContextHook {
	if hook == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return hook()
	}
}

// NoopHook is a hook that does nothing and succeeds. It is convenient
// for resources that only need one side of the init/destroy pair.
func NoopHook(context.Context) error {
	return nil
}
