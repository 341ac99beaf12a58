// Package lifecycle provides asynchronous lifecycle management
// primitives for long-lived resources.
//
// A resource implementing the Lifecycled contract moves through an
// ordered set of stages, from Uninitialized through Initializing to
// Initialized, and later through Destroying to Destroyed. A typical
// resource embeds Base and supplies its own init and destroy hooks:
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
//
//	db := NewDatabase()
//	if _, err := db.Init(ctx).Result(); err != nil {
//	    // the database could not start
//	}
//
// Out of the box, this provides you with:
//
//   - Guarded stage transitions: operations invoked from the wrong stage
//     reject with an invalid-stage error instead of corrupting state
//   - Serialized execution: all transitions of one resource happen on an
//     owned serial flow, with the hook itself running asynchronously
//   - Failure recovery: a failing init hook triggers a cleanup hook that
//     releases partially acquired resources
//   - Idempotent re-init and retriable destroy
//   - Stage listeners, for observing transitions
//
// This package also provides a Manager, which composes multiple
// Lifecycled resources into a single one that initializes them
// concurrently or consecutively and always destroys them in reverse
// registration order, and a DependencyListener, which tears a dependent
// resource down when a resource it depends on goes away.
package lifecycle
