/*
Package lazy provides a persistent, lazily-evaluated singly-linked list.

A List is a chain of cells, each of which is computed on demand, at most
once, and cached forever. Lists may be infinite; operations force no more
cells than they need. Forcing is safe under concurrent access: when several
goroutines race to force the same cell, exactly one of them evaluates the
suspended computation and the others block until its outcome, success or
failure, is cached.

A suspended computation that fails stays failed: the error is cached and
re-raised on every subsequent access to the cell, and the computation is
never re-attempted.
*/
package lazy

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fpx.lazy'.
func tracer() tracing.Trace {
	return tracing.Select("fpx.lazy")
}
