/*
Package bimap implements a persistent (immutable) bidirectional map: a
bijective association between keys of two ordered domains, with lookups in
either direction.

A Bimap holds two ordered persistent maps, forward and backward, which are
exact inverses of each other at every observable point. Every mutating
operation returns a new incarnation of the Bimap, sharing structure with the
original; both internal maps are rebuilt inside a single call, so no caller
can ever observe them disagreeing.
*/
package bimap

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fpx.bimap'.
func tracer() tracing.Trace {
	return tracing.Select("fpx.bimap")
}
