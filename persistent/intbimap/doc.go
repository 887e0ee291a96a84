/*
Package intbimap provides a persistent bijective map specialized for
integer keys on the forward side. The forward side is backed by a
big-endian Patricia trie (package intmap), the backward side by a
persistent B-tree; lookups in either direction are fast, and the two
sides are kept as exact inverses of each other.

See package bimap for the general, fully ordered variant.
*/
package intbimap

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fpx.intbimap'.
func tracer() tracing.Trace {
	return tracing.Select("fpx.intbimap")
}
