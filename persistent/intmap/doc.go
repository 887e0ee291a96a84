/*
Package intmap implements a persistent (immutable) map with integer keys,
represented as a big-endian Patricia trie. Dense key sets share long common
prefixes, making operations close to O(1) amortized; the worst case is
bounded by the word size.
*/
package intmap

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fpx.intmap'.
func tracer() tracing.Trace {
	return tracing.Select("fpx.intmap")
}
