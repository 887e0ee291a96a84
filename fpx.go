/*
Package fpx collects functional programming helpers for Go: small function
combinators in this root package, Elm-style option and result types with
pattern matchers, persistent (immutable) collections, and a memoizing lazy
list.
*/
package fpx

// Unit returns unit for any input => the zero value for T.
func Unit[T any](_ T) T {
	var a T
	return a
}

// Const returns a function that produces a.
func Const[T any](a T) func() T {
	return func() T {
		return a
	}
}

// Compose returns h = f . g
func Compose[A, B, C any](g func(a A) B, f func(b B) C) func(A) C {
	return func(a A) C {
		b := g(a)
		return f(b)
	}
}

// --- Pair ------------------------------------------------------------------

// Pair is a 2-tuple. It is the element type for bulk conversions of
// bidirectional maps and for zipping lazy lists.
type Pair[A, B any] struct {
	Left  A
	Right B
}

// P constructs a pair from its two components.
func P[A, B any](x A, y B) Pair[A, B] {
	return Pair[A, B]{x, y}
}

// Decompose returns both components of a pair.
func (p Pair[A, B]) Decompose() (A, B) {
	return p.Left, p.Right
}
