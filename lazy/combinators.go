package lazy

import (
	"fmt"

	"github.com/npillmayer/fpx"
	"github.com/npillmayer/fpx/maybe"
)

// Combinators over lazy lists. All of them return a new list and leave their
// inputs untouched, and none of them force more of the input than is needed
// to produce the amount of output actually consumed.

// Append returns the concatenation of l and other. Cells of l are forced one
// by one as the result is consumed; other is not touched before l ends.
func (l *List[T]) Append(other *List[T]) *List[T] {
	return Delayed(func() *List[T] {
		c := l.force()
		if c.tail == nil {
			return other
		}
		return Cons(c.head, c.tail.Append(other))
	})
}

// Concat flattens a list of lists into a single list. Both the outer list
// and the inner lists may be infinite; everything is forced on demand.
func Concat[T any](lists *List[*List[T]]) *List[T] {
	return Delayed(func() *List[T] {
		c := lists.force()
		if c.tail == nil {
			return Empty[T]()
		}
		inner := c.head
		if inner == nil {
			inner = Empty[T]()
		}
		return inner.Append(Concat(c.tail))
	})
}

// Map returns the list of f applied to each element of l.
func Map[T, S any](f func(T) S, l *List[T]) *List[S] {
	return Delayed(func() *List[S] {
		c := l.force()
		if c.tail == nil {
			return Empty[S]()
		}
		return Cons(f(c.head), Map(f, c.tail))
	})
}

// Map2 returns the list of f applied to elements of l1 and l2 pairwise. The
// result ends with the shorter of the two inputs.
func Map2[T, U, S any](f func(T, U) S, l1 *List[T], l2 *List[U]) *List[S] {
	return Delayed(func() *List[S] {
		c1 := l1.force()
		if c1.tail == nil {
			return Empty[S]()
		}
		c2 := l2.force()
		if c2.tail == nil {
			return Empty[S]()
		}
		return Cons(f(c1.head, c2.head), Map2(f, c1.tail, c2.tail))
	})
}

// Zip pairs up the elements of l1 and l2. The result ends with the shorter
// of the two inputs.
func Zip[T, U any](l1 *List[T], l2 *List[U]) *List[fpx.Pair[T, U]] {
	return Map2(fpx.P[T, U], l1, l2)
}

// Collect maps f over l and flattens the resulting lists into one.
func Collect[T, S any](f func(T) *List[S], l *List[T]) *List[S] {
	return Concat(Map(f, l))
}

// Filter returns the list of elements of l satisfying pred. Forcing one cell
// of the result forces cells of l up to and including the next match.
func (l *List[T]) Filter(pred func(T) bool) *List[T] {
	return Delayed(func() *List[T] {
		cur := l
		for {
			c := cur.force()
			if c.tail == nil {
				return Empty[T]()
			}
			if pred(c.head) {
				return Cons(c.head, c.tail.Filter(pred))
			}
			cur = c.tail
		}
	})
}

// Scan returns the list of successive accumulator states of folding f over
// l, starting with, and including, zero. The result is one element longer
// than l.
func Scan[T, S any](f func(S, T) S, zero S, l *List[T]) *List[S] {
	return ConsDelayed(zero, func() *List[S] {
		c := l.force()
		if c.tail == nil {
			return Empty[S]()
		}
		return Scan(f, f(zero, c.head), c.tail)
	})
}

// Take returns the list of the first n elements of l. A negative n panics
// immediately with ErrNegativeCount. If l turns out to hold fewer than n
// elements, the shortfall panics with ErrNotEnoughElements, but lazily: only
// once consumption of the result actually reaches the missing cell.
func (l *List[T]) Take(n int) *List[T] {
	if n < 0 {
		panic(fmt.Errorf("lazy.Take(%d): %w", n, ErrNegativeCount))
	}
	if n == 0 {
		return Empty[T]()
	}
	return Delayed(func() *List[T] {
		c := l.force()
		if c.tail == nil {
			panic(fmt.Errorf("lazy.Take: %w", ErrNotEnoughElements))
		}
		return Cons(c.head, c.tail.Take(n-1))
	})
}

// Skip returns l without its first n elements. The skipped prefix is forced
// as soon as the result's first cell is; if l holds fewer than n elements,
// that forcing panics with ErrNotEnoughElements. A negative n panics
// immediately with ErrNegativeCount.
func (l *List[T]) Skip(n int) *List[T] {
	if n < 0 {
		panic(fmt.Errorf("lazy.Skip(%d): %w", n, ErrNegativeCount))
	}
	return Delayed(func() *List[T] {
		cur := l
		for i := 0; i < n; i++ {
			c := cur.force()
			if c.tail == nil {
				panic(fmt.Errorf("lazy.Skip: %w", ErrNotEnoughElements))
			}
			cur = c.tail
		}
		return cur
	})
}

// Truncate is Take without the shortfall failure: the result holds at most
// n elements, fewer if l ends early. A negative n panics immediately with
// ErrNegativeCount.
func (l *List[T]) Truncate(n int) *List[T] {
	if n < 0 {
		panic(fmt.Errorf("lazy.Truncate(%d): %w", n, ErrNegativeCount))
	}
	if n == 0 {
		return Empty[T]()
	}
	return Delayed(func() *List[T] {
		c := l.force()
		if c.tail == nil {
			return Empty[T]()
		}
		return Cons(c.head, c.tail.Truncate(n-1))
	})
}

// Iterate returns the infinite list x, f(x), f(f(x)), … of repeated
// applications of f. Each application happens once, when its cell is first
// forced.
func Iterate[T any](f func(T) T, x T) *List[T] {
	return ConsDelayed(x, func() *List[T] {
		return Iterate(f, f(x))
	})
}

// --- Searching -------------------------------------------------------------

// TryFind returns the first element of l satisfying pred. On an infinite
// list with no matching element, TryFind does not terminate.
func (l *List[T]) TryFind(pred func(T) bool) maybe.Maybe[T] {
	for c := l.force(); c.tail != nil; c = c.tail.force() {
		if pred(c.head) {
			return maybe.Just(c.head)
		}
	}
	return maybe.Nothing[T]()
}

// Find returns the first element of l satisfying pred, or ErrNotFound if no
// element does.
func (l *List[T]) Find(pred func(T) bool) (T, error) {
	for c := l.force(); c.tail != nil; c = c.tail.force() {
		if pred(c.head) {
			return c.head, nil
		}
	}
	var none T
	return none, fmt.Errorf("lazy.Find: %w", ErrNotFound)
}

// TryPick returns the first Just produced by applying chooser to the
// elements of l. On an infinite list where chooser never produces a value,
// TryPick does not terminate.
func TryPick[T, S any](chooser func(T) maybe.Maybe[S], l *List[T]) maybe.Maybe[S] {
	for c := l.force(); c.tail != nil; c = c.tail.force() {
		if m := chooser(c.head); maybe.IsJust(m) {
			return m
		}
	}
	return maybe.Nothing[S]()
}

// Pick returns the first value produced by applying chooser to the elements
// of l, or ErrNotFound if chooser produces none.
func Pick[T, S any](chooser func(T) maybe.Maybe[S], l *List[T]) (S, error) {
	for c := l.force(); c.tail != nil; c = c.tail.force() {
		if m := chooser(c.head); maybe.IsJust(m) {
			var none S
			return m.WithDefault(none), nil
		}
	}
	var none S
	return none, fmt.Errorf("lazy.Pick: %w", ErrNotFound)
}
