package lazy

import (
	"bytes"
	"errors"
	"fmt"
	"iter"
	"runtime"
	"strconv"
	"sync"

	"github.com/npillmayer/fpx"
	"github.com/npillmayer/fpx/maybe"
	"github.com/npillmayer/fpx/result"
)

// Errors raised by list operations. All of them surface as panics: they mark
// contract violations (empty-list access, negative counts) or a poisoned
// cell, not conditions a caller is expected to branch on. Use the Try…
// variants for non-failing access.
var (
	// ErrEmptyList is raised by Head and Tail on an empty list.
	ErrEmptyList = errors.New("lazy list is empty")
	// ErrBlackHole is raised when a suspended computation forces the very
	// cell it is supposed to produce. Without this check such a cycle would
	// deadlock or recurse forever.
	ErrBlackHole = errors.New("lazy cell forced from within its own evaluation")
	// ErrNegativeCount is raised by Take, Skip and Truncate.
	ErrNegativeCount = errors.New("negative element count")
	// ErrNotEnoughElements is raised by Take and Skip when the list runs out
	// before the requested count is reached.
	ErrNotEnoughElements = errors.New("lazy list holds fewer elements than requested")
	// ErrNotFound is raised by Find and Pick when no element matches.
	ErrNotFound = errors.New("no matching element in lazy list")
)

// cell is the forced shape of a list node. The empty cell is marked by a nil
// tail; a cons cell always links to a non-nil tail list.
type cell[T any] struct {
	head T
	tail *List[T]
}

// Evaluation states of a list node.
const (
	delayed uint32 = iota // suspended, thunk not yet run
	busy                  // thunk running on some goroutine
	forced                // outcome cached, terminal
)

// List is a lazily-evaluated persistent list of elements of type T. Use the
// constructor functions to obtain one; the zero value is not useful.
//
// A List value is freely shareable between goroutines. Cells are immutable
// once forced; forcing itself is internally synchronized.
type List[T any] struct {
	mx      sync.Mutex
	status  uint32
	thunk   func() *List[T] // non-nil iff status == delayed
	gid     uint64          // evaluating goroutine, valid while busy
	barrier chan struct{}   // closed when forced
	res     result.Result[cell[T]]
}

// --- Construction ----------------------------------------------------------

// Empty returns the empty list.
func Empty[T any]() *List[T] {
	return &List[T]{status: forced, res: result.Ok(cell[T]{})}
}

// Singleton returns a list holding exactly the element x.
func Singleton[T any](x T) *List[T] {
	return Cons(x, Empty[T]())
}

// Cons returns a list with head x in front of list tail. Both are strict;
// nothing is deferred. A nil tail is treated as the empty list.
func Cons[T any](x T, tail *List[T]) *List[T] {
	if tail == nil {
		tail = Empty[T]()
	}
	return &List[T]{status: forced, res: result.Ok(cell[T]{head: x, tail: tail})}
}

// ConsDelayed returns a list with a strict head x and a tail that is not
// computed until accessed.
func ConsDelayed[T any](x T, tail func() *List[T]) *List[T] {
	return Cons(x, Delayed(tail))
}

// Delayed returns a list which defers the computation of even its first
// cell, including the decision whether the list is empty at all. thunk runs
// at most once; its outcome is cached.
func Delayed[T any](thunk func() *List[T]) *List[T] {
	return &List[T]{
		status:  delayed,
		thunk:   thunk,
		barrier: make(chan struct{}),
	}
}

// Repeat returns the infinite list of x repeated. The list is a single
// self-referential cell, so forcing any prefix of it is O(1) in space.
func Repeat[T any](x T) *List[T] {
	l := &List[T]{status: forced}
	l.res = result.Ok(cell[T]{head: x, tail: l})
	return l
}

// Unfold builds a list from successive seed states: gen maps a state to the
// next element together with the follow-up state, or to Nothing to end the
// list. Elements are produced lazily, one cell per forced access.
func Unfold[T, S any](gen func(S) maybe.Maybe[fpx.Pair[T, S]], seed S) *List[T] {
	return Delayed(func() *List[T] {
		m := gen(seed)
		if !maybe.IsJust(m) {
			return Empty[T]()
		}
		p := m.WithDefault(fpx.Pair[T, S]{})
		return Cons(p.Left, Unfold(gen, p.Right))
	})
}

// OfSlice returns a list of the elements of s. The cells are built eagerly;
// s is not retained.
func OfSlice[T any](s []T) *List[T] {
	l := Empty[T]()
	for i := len(s) - 1; i >= 0; i-- {
		l = Cons(s[i], l)
	}
	return l
}

// OfSeq adapts a single-pass iterator sequence into a list. The sequence is
// pulled lazily, one element per forced cell, and released only when the
// list is forced through to its end. A caller who abandons the list midway
// keeps the sequence open until the list becomes garbage.
func OfSeq[T any](seq iter.Seq[T]) *List[T] {
	next, stop := iter.Pull(seq)
	var chain func() *List[T]
	chain = func() *List[T] {
		x, ok := next()
		if !ok {
			stop()
			return Empty[T]()
		}
		return ConsDelayed(x, chain)
	}
	return Delayed(chain)
}

// --- Forcing ---------------------------------------------------------------

// force materializes the first cell of l, evaluating the suspended
// computation if necessary, and returns it. A cached failure panics again
// with the cached error.
func (l *List[T]) force() cell[T] {
	l.mx.Lock()
	switch l.status {
	case forced:
		res := l.res
		l.mx.Unlock()
		return unwrap(res)
	case busy:
		if l.gid == goid() {
			l.mx.Unlock()
			panic(ErrBlackHole)
		}
		barrier := l.barrier
		l.mx.Unlock()
		<-barrier
		return l.force()
	}
	// delayed: this goroutine evaluates
	l.status = busy
	l.gid = goid()
	thunk := l.thunk
	l.thunk = nil
	l.mx.Unlock()
	//
	res := run(thunk)
	l.mx.Lock()
	l.res = res
	l.status = forced
	l.gid = 0
	close(l.barrier)
	l.mx.Unlock()
	return unwrap(res)
}

// run evaluates a thunk down to a cell, converting a panic into a cached
// failure.
func run[T any](thunk func() *List[T]) (res result.Result[cell[T]]) {
	defer func() {
		if p := recover(); p != nil {
			err, ok := p.(error)
			if !ok {
				err = fmt.Errorf("lazy list computation panicked: %v", p)
			}
			tracer().Errorf("lazy cell poisoned: %v", err)
			res = result.Err[cell[T]](err)
		}
	}()
	l := thunk()
	if l == nil {
		l = Empty[T]()
	}
	return result.Ok(l.force())
}

func unwrap[T any](res result.Result[cell[T]]) cell[T] {
	if err := res.Error(); err != nil {
		panic(err)
	}
	return res.WithDefault(cell[T]{})
}

// goid returns the id of the calling goroutine, parsed from its stack
// header. Used solely to detect re-entrant forcing.
func goid() uint64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	fields := bytes.Fields(buf) // "goroutine <id> [running]:"
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	assertThat(err == nil, "cannot parse goroutine id from %q", buf)
	return id
}

// --- Access ----------------------------------------------------------------

// IsEmpty forces the first cell and reports whether the list is empty.
func (l *List[T]) IsEmpty() bool {
	return l.force().tail == nil
}

// Head forces the first cell and returns its element. Head panics with
// ErrEmptyList on an empty list.
func (l *List[T]) Head() T {
	c := l.force()
	if c.tail == nil {
		panic(fmt.Errorf("lazy.Head: %w", ErrEmptyList))
	}
	return c.head
}

// Tail forces the first cell and returns the rest of the list. Tail panics
// with ErrEmptyList on an empty list.
func (l *List[T]) Tail() *List[T] {
	c := l.force()
	if c.tail == nil {
		panic(fmt.Errorf("lazy.Tail: %w", ErrEmptyList))
	}
	return c.tail
}

// TryHead is the non-failing variant of Head.
func (l *List[T]) TryHead() maybe.Maybe[T] {
	c := l.force()
	if c.tail == nil {
		return maybe.Nothing[T]()
	}
	return maybe.Just(c.head)
}

// TryHeadTail decomposes the list into head and tail, if non-empty. Exactly
// the first cell is forced.
func (l *List[T]) TryHeadTail() maybe.Maybe[fpx.Pair[T, *List[T]]] {
	c := l.force()
	if c.tail == nil {
		return maybe.Nothing[fpx.Pair[T, *List[T]]]()
	}
	return maybe.Just(fpx.P(c.head, c.tail))
}

// Length forces the entire list and returns its element count. On an
// infinite list, Length does not terminate.
func (l *List[T]) Length() int {
	n := 0
	for c := l.force(); c.tail != nil; c = c.tail.force() {
		n++
	}
	return n
}

// ForcedLength reports how many cells have already been forced, without
// forcing anything itself. A partially-consumed list, finite or infinite,
// reports just its materialized prefix, which makes ForcedLength useful for
// introspecting how far a shared list has been consumed. On a cyclic list
// such as Repeat, whose every cell is materialized, ForcedLength does not
// terminate, just like Length.
func (l *List[T]) ForcedLength() int {
	n := 0
	for {
		l.mx.Lock()
		if l.status != forced {
			l.mx.Unlock()
			return n
		}
		res := l.res
		l.mx.Unlock()
		if res.Error() != nil {
			return n
		}
		c := res.WithDefault(cell[T]{})
		if c.tail == nil {
			return n
		}
		n++
		l = c.tail
	}
}

// Iter forces the entire list, calling f on each element in order.
func (l *List[T]) Iter(f func(T)) {
	for c := l.force(); c.tail != nil; c = c.tail.force() {
		f(c.head)
	}
}

// ToSlice forces the entire list and collects its elements into a slice.
func (l *List[T]) ToSlice() []T {
	var s []T
	l.Iter(func(x T) {
		s = append(s, x)
	})
	return s
}

// Seq returns an iterator sequence over the list. Cells are forced as the
// sequence is consumed, so ranging over a prefix forces only that prefix.
func (l *List[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for c := l.force(); c.tail != nil; c = c.tail.force() {
			if !yield(c.head) {
				return
			}
		}
	}
}

// --- Matching --------------------------------------------------------------

// Matcher discriminates the two cases of a list. It is intended for use in a
// switch statement; the Cons arm fills the pointer arguments:
//
//	var h int
//	var t *lazy.List[int]
//	switch m := l.Match(); m {
//	case m.Cons(&h, &t):
//		…
//	case m.Nil():
//		…
//	}
//
// Obtaining a Matcher forces exactly the first cell, nothing more.
type Matcher[T any] interface {
	Cons(*T, **List[T]) Matcher[T]
	Nil() Matcher[T]
}

// Match forces the first cell and returns a Matcher over it.
func (l *List[T]) Match() Matcher[T] {
	return &matcher[T]{c: l.force()}
}

type matcher[T any] struct {
	c cell[T]
}

func (lm *matcher[T]) Cons(h *T, t **List[T]) Matcher[T] {
	if lm.c.tail != nil {
		*h = lm.c.head
		*t = lm.c.tail
		return lm
	}
	return nil
}

func (lm *matcher[T]) Nil() Matcher[T] {
	if lm.c.tail == nil {
		return lm
	}
	return nil
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("lazy: "+msg, msgargs...)
		panic(msg)
	}
}
