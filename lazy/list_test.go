package lazy_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	"github.com/npillmayer/fpx"
	"github.com/npillmayer/fpx/lazy"
	"github.com/npillmayer/fpx/maybe"
)

// expectPanic runs f and asserts that it panics with an error matching want.
func expectPanic(t *testing.T, want error, f func()) {
	t.Helper()
	defer func() {
		p := recover()
		if p == nil {
			t.Fatalf("expected panic with %v, got none", want)
		}
		err, ok := p.(error)
		if !ok {
			t.Fatalf("expected panic payload to be an error, is %v", p)
		}
		if !errors.Is(err, want) {
			t.Errorf("expected panic with %v, is %v", want, err)
		}
	}()
	f()
}

func TestListEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fpx.lazy")
	defer teardown()
	//
	l := lazy.Empty[int]()
	if !l.IsEmpty() {
		t.Errorf("expected empty list to be empty, isn't")
	}
	if l.Length() != 0 {
		t.Errorf("expected empty list to have length 0, is %d", l.Length())
	}
	expectPanic(t, lazy.ErrEmptyList, func() { l.Head() })
	expectPanic(t, lazy.ErrEmptyList, func() { l.Tail() })
}

func TestListConsAndHead(t *testing.T) {
	l := lazy.Cons(1, lazy.Cons(2, lazy.Singleton(3)))
	assert.False(t, l.IsEmpty())
	assert.Equal(t, 1, l.Head())
	assert.Equal(t, 2, l.Tail().Head())
	assert.Equal(t, 3, l.Length())
	assert.Equal(t, []int{1, 2, 3}, l.ToSlice())
}

// A delayed cell evaluates its computation exactly once, no matter how many
// times it is accessed.
func TestListMemoization(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fpx.lazy")
	defer teardown()
	//
	calls := 0
	l := lazy.Delayed(func() *lazy.List[int] {
		calls++
		return lazy.Empty[int]()
	})
	_ = l.IsEmpty()
	_ = l.IsEmpty()
	if calls != 1 {
		t.Errorf("expected thunk to run once, ran %d times", calls)
	}
}

// A failing computation is cached and re-raised, never re-attempted.
func TestListExceptionCaching(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fpx.lazy")
	defer teardown()
	//
	boom := errors.New("boom")
	calls := 0
	l := lazy.Delayed(func() *lazy.List[int] {
		calls++
		panic(boom)
	})
	expectPanic(t, boom, func() { l.IsEmpty() })
	expectPanic(t, boom, func() { l.Head() })
	if calls != 1 {
		t.Errorf("expected failing thunk to run once, ran %d times", calls)
	}
}

// Thunk panics with non-error payloads surface as errors, too.
func TestListPanicPayloadNormalized(t *testing.T) {
	l := lazy.Delayed(func() *lazy.List[int] {
		panic("not an error")
	})
	defer func() {
		p := recover()
		if _, ok := p.(error); !ok {
			t.Errorf("expected panic payload to be normalized to an error, is %T", p)
		}
	}()
	l.IsEmpty()
}

// Racing goroutines observe a single evaluation of a shared cell.
func TestListConcurrentForce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fpx.lazy")
	defer teardown()
	//
	var calls atomic.Int32
	l := lazy.ConsDelayed(0, func() *lazy.List[int] {
		calls.Add(1)
		return lazy.Singleton(1)
	})
	const goroutines = 32
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if n := l.Length(); n != 2 {
				t.Errorf("expected length 2, is %d", n)
			}
		}()
	}
	close(start)
	wg.Wait()
	if n := calls.Load(); n != 1 {
		t.Errorf("expected tail thunk to run once across %d goroutines, ran %d times", goroutines, n)
	}
}

// A computation that forces its own cell fails fast instead of deadlocking.
func TestListReentrantForce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fpx.lazy")
	defer teardown()
	//
	var l *lazy.List[int]
	l = lazy.Delayed(func() *lazy.List[int] {
		_ = l.Head() // cycle
		return lazy.Empty[int]()
	})
	expectPanic(t, lazy.ErrBlackHole, func() { l.IsEmpty() })
	// the cycle poisons the cell for good
	expectPanic(t, lazy.ErrBlackHole, func() { l.IsEmpty() })
}

func TestListRepeat(t *testing.T) {
	l := lazy.Repeat(1)
	assert.Equal(t, []int{1, 1, 1, 1, 1}, l.Take(5).ToSlice())
}

func TestListForcedLength(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fpx.lazy")
	defer teardown()
	//
	count := 10
	var gen func(int) *lazy.List[int]
	gen = func(i int) *lazy.List[int] {
		if i == count {
			return lazy.Empty[int]()
		}
		return lazy.ConsDelayed(i, func() *lazy.List[int] {
			return gen(i + 1)
		})
	}
	l := lazy.Delayed(func() *lazy.List[int] { return gen(0) })
	assert.Equal(t, 0, l.ForcedLength())
	l.Take(3).ToSlice() // forces the first 3 cells only
	assert.Equal(t, 3, l.ForcedLength())
	assert.Equal(t, 10, l.Length())
	assert.Equal(t, 10, l.ForcedLength())
}

func TestListTryHeadTail(t *testing.T) {
	l := lazy.Cons(7, lazy.Singleton(8))
	m := l.TryHeadTail()
	if !maybe.IsJust(m) {
		t.Fatalf("expected TryHeadTail on non-empty list to carry a value, doesn't")
	}
	p := m.WithDefault(fpx.Pair[int, *lazy.List[int]]{})
	assert.Equal(t, 7, p.Left)
	assert.Equal(t, []int{8}, p.Right.ToSlice())
	//
	if maybe.IsJust(lazy.Empty[int]().TryHeadTail()) {
		t.Errorf("expected TryHeadTail on empty list to be Nothing, isn't")
	}
	assert.Equal(t, -1, lazy.Empty[int]().TryHead().WithDefault(-1))
	assert.Equal(t, 7, l.TryHead().WithDefault(-1))
}

func TestListMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fpx.lazy")
	defer teardown()
	//
	l := lazy.Cons(42, lazy.Empty[int]())
	var h int
	var tail *lazy.List[int]
	switch m := l.Match(); m {
	case m.Cons(&h, &tail):
		if h != 42 {
			t.Errorf("expected head 42, is %d", h)
		}
		if !tail.IsEmpty() {
			t.Errorf("expected tail to be empty, isn't")
		}
	case m.Nil():
		t.Errorf("expected list to match Cons, matched Nil")
	}
	switch m := lazy.Empty[int]().Match(); m {
	case m.Cons(&h, &tail):
		t.Errorf("expected empty list to match Nil, matched Cons")
	case m.Nil():
	}
}

// Matching forces exactly the first cell, nothing more.
func TestListMatchForcesOneCell(t *testing.T) {
	forcedTail := false
	l := lazy.ConsDelayed(1, func() *lazy.List[int] {
		forcedTail = true
		return lazy.Empty[int]()
	})
	var h int
	var tail *lazy.List[int]
	switch m := l.Match(); m {
	case m.Cons(&h, &tail):
	case m.Nil():
		t.Fatalf("expected list to match Cons, matched Nil")
	}
	if forcedTail {
		t.Errorf("expected matching to leave the tail unforced, didn't")
	}
}

func TestListOfSliceRoundTrip(t *testing.T) {
	s := []string{"a", "b", "c"}
	l := lazy.OfSlice(s)
	assert.Equal(t, 3, l.Length())
	assert.Equal(t, s, l.ToSlice())
}

func TestListOfSeq(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fpx.lazy")
	defer teardown()
	//
	pulled := 0
	seq := func(yield func(int) bool) {
		for i := 1; i <= 4; i++ {
			pulled++
			if !yield(i * 10) {
				return
			}
		}
	}
	l := lazy.OfSeq(seq)
	assert.Equal(t, 0, pulled, "expected conversion itself to pull nothing")
	assert.Equal(t, 10, l.Head())
	assert.Equal(t, []int{10, 20, 30, 40}, l.ToSlice())
	// single-pass source, but the list is cached: traversing again is fine
	assert.Equal(t, []int{10, 20, 30, 40}, l.ToSlice())
}

func TestListSeq(t *testing.T) {
	l := lazy.OfSlice([]int{1, 2, 3, 4})
	var got []int
	for x := range l.Seq() {
		got = append(got, x)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, got)
}

func TestListIter(t *testing.T) {
	sum := 0
	lazy.OfSlice([]int{1, 2, 3}).Iter(func(x int) {
		sum += x
	})
	assert.Equal(t, 6, sum)
}
