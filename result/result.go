/*
Package result provides an Elm-style result type: the outcome of a
computation that may fail, carrying either a value or an error.

Clients pattern-match on the two cases:

	var v int
	var e error
	switch m := r.Match(); m {
	case m.Ok(&v):
		…
	case m.Err(&e):
		…
	}
*/
package result

// Result is the outcome of a computation yielding T: Ok(value) or Err(error).
type Result[T any] interface {
	Match() Matcher[T]
	WithDefault(T) T
	Error() error
}

type result[T any] struct {
	value T
	err   error
}

// Ok wraps a successfully computed value.
func Ok[T any](x T) Result[T] {
	return result[T]{value: x}
}

// Err wraps a failure.
func Err[T any](err error) Result[T] {
	return result[T]{err: err}
}

// FromError converts Go's (value, error) idiom into a Result.
func FromError[T any](x T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(x)
}

func (r result[T]) Match() Matcher[T] {
	return matcher[T]{r: r}
}

// WithDefault returns the carried value, or def in the Err case.
func (r result[T]) WithDefault(def T) T {
	if r.err == nil {
		return r.value
	}
	return def
}

// Error returns the carried error, or nil in the Ok case.
func (r result[T]) Error() error {
	return r.err
}

// AndThen chains x into f if x is Ok; an Err passes through unchanged.
func AndThen[T, S any](f func(T) Result[S], x Result[T]) Result[S] {
	var v T
	var e error
	switch m := x.Match(); m {
	case m.Ok(&v):
		return f(v)
	case m.Err(&e):
	}
	return Err[S](e)
}

// Map applies f to the value carried by x, if any.
func Map[T, S any](f func(T) S, x Result[T]) Result[S] {
	var v T
	var e error
	switch m := x.Match(); m {
	case m.Ok(&v):
		return Ok(f(v))
	case m.Err(&e):
	}
	return Err[S](e)
}

// --- Matching --------------------------------------------------------------

// Matcher discriminates the two cases of a Result. It is intended for use in
// a switch statement; the matching arm fills the pointer argument.
type Matcher[T any] interface {
	Ok(*T) Matcher[T]
	Err(*error) Matcher[T]
}

type matcher[T any] struct {
	r result[T]
}

func (rm matcher[T]) Ok(v *T) Matcher[T] {
	if rm.r.err == nil {
		*v = rm.r.value
		return rm
	}
	return nil
}

func (rm matcher[T]) Err(err *error) Matcher[T] {
	if rm.r.err != nil {
		*err = rm.r.err
		return rm
	}
	return nil
}
