// Package result provides Maybe and Result, the optional-value and
// fallible-value types used to thread validation and domain checks through
// a chain of steps without nested if-err blocks.
//
// A Result is either a success carrying a value or a failure carrying a
// non-nil error. Combinators that introduce a new type parameter (Map,
// OnSuccess, OnEither, OnBoth) are free functions because Go methods cannot
// declare their own type parameters.
//
//	res := result.OnSuccess(
//		result.Map(parseID(raw), toKey),
//		lookup,
//	).Ensure(isActive, ErrInactive)
//	v, err := res.Unwrap()
package result

import "fmt"

// Result is the outcome of an operation that either succeeds with a value
// of type T or fails with an error.
type Result[T any] struct {
	value T
	err   error
}

// Unit is the value carried by a Result that has nothing to return.
type Unit struct{}

// Ok returns a successful Result carrying v.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail returns a failed Result carrying err. A failure must always carry an
// error, so a nil err panics.
func Fail[T any](err error) Result[T] {
	if err == nil {
		panic("result: Fail called with nil error")
	}
	return Result[T]{err: err}
}

// FromTuple converts a Go (value, error) pair into a Result.
func FromTuple[T any](v T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}
	return Ok(v)
}

// Succeed returns a successful valueless Result.
func Succeed() Result[Unit] {
	return Ok(Unit{})
}

// FailUnit returns a failed valueless Result.
func FailUnit(err error) Result[Unit] {
	return Fail[Unit](err)
}

// Try runs fn and wraps its error into a valueless Result.
func Try(fn func() error) Result[Unit] {
	if err := fn(); err != nil {
		return FailUnit(err)
	}
	return Succeed()
}

// IsSuccess reports whether r carries a value.
func (r Result[T]) IsSuccess() bool { return r.err == nil }

// IsFailure reports whether r carries an error.
func (r Result[T]) IsFailure() bool { return r.err != nil }

// Value returns the success value. It panics on a failed Result.
func (r Result[T]) Value() T {
	if r.err != nil {
		panic(fmt.Sprintf("result: Value called on failed Result: %v", r.err))
	}
	return r.value
}

// Err returns the failure error. It panics on a successful Result.
func (r Result[T]) Err() error {
	if r.err == nil {
		panic("result: Err called on successful Result")
	}
	return r.err
}

// Unwrap returns the (value, error) pair. The value is the zero value of T
// when r is a failure.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}

// Ensure keeps a success only while pred holds for its value; otherwise it
// becomes Fail(err). Failures pass through unchanged and pred is not called.
func (r Result[T]) Ensure(pred func(T) bool, err error) Result[T] {
	if r.err != nil {
		return r
	}
	if !pred(r.value) {
		return Fail[T](err)
	}
	return r
}

// Fallible is any Result regardless of its value type. Combine accepts it so
// results of different types can be checked together.
type Fallible interface {
	IsFailure() bool
	Err() error
}

// Combine succeeds when every input succeeds. Otherwise it fails with the
// error of the first failed input in argument order. No inputs is success.
func Combine(results ...Fallible) Result[Unit] {
	for _, r := range results {
		if r.IsFailure() {
			return FailUnit(r.Err())
		}
	}
	return Succeed()
}
