package result

// Map transforms the value of a success. Failures pass through and f is not called.
func Map[T, K any](r Result[T], f func(T) K) Result[K] {
	if r.err != nil {
		return Result[K]{err: r.err}
	}
	return Ok(f(r.value))
}

// OnSuccess chains a fallible step onto a success. Failures pass through and
// f is not called.
func OnSuccess[T, K any](r Result[T], f func(T) Result[K]) Result[K] {
	if r.err != nil {
		return Result[K]{err: r.err}
	}
	return f(r.value)
}

// Tap runs action for its side effect on a success and returns r unchanged.
// It never runs on a failure.
func Tap[T any](r Result[T], action func(T)) Result[T] {
	if r.err == nil {
		action(r.value)
	}
	return r
}

// MapErr transforms the error of a failure. Successes pass through.
func MapErr[T any](r Result[T], f func(error) error) Result[T] {
	if r.err == nil {
		return r
	}
	return Fail[T](f(r.err))
}

// OnEither folds r into a single value. Exactly one of the branches runs.
func OnEither[T, K any](r Result[T], onFailure func(error) K, onSuccess func(T) K) K {
	if r.err != nil {
		return onFailure(r.err)
	}
	return onSuccess(r.value)
}

// OnBoth hands r to f whatever its state.
func OnBoth[T, K any](r Result[T], f func(Result[T]) K) K {
	return f(r)
}
