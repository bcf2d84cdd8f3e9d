package result

// Maybe is an optional value: either Some(v) or None.
// The zero value is None.
type Maybe[T any] struct {
	value T
	ok    bool
}

// Some wraps v as a present value.
func Some[T any](v T) Maybe[T] {
	return Maybe[T]{value: v, ok: true}
}

// None returns an empty Maybe.
func None[T any]() Maybe[T] {
	return Maybe[T]{}
}

// FromPtr returns None for a nil pointer and Some(*p) otherwise.
func FromPtr[T any](p *T) Maybe[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// HasValue reports whether a value is present.
func (m Maybe[T]) HasValue() bool { return m.ok }

// HasNoValue reports whether the Maybe is empty.
func (m Maybe[T]) HasNoValue() bool { return !m.ok }

// Value returns the wrapped value. It panics when the Maybe is empty;
// check HasValue first or use ValueOr.
func (m Maybe[T]) Value() T {
	if !m.ok {
		panic("result: Value called on empty Maybe")
	}
	return m.value
}

// ValueOr returns the wrapped value or def when empty.
func (m Maybe[T]) ValueOr(def T) T {
	if !m.ok {
		return def
	}
	return m.value
}

// Ptr returns a pointer to a copy of the value, or nil when empty.
func (m Maybe[T]) Ptr() *T {
	if !m.ok {
		return nil
	}
	v := m.value
	return &v
}

// ToResult converts the Maybe into a Result, failing with err when empty.
func (m Maybe[T]) ToResult(err error) Result[T] {
	if !m.ok {
		return Fail[T](err)
	}
	return Ok(m.value)
}

// MapMaybe applies f to a present value and leaves None untouched.
func MapMaybe[T, K any](m Maybe[T], f func(T) K) Maybe[K] {
	if !m.ok {
		return None[K]()
	}
	return Some(f(m.value))
}
