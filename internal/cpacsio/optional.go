package cpacsio

// Optional is the generic presence-or-absence wrapper every
// Optional-cardinality field is stored as: a sum type over {present T,
// absent}, not a pointer (spec.md's design notes call out pointer-typed
// optionals as the thing to avoid).
type Optional[T any] struct {
	value T
	ok    bool
}

// Construct sets the wrapped value and marks it present.
func (o *Optional[T]) Construct(v T) {
	o.value = v
	o.ok = true
}

// Destroy clears the wrapped value and marks it absent.
func (o *Optional[T]) Destroy() {
	var zero T
	o.value = zero
	o.ok = false
}

// Has reports whether a value is present.
func (o Optional[T]) Has() bool { return o.ok }

// Get returns the wrapped value. Calling it when Has() is false returns
// T's zero value; the generated code never relies on this, matching
// spec.md's note that dereferencing an absent Optional is undefined at
// the source level and need not be guarded by the generator.
func (o Optional[T]) Get() T { return o.value }

// Set is a copy-assignment from T, equivalent to Construct.
func (o *Optional[T]) Set(v T) { o.Construct(v) }
