package common

type optionalState uint8

const (
	stateUnset optionalState = iota
	stateSet
	stateCleared
)

// Optional is a tri-state update field: unset (keep current), set to a value,
// or explicitly cleared (write NULL).
type Optional[T any] struct {
	state optionalState
	value T
}

// Set returns an Optional holding v.
func Set[T any](v T) Optional[T] {
	return Optional[T]{state: stateSet, value: v}
}

// Cleared returns an Optional that asks for the field to be nulled.
func Cleared[T any]() Optional[T] {
	return Optional[T]{state: stateCleared}
}

func (o Optional[T]) IsUnset() bool   { return o.state == stateUnset }
func (o Optional[T]) IsSet() bool     { return o.state == stateSet }
func (o Optional[T]) IsCleared() bool { return o.state == stateCleared }

// Value returns the held value and whether one is set.
func (o Optional[T]) Value() (T, bool) {
	return o.value, o.state == stateSet
}
