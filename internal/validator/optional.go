package validator

import (
	"encoding/json"
)

// Optional is a tri-state patch field: absent from the JSON body, explicit
// null, or a concrete value. Absent leaves the stored value untouched,
// explicit null clears a nullable field, a value overwrites.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Some builds a present, non-null Optional. Mostly for tests.
func Some[T any](value T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: value}
}

// Null builds a present, explicit-null Optional. Mostly for tests.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON is only invoked for keys present in the body, which is what
// distinguishes Set from the zero value.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}

	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr returns the value as a pointer, nil for explicit null. Only meaningful
// when Set.
func (o Optional[T]) Ptr() *T {
	if !o.Valid {
		return nil
	}
	value := o.Value
	return &value
}
