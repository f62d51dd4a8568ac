package httpapi

import "encoding/json"

// Optional distinguishes "field absent" from "field supplied" (including
// supplied as null or the zero value) in patch bodies. A plain pointer
// cannot tell those apart after unmarshalling.
type Optional[T any] struct {
	Set   bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Value = zero

		return nil
	}

	return json.Unmarshal(data, &o.Value)
}

// Ptr returns the value as a pointer when the field was supplied and nil
// otherwise, which is the shape the services take patches in.
func (o Optional[T]) Ptr() *T {
	if !o.Set {
		return nil
	}
	v := o.Value

	return &v
}
