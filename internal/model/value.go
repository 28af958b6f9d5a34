// Package model defines the calling convention between the inference
// gateway and a loaded model: tagged values, typed method parameters,
// attribute schemas, and the architecture registry models are built from.
package model

import (
	"github.com/cadenza-ml/cadenza/internal/tensor"
)

// Kind identifies the variant held by a Value.
type Kind int

// Value kinds.
const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindStr
	KindTensor
	KindList
	KindTuple
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindStr:
		return "str"
	case KindTensor:
		return "tensor"
	case KindList:
		return "list"
	case KindTuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// Value is the tagged variant exchanged with model methods. It plays the
// role a boxed interpreter value plays in scripted-model runtimes, with the
// variant checked explicitly instead of through runtime casts.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	t    *tensor.RawTensor
	vs   []Value
}

// BoolValue wraps a bool.
func BoolValue(v bool) Value { return Value{kind: KindBool, b: v} }

// IntValue wraps an int64.
func IntValue(v int64) Value { return Value{kind: KindInt, i: v} }

// FloatValue wraps a float64.
func FloatValue(v float64) Value { return Value{kind: KindFloat, f: v} }

// StrValue wraps a string.
func StrValue(v string) Value { return Value{kind: KindStr, s: v} }

// TensorValue wraps a tensor.
func TensorValue(t *tensor.RawTensor) Value { return Value{kind: KindTensor, t: t} }

// ListValue wraps an ordered sequence of values.
func ListValue(vs ...Value) Value { return Value{kind: KindList, vs: vs} }

// TupleValue wraps a fixed grouping of values.
func TupleValue(vs ...Value) Value { return Value{kind: KindTuple, vs: vs} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the held bool.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Int returns the held int.
func (v Value) Int() (int64, bool) {
	return v.i, v.kind == KindInt
}

// Float returns the held float. Int values coerce, mirroring the numeric
// promotion scripted runtimes apply to attribute getters.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// Str returns the held string.
func (v Value) Str() (string, bool) {
	return v.s, v.kind == KindStr
}

// Tensor returns the held tensor.
func (v Value) Tensor() (*tensor.RawTensor, bool) {
	if v.kind != KindTensor {
		return nil, false
	}
	return v.t, true
}

// List returns the held list elements.
func (v Value) List() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.vs, true
}

// Tuple returns the held tuple elements.
func (v Value) Tuple() ([]Value, bool) {
	if v.kind != KindTuple {
		return nil, false
	}
	return v.vs, true
}
