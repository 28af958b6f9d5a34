package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadenza-ml/cadenza/internal/tensor"
)

func TestScripted_DeclareMethod(t *testing.T) {
	s := NewScripted()
	s.DeclareMethod("forward", MethodParams{1, 1, 1, 1}, func(args []Value) (Value, error) {
		return args[0], nil
	})

	fn, ok := s.Method("forward")
	require.True(t, ok)
	out, err := fn([]Value{IntValue(7)})
	require.NoError(t, err)
	n, _ := out.Int()
	assert.Equal(t, int64(7), n)

	// Declaring a method publishes its params attribute.
	v, ok := s.Attr("forward" + ParamsSuffix)
	require.True(t, ok)
	p, ok := DecodeParams(v)
	require.True(t, ok)
	assert.Equal(t, MethodParams{1, 1, 1, 1}, p)
}

func TestScripted_DeclareAttribute(t *testing.T) {
	s := NewScripted()
	gain := 1.0
	s.DeclareAttribute("gain", []TypeTag{TagFloat},
		func() (Value, error) { return ListValue(FloatValue(gain)), nil },
		func(args []Value) error {
			f, ok := args[0].Float()
			if !ok {
				return errors.New("gain must be a float")
			}
			gain = f
			return nil
		})

	assert.Contains(t, s.Attributes(), "gain")

	set, ok := s.Method("set_gain")
	require.True(t, ok)
	status, err := set([]Value{FloatValue(0.5)})
	require.NoError(t, err)
	code, _ := status.Int()
	assert.Zero(t, code)
	assert.Equal(t, 0.5, gain)

	get, ok := s.Method("get_gain")
	require.True(t, ok)
	out, err := get(nil)
	require.NoError(t, err)
	vs, ok := out.List()
	require.True(t, ok)
	f, _ := vs[0].Float()
	assert.Equal(t, 0.5, f)

	// Setter rejection surfaces as both a nonzero status and the error.
	status, err = set([]Value{StrValue("loud")})
	assert.Error(t, err)
	code, _ = status.Int()
	assert.NotZero(t, code)
}

func TestScripted_Introspection(t *testing.T) {
	s := NewScripted()
	s.DeclareMethod("forward", MethodParams{1, 1, 1, 1}, func(args []Value) (Value, error) {
		return args[0], nil
	})
	s.DeclareHelper("warmup", func([]Value) (Value, error) { return Value{}, nil })
	s.DeclareAttribute("gain", []TypeTag{TagFloat},
		func() (Value, error) { return FloatValue(1), nil },
		func([]Value) error { return nil })
	s.DeclareIntrospection()

	fn, ok := s.Method("get_methods")
	require.True(t, ok)
	out, err := fn(nil)
	require.NoError(t, err)
	vs, ok := out.List()
	require.True(t, ok)
	// Only params-bearing methods are enumerated; helpers are not.
	require.Len(t, vs, 1)
	name, _ := vs[0].Str()
	assert.Equal(t, "forward", name)

	fn, ok = s.Method("get_attributes")
	require.True(t, ok)
	out, err = fn(nil)
	require.NoError(t, err)
	vs, ok = out.List()
	require.True(t, ok)
	require.Len(t, vs, 1)
	name, _ = vs[0].Str()
	assert.Equal(t, "gain", name)
}

func TestScripted_DeviceMove(t *testing.T) {
	s := NewScripted()
	assert.Equal(t, tensor.CPU, s.Device())
	s.To(tensor.WebGPU)
	assert.Equal(t, tensor.WebGPU, s.Device())
}

func TestDecodeParams_Malformed(t *testing.T) {
	_, ok := DecodeParams(IntValue(4))
	assert.False(t, ok)

	_, ok = DecodeParams(ListValue(IntValue(1), IntValue(2)))
	assert.False(t, ok)

	_, ok = DecodeParams(ListValue(IntValue(1), StrValue("x"), IntValue(1), IntValue(1)))
	assert.False(t, ok)

	p, ok := DecodeParams(TupleValue(IntValue(1), IntValue(4), IntValue(2), IntValue(2)))
	require.True(t, ok)
	assert.Equal(t, MethodParams{InDim: 1, InRatio: 4, OutDim: 2, OutRatio: 2}, p)
}

func TestDecodeSchema(t *testing.T) {
	tags, ok := DecodeSchema(SchemaValue(TagBool, TagInt, TagFloat, TagStr))
	require.True(t, ok)
	assert.Equal(t, []TypeTag{TagBool, TagInt, TagFloat, TagStr}, tags)

	_, ok = DecodeSchema(StrValue("nope"))
	assert.False(t, ok)
}
