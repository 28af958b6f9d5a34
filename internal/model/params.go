package model

// ParamsSuffix is appended to a method or attribute name to form the name
// of the attribute that declares its parameters or schema.
const ParamsSuffix = "_params"

// MethodParams declares the calling shape of a model method: per-call
// vector lengths and how many host frames correspond to one model frame
// on each side.
type MethodParams struct {
	InDim    int
	InRatio  int
	OutDim   int
	OutRatio int
}

// Value encodes the params as the int-list attribute a model declares
// under "<method>_params".
func (p MethodParams) Value() Value {
	return ListValue(
		IntValue(int64(p.InDim)),
		IntValue(int64(p.InRatio)),
		IntValue(int64(p.OutDim)),
		IntValue(int64(p.OutRatio)),
	)
}

// DecodeParams decodes a "<method>_params" attribute value. Reports false
// when the value is not a list of at least four ints.
func DecodeParams(v Value) (MethodParams, bool) {
	vs, ok := v.List()
	if !ok {
		vs, ok = v.Tuple()
	}
	if !ok || len(vs) < 4 {
		return MethodParams{}, false
	}
	var out [4]int
	for i := 0; i < 4; i++ {
		n, ok := vs[i].Int()
		if !ok {
			return MethodParams{}, false
		}
		out[i] = int(n)
	}
	return MethodParams{InDim: out[0], InRatio: out[1], OutDim: out[2], OutRatio: out[3]}, true
}

// TypeTag identifies a primitive attribute field type in an attribute
// schema. The numeric values are part of the model contract.
type TypeTag int

// Recognized type tags.
const (
	TagBool  TypeTag = 0
	TagInt   TypeTag = 1
	TagFloat TypeTag = 2
	TagStr   TypeTag = 3
)

// String returns a human-readable tag name.
func (t TypeTag) String() string {
	switch t {
	case TagBool:
		return "bool"
	case TagInt:
		return "int"
	case TagFloat:
		return "float"
	case TagStr:
		return "str"
	default:
		return "unknown"
	}
}

// SchemaValue encodes an attribute schema as the int-list attribute a
// model declares under "<attribute>_params".
func SchemaValue(tags ...TypeTag) Value {
	vs := make([]Value, len(tags))
	for i, tag := range tags {
		vs[i] = IntValue(int64(tag))
	}
	return ListValue(vs...)
}

// DecodeSchema decodes a "<attribute>_params" attribute value into its
// ordered type tags. Reports false when the value is not an int list.
// Out-of-range tags are preserved; rejecting them is the caller's concern.
func DecodeSchema(v Value) ([]TypeTag, bool) {
	vs, ok := v.List()
	if !ok {
		vs, ok = v.Tuple()
	}
	if !ok {
		return nil, false
	}
	tags := make([]TypeTag, len(vs))
	for i := range vs {
		n, ok := vs[i].Int()
		if !ok {
			return nil, false
		}
		tags[i] = TypeTag(n)
	}
	return tags, true
}
