package model

import (
	"github.com/cadenza-ml/cadenza/internal/tensor"
)

// Scripted is a Model assembled from Go closures. Architectures build one
// by declaring methods, attributes and their schemas; the resulting
// dispatch tables are fixed at load time, so no per-call reflection or
// string scanning happens on the inference path.
type Scripted struct {
	methods     map[string]Method
	methodOrder []string
	attrs       map[string]Value
	attrOrder   []string
	device      tensor.Device
}

// NewScripted creates an empty scripted model on the CPU device.
func NewScripted() *Scripted {
	return &Scripted{
		methods: make(map[string]Method),
		attrs:   make(map[string]Value),
	}
}

// DeclareMethod registers a user-invocable method together with its
// calling parameters. The params are also published as the
// "<name>_params" attribute, which is what marks the method usable.
func (s *Scripted) DeclareMethod(name string, params MethodParams, fn Method) {
	s.declareRaw(name, fn)
	s.SetAttr(name+ParamsSuffix, params.Value())
}

// DeclareHelper registers a method without calling parameters. Helpers are
// callable through the attribute protocol but are not user-invocable
// streaming methods.
func (s *Scripted) DeclareHelper(name string, fn Method) {
	s.declareRaw(name, fn)
}

func (s *Scripted) declareRaw(name string, fn Method) {
	if _, exists := s.methods[name]; !exists {
		s.methodOrder = append(s.methodOrder, name)
	}
	s.methods[name] = fn
}

// SetAttr declares a named attribute value.
func (s *Scripted) SetAttr(name string, v Value) {
	if _, exists := s.attrs[name]; !exists {
		s.attrOrder = append(s.attrOrder, name)
	}
	s.attrs[name] = v
}

// DeclareAttribute wires a stateful attribute: its "get_<name>" getter,
// its "set_<name>" setter, and the "<name>_params" type schema. The setter
// reports rejection by returning an error; the generated method surfaces
// that as a nonzero status the way scripted setters do.
func (s *Scripted) DeclareAttribute(name string, schema []TypeTag, getter func() (Value, error), setter func(args []Value) error) {
	// The attribute name itself is part of the declared surface even though
	// its live value is only reachable through the getter.
	s.attrOrder = append(s.attrOrder, name)
	s.SetAttr(name+ParamsSuffix, SchemaValue(schema...))
	if getter != nil {
		s.DeclareHelper("get_"+name, func([]Value) (Value, error) {
			return getter()
		})
	}
	if setter != nil {
		s.DeclareHelper("set_"+name, func(args []Value) (Value, error) {
			if err := setter(args); err != nil {
				return IntValue(1), err
			}
			return IntValue(0), nil
		})
	}
}

// DeclareIntrospection publishes the "get_methods" and "get_attributes"
// helpers that enumerate the model surface directly, sparing callers the
// fallback scan over declared names.
func (s *Scripted) DeclareIntrospection() {
	s.DeclareHelper("get_methods", func([]Value) (Value, error) {
		var vs []Value
		for _, name := range s.methodOrder {
			if _, ok := s.attrs[name+ParamsSuffix]; ok {
				vs = append(vs, StrValue(name))
			}
		}
		return ListValue(vs...), nil
	})
	s.DeclareHelper("get_attributes", func([]Value) (Value, error) {
		var vs []Value
		for _, name := range s.attrOrder {
			if _, ok := s.methods["set_"+name]; ok {
				vs = append(vs, StrValue(name))
			}
		}
		return ListValue(vs...), nil
	})
}

// Methods returns all declared method names in declaration order.
func (s *Scripted) Methods() []string {
	return s.methodOrder
}

// Method resolves a method by name.
func (s *Scripted) Method(name string) (Method, bool) {
	fn, ok := s.methods[name]
	return fn, ok
}

// Attributes returns all declared attribute names in declaration order.
func (s *Scripted) Attributes() []string {
	return s.attrOrder
}

// Attr resolves a declared attribute value by name.
func (s *Scripted) Attr(name string) (Value, bool) {
	v, ok := s.attrs[name]
	return v, ok
}

// To moves the model to the given device.
func (s *Scripted) To(device tensor.Device) {
	s.device = device
}

// Device returns the device the model currently lives on.
func (s *Scripted) Device() tensor.Device {
	return s.device
}
