package model

import (
	"github.com/cadenza-ml/cadenza/internal/tensor"
)

// Method is a named callable exposed by a model.
type Method func(args []Value) (Value, error)

// Model is the surface a loaded computation graph presents to the
// inference gateway: named methods, named attributes, and device placement.
// The gateway owns the model exclusively and replaces it wholesale on
// reload; implementations are never mutated in place except through their
// own methods.
type Model interface {
	// Methods returns all declared method names in declaration order.
	Methods() []string

	// Method resolves a method by name.
	Method(name string) (Method, bool)

	// Attributes returns all declared attribute names in declaration order.
	Attributes() []string

	// Attr resolves a declared attribute value by name, e.g. the
	// "<method>_params" declarations.
	Attr(name string) (Value, bool)

	// To moves the model to the given device.
	To(device tensor.Device)

	// Device returns the device the model currently lives on.
	Device() tensor.Device
}
