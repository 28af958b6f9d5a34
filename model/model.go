// Copyright 2025 The Cadenza Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package model defines the contract between the inference gateway and a
// loaded model.
//
// A model exposes named methods (callables) and named attributes (stateful
// values with typed schemas). Methods exchange tagged Values; a method is
// user-invocable when the model also declares a "<name>_params" attribute
// carrying its MethodParams. Attributes follow the same convention with a
// type-tag schema under "<name>_params" and get_/set_ accessor methods.
//
// Concrete models are built from architectures registered at program
// start; Load resolves a manifest file against that registry:
//
//	m, err := model.Load("codec.json", tensor.CPU)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	forward, _ := m.Method("forward")
package model

import (
	json "github.com/goccy/go-json"

	"github.com/cadenza-ml/cadenza/internal/model"
	"github.com/cadenza-ml/cadenza/internal/tensor"
)

// Model is the surface a loaded computation graph presents to the gateway.
type Model = model.Model

// Method is a named callable exposed by a model.
type Method = model.Method

// Scripted is a Model assembled from Go closures.
type Scripted = model.Scripted

// NewScripted creates an empty scripted model on the CPU device.
func NewScripted() *Scripted {
	return model.NewScripted()
}

// Value is the tagged variant exchanged with model methods.
type Value = model.Value

// Kind identifies the variant held by a Value.
type Kind = model.Kind

// Value kinds.
const (
	KindBool   Kind = model.KindBool
	KindInt    Kind = model.KindInt
	KindFloat  Kind = model.KindFloat
	KindStr    Kind = model.KindStr
	KindTensor Kind = model.KindTensor
	KindList   Kind = model.KindList
	KindTuple  Kind = model.KindTuple
)

// Value constructors.

// BoolValue wraps a bool.
func BoolValue(v bool) Value { return model.BoolValue(v) }

// IntValue wraps an int64.
func IntValue(v int64) Value { return model.IntValue(v) }

// FloatValue wraps a float64.
func FloatValue(v float64) Value { return model.FloatValue(v) }

// StrValue wraps a string.
func StrValue(v string) Value { return model.StrValue(v) }

// TensorValue wraps a tensor.
func TensorValue(t *tensor.RawTensor) Value { return model.TensorValue(t) }

// ListValue wraps an ordered sequence of values.
func ListValue(vs ...Value) Value { return model.ListValue(vs...) }

// TupleValue wraps a fixed grouping of values.
func TupleValue(vs ...Value) Value { return model.TupleValue(vs...) }

// MethodParams declares the calling shape of a model method.
type MethodParams = model.MethodParams

// TypeTag identifies a primitive attribute field type.
type TypeTag = model.TypeTag

// Recognized type tags.
const (
	TagBool  TypeTag = model.TagBool
	TagInt   TypeTag = model.TagInt
	TagFloat TypeTag = model.TagFloat
	TagStr   TypeTag = model.TagStr
)

// ParamsSuffix is appended to a method or attribute name to form the name
// of its params/schema attribute.
const ParamsSuffix = model.ParamsSuffix

// SchemaValue encodes an attribute schema as a "<name>_params" value.
func SchemaValue(tags ...TypeTag) Value {
	return model.SchemaValue(tags...)
}

// DecodeParams decodes a "<method>_params" attribute value.
func DecodeParams(v Value) (MethodParams, bool) {
	return model.DecodeParams(v)
}

// DecodeSchema decodes a "<attribute>_params" attribute value.
func DecodeSchema(v Value) ([]TypeTag, bool) {
	return model.DecodeSchema(v)
}

// Builder constructs a model from a manifest's config section.
type Builder = model.Builder

// Register adds an architecture builder to the process-wide registry.
func Register(name string, b Builder) {
	model.Register(name, b)
}

// Architectures returns all registered architecture names.
func Architectures() []string {
	return model.Default().Architectures()
}

// Load builds a model from a manifest file and places it on the device.
func Load(path string, device tensor.Device) (Model, error) {
	return model.Load(path, device)
}

// RawMessage re-exports the manifest config payload type for builders.
type RawMessage = json.RawMessage
