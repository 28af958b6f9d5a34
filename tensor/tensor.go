// Copyright 2025 The Cadenza Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor API for the Cadenza streaming
// inference runtime.
//
// The package defines the small tensor surface the inference gateway and
// loaded models exchange data through:
//   - RawTensor: host-memory tensor with shape, data type and device tag
//   - Shape, DataType, Device: core type definitions
//
// Example:
//
//	t, err := tensor.FromFloat32(block, tensor.Shape{1, len(block), 1})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	flat := t.Flatten()
package tensor

import (
	"github.com/cadenza-ml/cadenza/internal/tensor"
)

// DType is a constraint for tensor data types.
// Supported types: float32, float64, int32, int64.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
)

// Device represents the device a tensor is assigned to.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	CUDA   Device = tensor.CUDA
	Vulkan Device = tensor.Vulkan
	Metal  Device = tensor.Metal
	WebGPU Device = tensor.WebGPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{1, 512, 1} represents the gateway's rank-3 input layout.
type Shape = tensor.Shape

// RawTensor is the host-memory tensor representation.
type RawTensor = tensor.RawTensor

// NewRaw creates a new zero-initialized tensor with the given shape, dtype, and device.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromFloat32 creates a float32 tensor copying the given values.
//
// Example:
//
//	t, err := tensor.FromFloat32([]float32{1, 2, 3}, tensor.Shape{1, 3, 1})
func FromFloat32(values []float32, shape Shape) (*RawTensor, error) {
	return tensor.FromFloat32(values, shape)
}
