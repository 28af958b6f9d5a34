// Copyright 2025 The Cadenza Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package backend provides the public inference gateway API.
//
// A Backend owns at most one loaded model and serializes every touch of
// it behind a single lock: inference, attribute access, device moves and
// reloads. Streaming callers drive it through Perform; control callers
// use the typed attribute protocol.
//
// Example:
//
//	b := backend.New(backend.WithLogger(log))
//	if err := b.Load("model.json"); err != nil {
//	    log.Fatal("load", zap.Error(err))
//	}
//	out := make([]float32, 0)
//	b.Perform(block, &out, "forward")
package backend

import (
	"go.uber.org/zap"

	"github.com/cadenza-ml/cadenza/internal/backend"
	"github.com/cadenza-ml/cadenza/tensor"
)

// Backend is the inference gateway.
type Backend = backend.Backend

// Option configures a Backend.
type Option = backend.Option

// Error kinds surfaced by the gateway's control-plane operations.
var (
	ErrNotLoaded         = backend.ErrNotLoaded
	ErrNoPath            = backend.ErrNoPath
	ErrMethodNotFound    = backend.ErrMethodNotFound
	ErrAttributeNotFound = backend.ErrAttributeNotFound
	ErrSchemaMissing     = backend.ErrSchemaMissing
	ErrBadTypeTag        = backend.ErrBadTypeTag
	ErrSetterRejected    = backend.ErrSetterRejected
	ErrArgumentCount     = backend.ErrArgumentCount
)

// New creates an unloaded gateway on the CPU device.
func New(opts ...Option) *Backend {
	return backend.New(opts...)
}

// WithLogger sets the logger for configuration-time warnings.
func WithLogger(log *zap.Logger) Option {
	return backend.WithLogger(log)
}

// WithDevice pins the initial compute device.
func WithDevice(d tensor.Device) Option {
	return backend.WithDevice(d)
}
