// Copyright 2025 The Cadenza Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package stream provides the public streaming API: the rate buffer that
// reconciles host and model block sizes, the buffer-size resolver, and
// the Streamer that drives a loaded model as a stream processor.
//
// Example:
//
//	s, err := stream.NewStreamer(b, "forward", stream.WithHostBlock(512))
//	if err != nil {
//	    log.Fatal("streamer", zap.Error(err))
//	}
//	for blocks {
//	    s.Process(in, out)
//	}
package stream

import (
	"github.com/cadenza-ml/cadenza/internal/backend"
	"github.com/cadenza-ml/cadenza/internal/ring"
	"github.com/cadenza-ml/cadenza/internal/stream"
)

// Sample is the constraint for rate-buffer element types.
type Sample = ring.Sample

// Buffer is the fixed-capacity FIFO rate buffer. S is the written element
// type, T the stored and read element type.
type Buffer[S, T Sample] = ring.Buffer[S, T]

// NewBuffer creates a rate buffer with at least the requested capacity,
// rounded up to the next power of two.
func NewBuffer[S, T Sample](capacity int) *Buffer[S, T] {
	return ring.New[S, T](capacity)
}

// Streamer drives one model method as a stream processor.
type Streamer = stream.Streamer

// Option configures a Streamer.
type Option = stream.Option

var (
	// WithBufferSize requests a model-side block size.
	WithBufferSize = stream.WithBufferSize
	// WithHostBlock sizes the rings for the host's callback block.
	WithHostBlock = stream.WithHostBlock
	// WithLogger sets the logger for configuration-time warnings.
	WithLogger = stream.WithLogger
)

// NewStreamer creates a Streamer for the named method of an already
// loaded model.
func NewStreamer(b *backend.Backend, method string, opts ...Option) (*Streamer, error) {
	return stream.New(b, method, opts...)
}

// PowerCeil returns the least power of two greater than or equal to x.
func PowerCeil(x int) int {
	return ring.PowerCeil(x)
}

// ResolveBufferSize determines the model-side block size from a user
// request and the model's higher frame ratio.
func ResolveBufferSize(requested, higherRatio int) (size int, clamped bool) {
	return stream.ResolveBufferSize(requested, higherRatio)
}
