// Package stream reconciles the host's callback cadence with a model's
// processing block size: it resolves the streaming buffer size from the
// model's frame ratios and runs the buffered perform loop.
package stream

import "github.com/cadenza-ml/cadenza/internal/ring"

// ResolveBufferSize determines the model-side block size from a user
// request and the model's higher frame ratio.
//
// A request of zero selects the smallest legal size, adding no latency
// beyond the model's own. A request below the higher ratio cannot be
// honored and is clamped up, reported so the caller can warn. Anything
// else is rounded to the next power of two.
func ResolveBufferSize(requested, higherRatio int) (size int, clamped bool) {
	if requested == 0 {
		return higherRatio, false
	}
	if requested < higherRatio {
		return higherRatio, true
	}
	return ring.PowerCeil(requested), false
}
