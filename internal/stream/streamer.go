package stream

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cadenza-ml/cadenza/internal/backend"
	"github.com/cadenza-ml/cadenza/internal/ring"
)

// Streamer runs one model method as a stream processor: host-sized blocks
// go in, host-sized blocks come out, and the model runs on its own block
// size in between. Input accumulates in a ring buffer until a full model
// frame is available, the frame runs through the gateway, and the result
// is queued for output. The reported latency of this scheme is the model
// block size.
//
// A Streamer is single-threaded by contract; it belongs to the host's
// callback thread.
type Streamer struct {
	b      *backend.Backend
	method string
	size   int

	in  *ring.Buffer[float32, float32]
	out *ring.Buffer[float32, float32]

	vecIn  []float32
	vecOut []float32
}

type config struct {
	bufferSize int
	hostBlock  int
	log        *zap.Logger
}

// Option configures a Streamer.
type Option func(*config)

// WithBufferSize requests a model-side block size. Zero, the default,
// selects the smallest size the model's frame ratios allow.
func WithBufferSize(n int) Option {
	return func(c *config) { c.bufferSize = n }
}

// WithHostBlock sizes the rings for the host's callback block, when known.
func WithHostBlock(n int) Option {
	return func(c *config) { c.hostBlock = n }
}

// WithLogger sets the logger for configuration-time warnings.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) { c.log = log }
}

// New creates a Streamer for the named method of an already loaded model.
func New(b *backend.Backend, method string, opts ...Option) (*Streamer, error) {
	cfg := config{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	params, ok := b.MethodParams(method)
	if !ok {
		return nil, fmt.Errorf("streaming method %s: %w", method, backend.ErrMethodNotFound)
	}

	size, clamped := ResolveBufferSize(cfg.bufferSize, b.HigherRatio())
	if clamped {
		cfg.log.Warn("buffer size below higher ratio, clamping",
			zap.Int("requested", cfg.bufferSize),
			zap.Int("size", size))
	}

	// The output ratio is the downsampling factor of the output port
	// relative to the signal rate: a size-sample frame yields
	// size/OutRatio output frames of OutDim elements each. Encode-like
	// methods shrink the frame, decode-like methods grow it.
	outFrame := size
	if params.OutRatio > 0 {
		outFrame = max(1, size/params.OutRatio*max(1, params.OutDim))
	}

	return &Streamer{
		b:      b,
		method: method,
		size:   size,
		in:     ring.New[float32, float32](2 * max(size, cfg.hostBlock)),
		out:    ring.New[float32, float32](2 * max(outFrame, cfg.hostBlock)),
		vecIn:  make([]float32, size),
		vecOut: make([]float32, outFrame),
	}, nil
}

// Size returns the resolved model-side block size, which is also the
// latency the streamer introduces.
func (s *Streamer) Size() int {
	return s.size
}

// Method returns the model method the streamer drives.
func (s *Streamer) Method() string {
	return s.method
}

// Process feeds one host block through the model and fills out with the
// next host block of results. Until the first model frame has completed,
// out is filled with silence. in and out may be any length the ring
// capacity accommodates, including differing lengths.
func (s *Streamer) Process(in, out []float32) {
	s.in.Put(in)
	for s.in.Len() >= s.size {
		s.in.Get(s.vecIn)
		s.b.Perform(s.vecIn, &s.vecOut, s.method)
		s.out.Put(s.vecOut)
	}
	s.out.Get(out)
}

// Reset discards all buffered samples.
func (s *Streamer) Reset() {
	s.in.Reset()
	s.out.Reset()
}

// Overruns returns how many buffered samples have been overwritten before
// being consumed, summed over both rings.
func (s *Streamer) Overruns() uint64 {
	return s.in.Overruns() + s.out.Overruns()
}
