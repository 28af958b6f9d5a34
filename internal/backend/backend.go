// Package backend implements the inference gateway: it owns the loaded
// model, serializes every model touch behind a single lock, and maps
// between flat host vectors and the model's tensor calling convention.
package backend

import (
	"slices"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/cadenza-ml/cadenza/internal/device"
	"github.com/cadenza-ml/cadenza/internal/model"
	"github.com/cadenza-ml/cadenza/internal/tensor"
)

// Backend owns the loaded model. All model access (inference, attribute
// get/set, device moves, reload) is mutual exclusion behind one lock:
// at most one model call proceeds at a time, system-wide.
//
// Reload is atomic: a replacement model is fully constructed and cataloged
// before the swap, so a concurrent Perform observes either the old model
// or the new one, never a mix. A long-running Perform blocks a pending
// Reload for its full duration (and vice versa); reload is a rare,
// user-triggered operation, never a real-time-thread one.
type Backend struct {
	mu    sync.Mutex
	model model.Model // nil while unloaded
	path  string      // kept only for Reload
	dev   tensor.Device
	log   *zap.Logger

	cat atomic.Pointer[catalog]

	performErrors atomic.Uint64
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger for configuration-time warnings.
// The default is a no-op logger; the gateway never logs from Perform.
func WithLogger(log *zap.Logger) Option {
	return func(b *Backend) { b.log = log }
}

// WithDevice pins the initial compute device.
func WithDevice(d tensor.Device) Option {
	return func(b *Backend) { b.dev = d }
}

// New creates an unloaded gateway on the CPU device.
func New(opts ...Option) *Backend {
	b := &Backend{
		dev: tensor.CPU,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.cat.Store(emptyCatalog())
	return b
}

// Load constructs a model from path on the configured device and swaps it
// into the gateway. On failure the previously loaded model, if any, stays
// active and the method catalog is left untouched.
func (b *Backend) Load(path string) error {
	b.mu.Lock()
	dev := b.dev
	b.mu.Unlock()

	m, err := model.Load(path, dev)
	if err != nil {
		b.log.Error("model load failed", zap.String("path", path), zap.Error(err))
		return err
	}

	// Catalog the model before publishing it; afterwards it is only
	// touched under the lock. Model and catalog swap inside the same
	// critical section so a concurrent Perform always sees a matched pair.
	cat := buildCatalog(m)

	b.mu.Lock()
	b.model = m
	b.path = path
	b.cat.Store(cat)
	b.mu.Unlock()

	b.log.Info("model loaded",
		zap.String("path", path),
		zap.Strings("methods", cat.methods),
		zap.Stringer("device", dev))
	return nil
}

// Reload re-runs Load with the previously stored path.
func (b *Backend) Reload() error {
	b.mu.Lock()
	path := b.path
	b.mu.Unlock()

	if path == "" {
		return ErrNoPath
	}
	return b.Load(path)
}

// IsLoaded reports whether a model is active.
func (b *Backend) IsLoaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.model != nil
}

// Path returns the path of the last successfully loaded model.
func (b *Backend) Path() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.path
}

// Device returns the currently configured compute device.
func (b *Backend) Device() tensor.Device {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dev
}

// UseGPU selects the compute device: with enabled, the best available
// accelerator in priority order, otherwise the CPU. The loaded model is
// moved under the lock; the move can block, so this must not be called
// from a hard-real-time context.
func (b *Backend) UseGPU(enabled bool) {
	dev := device.Select(enabled, b.log)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.dev = dev
	if b.model != nil {
		b.model.To(dev)
	}
}

// Perform runs one inference call: the flat input becomes a rank-3
// [1, len(in), 1] tensor, the named method is invoked under the lock, and
// the flattened result is copied into *out, resizing it once if its
// length differs from the result frame. In steady state the sizes match
// and *out is never reallocated.
//
// Perform is a silent no-op when no model is loaded, the method has no
// resolvable params, or the model call fails; the output keeps its prior
// contents. Absorbing per-call failures keeps the real-time path alive;
// they are observable through PerformErrors.
func (b *Backend) Perform(in []float32, out *[]float32, method string) {
	if _, ok := b.catalog().params[method]; !ok {
		return
	}

	tin, err := tensor.FromFloat32(in, tensor.Shape{1, len(in), 1})
	if err != nil {
		b.performErrors.Add(1)
		return
	}

	// Only the device move and the model call are the critical section;
	// host-memory copies before and after run unlocked.
	b.mu.Lock()
	m := b.model
	if m == nil {
		b.mu.Unlock()
		return
	}
	fn, ok := m.Method(method)
	if !ok {
		b.mu.Unlock()
		return
	}
	res, err := fn([]model.Value{model.TensorValue(tin.To(b.dev))})
	b.mu.Unlock()

	if err != nil {
		b.performErrors.Add(1)
		return
	}
	tout, ok := res.Tensor()
	if !ok {
		b.performErrors.Add(1)
		return
	}

	flat := tout.To(tensor.CPU).Flatten()
	if n := flat.NumElements(); len(*out) != n {
		// One resize to determine the frame size.
		*out = make([]float32, n)
	}
	copy(*out, flat.AsFloat32())
}

// PerformErrors returns how many Perform calls were absorbed as no-ops
// because of a failed tensor build or model call.
func (b *Backend) PerformErrors() uint64 {
	return b.performErrors.Load()
}

// MethodParams returns the declared calling parameters of a usable method.
func (b *Backend) MethodParams(method string) (model.MethodParams, bool) {
	p, ok := b.catalog().params[method]
	return p, ok
}

// HigherRatio returns the maximum frame ratio over all usable methods,
// the lower bound on rate-buffer capacity. Methods without resolvable
// params are skipped; with no usable method at all the ratio is 1.
func (b *Backend) HigherRatio() int {
	higher := 1
	c := b.catalog()
	for _, name := range c.methods {
		p, ok := c.params[name]
		if !ok {
			continue // method not usable, skipping
		}
		higher = max(higher, p.InRatio, p.OutRatio)
	}
	return higher
}

// HasMethod reports whether the model declares a method with this name,
// usable or not.
func (b *Backend) HasMethod(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.model == nil {
		return false
	}
	return slices.Contains(b.model.Methods(), name)
}

// AvailableMethods returns the usable method names from the catalog.
func (b *Backend) AvailableMethods() []string {
	return slices.Clone(b.catalog().methods)
}

func (b *Backend) catalog() *catalog {
	return b.cat.Load()
}

// lockedModel returns the active model, or an error while unloaded.
// Callers must hold b.mu.
func (b *Backend) lockedModel() (model.Model, error) {
	if b.model == nil {
		return nil, ErrNotLoaded
	}
	return b.model, nil
}
