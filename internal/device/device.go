// Package device selects the compute device the gateway places models on.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
package device

import (
	"github.com/go-webgpu/webgpu/wgpu"
	"go.uber.org/zap"

	"github.com/cadenza-ml/cadenza/internal/tensor"
)

// Select returns the device to run inference on. With gpu enabled the
// probe order is: high-performance WebGPU adapter, then any WebGPU
// adapter, then the CPU fallback. With gpu disabled the CPU is forced.
//
// Probing can block on driver initialization; callers must not invoke
// this from a hard-real-time context.
func Select(gpu bool, log *zap.Logger) tensor.Device {
	if !gpu {
		return tensor.CPU
	}

	if name, ok := probeAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	}); ok {
		log.Info("sending model to webgpu", zap.String("adapter", name))
		return tensor.WebGPU
	}

	if name, ok := probeAdapter(nil); ok {
		log.Info("sending model to webgpu fallback adapter", zap.String("adapter", name))
		return tensor.WebGPU
	}

	log.Info("no gpu adapter available, sending model to cpu")
	return tensor.CPU
}

// probeAdapter checks whether an adapter matching the options exists.
func probeAdapter(opts *wgpu.RequestAdapterOptions) (name string, ok bool) {
	// Recover from panic if the wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			name = ""
			ok = false
		}
	}()

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return "", false
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(opts)
	if err != nil {
		return "", false
	}
	defer adapter.Release()

	info, err := adapter.GetInfo()
	if err != nil {
		return "", false
	}
	return info.Device, true
}
