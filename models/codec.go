// Copyright 2025 The Cadenza Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package models

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/cadenza-ml/cadenza/internal/parallel"
	"github.com/cadenza-ml/cadenza/internal/ring"
	"github.com/cadenza-ml/cadenza/model"
	"github.com/cadenza-ml/cadenza/tensor"
)

type codecConfig struct {
	// Ratio is the compression ratio: one latent frame per Ratio samples.
	// Must be a power of two.
	Ratio int `json:"ratio"`
	// Latents is the number of latent dimensions per frame.
	Latents int `json:"latents"`
}

// buildCodec is a neural-audio-codec-shaped architecture: "forward" is a
// gain stage running at the signal rate, "encode" compresses Ratio samples
// into one Latents-dimensional frame, "decode" expands frames back to
// samples. The computation is a stand-in (latent 0 carries the frame
// mean), but the method surface, frame ratios and the "gain" attribute
// behave like the real thing.
func buildCodec(cfg model.RawMessage) (model.Model, error) {
	config := codecConfig{Ratio: 2048, Latents: 16}
	if len(cfg) > 0 {
		if err := json.Unmarshal(cfg, &config); err != nil {
			return nil, fmt.Errorf("codec config: %w", err)
		}
	}
	if config.Ratio < 1 || ring.PowerCeil(config.Ratio) != config.Ratio {
		return nil, fmt.Errorf("codec ratio %d is not a power of two", config.Ratio)
	}
	if config.Latents < 1 {
		return nil, fmt.Errorf("codec needs at least one latent, got %d", config.Latents)
	}

	gain := float32(1)
	workers := parallel.DefaultConfig()
	s := model.NewScripted()

	s.DeclareMethod("forward", model.MethodParams{InDim: 1, InRatio: 1, OutDim: 1, OutRatio: 1},
		func(args []model.Value) (model.Value, error) {
			tin, ok := args[0].Tensor()
			if !ok {
				return model.Value{}, fmt.Errorf("forward wants a tensor")
			}
			in := tin.AsFloat32()
			out := make([]float32, len(in))
			for i, v := range in {
				out[i] = v * gain
			}
			tout, err := tensor.FromFloat32(out, tin.Shape())
			if err != nil {
				return model.Value{}, err
			}
			return model.TensorValue(tout), nil
		})

	s.DeclareMethod("encode",
		model.MethodParams{InDim: 1, InRatio: 1, OutDim: config.Latents, OutRatio: config.Ratio},
		func(args []model.Value) (model.Value, error) {
			tin, ok := args[0].Tensor()
			if !ok {
				return model.Value{}, fmt.Errorf("encode wants a tensor")
			}
			in := tin.AsFloat32()
			frames := len(in) / config.Ratio
			if frames < 1 {
				return model.Value{}, fmt.Errorf("encode needs at least %d samples, got %d", config.Ratio, len(in))
			}
			out := make([]float32, frames*config.Latents)
			parallel.For(frames, func(f int) {
				var sum float32
				for _, v := range in[f*config.Ratio : (f+1)*config.Ratio] {
					sum += v
				}
				out[f*config.Latents] = sum / float32(config.Ratio)
			}, workers)
			tout, err := tensor.FromFloat32(out, tensor.Shape{1, config.Latents, frames})
			if err != nil {
				return model.Value{}, err
			}
			return model.TensorValue(tout), nil
		})

	s.DeclareMethod("decode",
		model.MethodParams{InDim: config.Latents, InRatio: config.Ratio, OutDim: 1, OutRatio: 1},
		func(args []model.Value) (model.Value, error) {
			tin, ok := args[0].Tensor()
			if !ok {
				return model.Value{}, fmt.Errorf("decode wants a tensor")
			}
			in := tin.AsFloat32()
			frames := len(in) / config.Latents
			if frames*config.Latents != len(in) {
				return model.Value{}, fmt.Errorf("decode input %d is not a whole number of %d-latent frames", len(in), config.Latents)
			}
			out := make([]float32, frames*config.Ratio)
			parallel.For(frames, func(f int) {
				v := in[f*config.Latents]
				for i := range config.Ratio {
					out[f*config.Ratio+i] = v
				}
			}, workers)
			tout, err := tensor.FromFloat32(out, tensor.Shape{1, len(out), 1})
			if err != nil {
				return model.Value{}, err
			}
			return model.TensorValue(tout), nil
		})

	s.DeclareAttribute("gain", []model.TypeTag{model.TagFloat},
		func() (model.Value, error) {
			return model.FloatValue(float64(gain)), nil
		},
		func(args []model.Value) error {
			v, ok := args[0].Float()
			if !ok {
				return fmt.Errorf("gain wants a float")
			}
			gain = float32(v)
			return nil
		})

	s.DeclareIntrospection()
	return s, nil
}
