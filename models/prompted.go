// Copyright 2025 The Cadenza Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package models

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/cadenza-ml/cadenza/internal/tokenizer"
	"github.com/cadenza-ml/cadenza/model"
	"github.com/cadenza-ml/cadenza/tensor"
)

type promptedConfig struct {
	// Model selects the tokenizer by model name ("gpt-4"); empty uses the
	// cl100k_base encoding directly.
	Model string `json:"model"`
}

// buildPrompted is a text-conditioned architecture: its "prompt" string
// attribute is tokenized when set, and "forward" scales the signal by the
// prompt's token count. An empty prompt passes the signal through.
func buildPrompted(cfg model.RawMessage) (model.Model, error) {
	var config promptedConfig
	if len(cfg) > 0 {
		if err := json.Unmarshal(cfg, &config); err != nil {
			return nil, fmt.Errorf("prompted config: %w", err)
		}
	}

	var tok *tokenizer.Tokenizer
	var err error
	if config.Model != "" {
		tok, err = tokenizer.ForModel(config.Model)
	} else {
		tok, err = tokenizer.New(tokenizer.DefaultEncoding)
	}
	if err != nil {
		return nil, err
	}

	prompt := ""
	scale := float32(1)

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
				out[i] = v * scale
			}
			tout, err := tensor.FromFloat32(out, tin.Shape())
			if err != nil {
				return model.Value{}, err
			}
			return model.TensorValue(tout), nil
		})

	s.DeclareAttribute("prompt", []model.TypeTag{model.TagStr},
		func() (model.Value, error) {
			return model.StrValue(prompt), nil
		},
		func(args []model.Value) error {
			text, ok := args[0].Str()
			if !ok {
				return fmt.Errorf("prompt wants a string")
			}
			prompt = text
			if n := tok.Count(text); n > 0 {
				scale = float32(n)
			} else {
				scale = 1
			}
			return nil
		})

	s.SetAttr("tokenizer", model.StrValue(tok.Name()))
	s.DeclareIntrospection()
	return s, nil
}
