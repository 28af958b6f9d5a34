// Copyright 2025 The Cadenza Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package models registers the builtin architectures: identity, codec and
// prompted. Importing the package, even blank, makes them loadable through
// model manifests:
//
//	import _ "github.com/cadenza-ml/cadenza/models"
//
//	m, err := model.Load("codec.json", tensor.CPU)
package models

import (
	"github.com/cadenza-ml/cadenza/model"
)

func init() {
	model.Register("identity", buildIdentity)
	model.Register("codec", buildCodec)
	model.Register("prompted", buildPrompted)
}

// buildIdentity declares a single pass-through "forward" method. It is the
// smallest well-formed model and mostly serves as a wiring check.
func buildIdentity(cfg model.RawMessage) (model.Model, error) {
	s := model.NewScripted()
	s.DeclareMethod("forward", model.MethodParams{InDim: 1, InRatio: 1, OutDim: 1, OutRatio: 1},
		func(args []model.Value) (model.Value, error) {
			return args[0], nil
		})
	s.DeclareIntrospection()
	return s, nil
}
