package model

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/cadenza-ml/cadenza/internal/tensor"
)

// manifest is the on-disk handle for a model: which registered
// architecture to build and its config. The weight format behind the
// config is the architecture's own business.
type manifest struct {
	Architecture string          `json:"architecture"`
	Config       json.RawMessage `json:"config"`
}

// Load builds a model from a manifest file and places it on the given
// device. The model is fully constructed and validated before it is
// returned; on error the caller's current model is untouched.
func Load(path string, device tensor.Device) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model manifest: %w", err)
	}

	var mf manifest
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse model manifest %s: %w", path, err)
	}
	if mf.Architecture == "" {
		return nil, fmt.Errorf("model manifest %s: missing architecture", path)
	}

	builder, ok := defaultRegistry.Get(mf.Architecture)
	if !ok {
		return nil, fmt.Errorf("unknown architecture %q", mf.Architecture)
	}

	m, err := builder(mf.Config)
	if err != nil {
		return nil, fmt.Errorf("build %q model: %w", mf.Architecture, err)
	}

	m.To(device)
	return m, nil
}
