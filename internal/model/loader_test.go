package model

import (
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadenza-ml/cadenza/internal/tensor"
)

func init() {
	Register("loader-test-echo", func(cfg json.RawMessage) (Model, error) {
		var c struct {
			Scale float64 `json:"scale"`
		}
		if len(cfg) > 0 {
			if err := json.Unmarshal(cfg, &c); err != nil {
				return nil, err
			}
		}
		s := NewScripted()
		s.DeclareMethod("forward", MethodParams{1, 1, 1, 1}, func(args []Value) (Value, error) {
			return args[0], nil
		})
		s.SetAttr("scale", FloatValue(c.Scale))
		return s, nil
	})
}

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_BuildsRegisteredArchitecture(t *testing.T) {
	path := writeManifest(t, `{"architecture": "loader-test-echo", "config": {"scale": 2.5}}`)

	m, err := Load(path, tensor.WebGPU)
	require.NoError(t, err)

	assert.Equal(t, tensor.WebGPU, m.Device())
	v, ok := m.Attr("scale")
	require.True(t, ok)
	f, _ := v.Float()
	assert.Equal(t, 2.5, f)
}

func TestLoad_UnknownArchitecture(t *testing.T) {
	path := writeManifest(t, `{"architecture": "no-such-arch"}`)
	_, err := Load(path, tensor.CPU)
	assert.ErrorContains(t, err, "unknown architecture")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"), tensor.CPU)
	assert.Error(t, err)
}

func TestLoad_BadManifest(t *testing.T) {
	_, err := Load(writeManifest(t, `{not json`), tensor.CPU)
	assert.Error(t, err)

	_, err = Load(writeManifest(t, `{"config": {}}`), tensor.CPU)
	assert.ErrorContains(t, err, "missing architecture")
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	b := func(json.RawMessage) (Model, error) { return NewScripted(), nil }
	r.Register("dup", b)
	assert.Panics(t, func() { r.Register("dup", b) })
	assert.Contains(t, r.Architectures(), "dup")
}
