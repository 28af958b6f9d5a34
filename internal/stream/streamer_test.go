package stream

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadenza-ml/cadenza/internal/backend"
	"github.com/cadenza-ml/cadenza/internal/model"
	"github.com/cadenza-ml/cadenza/internal/tensor"
)

func init() {
	model.Register("stream-test-gain", func(json.RawMessage) (model.Model, error) {
		s := model.NewScripted()
		s.DeclareMethod("forward", model.MethodParams{InDim: 1, InRatio: 1, OutDim: 1, OutRatio: 1},
			func(args []model.Value) (model.Value, error) {
				tin, _ := args[0].Tensor()
				in := tin.AsFloat32()
				out := make([]float32, len(in))
				for i, v := range in {
					out[i] = v * 2
				}
				tout, err := tensor.FromFloat32(out, tin.Shape())
				if err != nil {
					return model.Value{}, err
				}
				return model.TensorValue(tout), nil
			})
		// A ratio-4 helper method forces a minimum block size of 4.
		s.DeclareMethod("encode", model.MethodParams{InDim: 1, InRatio: 4, OutDim: 1, OutRatio: 1},
			func(args []model.Value) (model.Value, error) {
				return args[0], nil
			})
		return s, nil
	})

	model.Register("stream-test-halve", func(json.RawMessage) (model.Model, error) {
		s := model.NewScripted()
		// Output downsampled by two relative to the input signal.
		s.DeclareMethod("forward", model.MethodParams{InDim: 1, InRatio: 1, OutDim: 1, OutRatio: 2},
			func(args []model.Value) (model.Value, error) {
				tin, _ := args[0].Tensor()
				in := tin.AsFloat32()
				out := make([]float32, len(in)/2)
				for i := range out {
					out[i] = in[2*i]
				}
				tout, err := tensor.FromFloat32(out, tensor.Shape{1, len(out), 1})
				if err != nil {
					return model.Value{}, err
				}
				return model.TensorValue(tout), nil
			})
		return s, nil
	})
}

func loadBackend(t *testing.T, architecture string) *backend.Backend {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	manifest := fmt.Sprintf(`{"architecture": %q, "config": {}}`, architecture)
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o644))

	b := backend.New()
	require.NoError(t, b.Load(path))
	return b
}

func TestNewUnknownMethod(t *testing.T) {
	b := loadBackend(t, "stream-test-gain")

	_, err := New(b, "decode")
	assert.ErrorIs(t, err, backend.ErrMethodNotFound)
}

func TestNewResolvesSizeFromRatio(t *testing.T) {
	b := loadBackend(t, "stream-test-gain")

	s, err := New(b, "forward")
	require.NoError(t, err)
	assert.Equal(t, 4, s.Size(), "higher ratio over all methods bounds the block size")
}

func TestNewClampsRequestedSize(t *testing.T) {
	b := loadBackend(t, "stream-test-gain")

	s, err := New(b, "forward", WithBufferSize(2))
	require.NoError(t, err)
	assert.Equal(t, 4, s.Size())
}

func TestProcessMatchedBlock(t *testing.T) {
	b := loadBackend(t, "stream-test-gain")
	s, err := New(b, "forward", WithBufferSize(4))
	require.NoError(t, err)

	// Host blocks of exactly the model block size complete within the call.
	out := make([]float32, 4)
	s.Process([]float32{1, 2, 3, 4}, out)
	assert.Equal(t, []float32{2, 4, 6, 8}, out)

	s.Process([]float32{5, 6, 7, 8}, out)
	assert.Equal(t, []float32{10, 12, 14, 16}, out)
}

func TestProcessSmallBlocksPrefixSilence(t *testing.T) {
	b := loadBackend(t, "stream-test-gain")
	s, err := New(b, "forward", WithBufferSize(4), WithHostBlock(2))
	require.NoError(t, err)

	out := make([]float32, 2)
	s.Process([]float32{1, 2}, out)
	assert.Equal(t, []float32{0, 0}, out, "no model frame completed yet")

	s.Process([]float32{3, 4}, out)
	assert.Equal(t, []float32{2, 4}, out)

	s.Process([]float32{5, 6}, out)
	assert.Equal(t, []float32{6, 8}, out)

	// Steady state: every written sample comes back doubled, none skipped.
	s.Process([]float32{7, 8}, out)
	assert.Equal(t, []float32{10, 12}, out)
	s.Process([]float32{9, 10}, out)
	assert.Equal(t, []float32{14, 16}, out)
	assert.EqualValues(t, 0, s.Overruns())
}

func TestProcessRatioShrinksOutput(t *testing.T) {
	b := loadBackend(t, "stream-test-halve")
	s, err := New(b, "forward", WithBufferSize(4))
	require.NoError(t, err)

	// Four samples in, two out: the output runs at half the signal rate,
	// so matched cadence is half-sized output blocks.
	out := make([]float32, 2)
	s.Process([]float32{1, 2, 3, 4}, out)
	assert.Equal(t, []float32{1, 3}, out)
}

func TestReset(t *testing.T) {
	b := loadBackend(t, "stream-test-gain")
	s, err := New(b, "forward", WithBufferSize(4))
	require.NoError(t, err)

	out := make([]float32, 2)
	s.Process([]float32{1, 2}, out)
	s.Reset()

	s.Process([]float32{1, 2}, out)
	assert.Equal(t, []float32{0, 0}, out, "buffered partial frame was discarded")
	assert.EqualValues(t, 0, s.Overruns())
}
