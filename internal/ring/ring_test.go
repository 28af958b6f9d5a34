package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPowerCeil(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{10, 16},
		{16, 16},
		{1023, 1024},
		{1024, 1024},
		{1025, 2048},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, PowerCeil(c.in), "PowerCeil(%d)", c.in)
	}
}

func TestBuffer_CapacityRoundsUp(t *testing.T) {
	b := New[float32, float32](5)
	assert.Equal(t, 8, b.Cap())
}

// FIFO order must survive wrap-around. Drive a capacity-8 buffer through
// more than two full wrap cycles in mismatched chunk sizes.
func TestBuffer_FIFOAcrossWraps(t *testing.T) {
	b := New[float32, float32](8)

	var written, read []float32
	next := float32(0)
	for cycle := 0; cycle < 6; cycle++ {
		chunk := make([]float32, 3)
		for i := range chunk {
			chunk[i] = next
			next++
		}
		b.Put(chunk)
		written = append(written, chunk...)

		out := make([]float32, 3)
		b.Get(out)
		read = append(read, out...)
	}

	require.Equal(t, written, read)
	assert.Zero(t, b.Overruns())
}

func TestBuffer_ConvertsElementTypes(t *testing.T) {
	// float64 in, float32 stored and out: narrowing happens on Put.
	b := New[float64, float32](4)
	b.Put([]float64{1.5, 2.25, 3.125})

	out := make([]float32, 3)
	b.Get(out)
	assert.Equal(t, []float32{1.5, 2.25, 3.125}, out)

	// float32 in, float64 out: widening.
	w := New[float32, float64](4)
	w.Put([]float32{0.5, 0.25})
	wide := make([]float64, 2)
	w.Get(wide)
	assert.Equal(t, []float64{0.5, 0.25}, wide)
}

func TestBuffer_EarlyGetReturnsSilence(t *testing.T) {
	b := New[float32, float32](8)
	out := []float32{7, 7, 7, 7}
	b.Get(out)
	assert.Equal(t, []float32{0, 0, 0, 0}, out)
}

// An early Get must not consume slots that have not been written yet:
// samples put afterwards are still read in full, in order. This is the
// streamer's cadence while its output buffer is still priming.
func TestBuffer_EarlyGetDoesNotConsumeLaterPuts(t *testing.T) {
	b := New[float32, float32](8)

	out := make([]float32, 2)
	b.Get(out)
	assert.Equal(t, []float32{0, 0}, out)
	assert.Zero(t, b.Len())

	b.Put([]float32{2, 4, 6, 8})
	require.Equal(t, 4, b.Len())

	b.Get(out)
	assert.Equal(t, []float32{2, 4}, out)
	b.Get(out)
	assert.Equal(t, []float32{6, 8}, out)
	assert.Zero(t, b.Len())
}

// A Get larger than the unread span drains what is there and fills the
// tail with silence, leaving the cursors aligned.
func TestBuffer_PartialGetFillsTail(t *testing.T) {
	b := New[float32, float32](8)
	b.Put([]float32{1, 2, 3})

	out := []float32{9, 9, 9, 9, 9}
	b.Get(out)
	assert.Equal(t, []float32{1, 2, 3, 0, 0}, out)
	assert.Zero(t, b.Len())

	b.Put([]float32{4})
	got := make([]float32, 1)
	b.Get(got)
	assert.Equal(t, []float32{4}, got)
}

func TestBuffer_OverrunOverwritesOldest(t *testing.T) {
	b := New[float32, float32](4)
	b.Put([]float32{1, 2, 3, 4})
	b.Put([]float32{5, 6})

	assert.Equal(t, uint64(2), b.Overruns())
	assert.Equal(t, 4, b.Len())

	out := make([]float32, 4)
	b.Get(out)
	assert.Equal(t, []float32{3, 4, 5, 6}, out)
}

func TestBuffer_Reset(t *testing.T) {
	b := New[float32, float32](4)
	b.Put([]float32{1, 2, 3})
	b.Reset()

	assert.Zero(t, b.Len())
	out := make([]float32, 2)
	b.Get(out)
	assert.Equal(t, []float32{0, 0}, out)
}
