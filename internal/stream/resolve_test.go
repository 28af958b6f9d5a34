package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveBufferSize(t *testing.T) {
	tests := []struct {
		name        string
		requested   int
		higherRatio int
		size        int
		clamped     bool
	}{
		{"zero picks no-extra-latency size", 0, 4, 4, false},
		{"zero with trivial ratio", 0, 1, 1, false},
		{"below ratio clamps up", 3, 4, 4, true},
		{"at ratio", 4, 4, 4, false},
		{"rounds to power of two", 5, 1, 8, false},
		{"power of two unchanged", 16, 4, 16, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, clamped := ResolveBufferSize(tt.requested, tt.higherRatio)
			assert.Equal(t, tt.size, size)
			assert.Equal(t, tt.clamped, clamped)
		})
	}
}
