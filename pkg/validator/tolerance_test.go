package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOffResolution_ZeroIsAlwaysOnResolution(t *testing.T) {
	// Zero is exempt regardless of the declared step, even when the step is
	// tiny or enormous. Inherited behavior; see the package comment.
	for _, res := range []float64{1e-9, 0.001, 0.1, 1, 42.5, 1e9} {
		assert.False(t, IsOffResolution(res, 0), "resolution %g", res)
	}
}

func TestIsOffResolution_IntegerMultiples(t *testing.T) {
	const res = 0.1
	for k := -25; k <= 25; k++ {
		value := float64(k) * res
		assert.False(t, IsOffResolution(res, value), "value %g should be on resolution %g", value, res)
	}
}

func TestIsOffResolution_HalfSteps(t *testing.T) {
	const res = 0.1
	for _, k := range []int{1, 3, 7, 19} {
		value := float64(k)*res + res/2
		assert.True(t, IsOffResolution(res, value), "value %g should be off resolution %g", value, res)
	}
}

func TestIsOffResolution_TinyResolutions(t *testing.T) {
	// Typical detuning value resolution.
	assert.False(t, IsOffResolution(2e-7, 1.25))
	assert.True(t, IsOffResolution(2e-7, 1.25+1e-7))
}

func TestRoundSig(t *testing.T) {
	tests := []struct {
		in     float64
		digits int
		want   float64
	}{
		{0.30000000000000004, 14, 0.3},
		{0.1 + 0.2, 14, 0.3},
		{150.0, 14, 150.0},
		{0, 14, 0},
		{-0.30000000000000004, 14, -0.3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, roundSig(tt.in, tt.digits), "roundSig(%v, %d)", tt.in, tt.digits)
	}
}

func TestApproxEqual(t *testing.T) {
	assert.True(t, approxEqual(1.0, 1.0+1e-12))
	assert.True(t, approxEqual(1e6, 1e6+1e-3))
	assert.False(t, approxEqual(1.0, 1.001))
	assert.False(t, approxEqual(0.5, 1.0))
}
