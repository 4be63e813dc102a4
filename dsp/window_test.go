// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audspec/fixed"
)

func TestNewWindow_Deterministic(t *testing.T) {
	t.Parallel()

	for _, size := range []int{1, 7, 64, 256, 1024} {
		a := NewWindow(size).Coefficients()
		b := NewWindow(size).Coefficients()
		require.Len(t, a, size)
		assert.Equal(t, a, b, "size %d", size)
	}
}

func TestNewWindow_Shape(t *testing.T) {
	t.Parallel()

	w := NewWindow(256).Coefficients()

	assert.Equal(t, fixed.Q15(0), w[0], "window starts at zero")
	assert.Equal(t, fixed.Q15(math.MaxInt16), w[128], "peak saturates to the largest Q15 value")
	assert.Equal(t, fixed.Q15(16384), w[64], "quarter point is 0.5")

	for i := 1; i < 128; i++ {
		assert.LessOrEqual(t, w[i-1], w[i], "rising half must be monotonic at %d", i)
		assert.InDelta(t, w[i], w[256-i], 1, "window must be symmetric at %d", i)
	}
}

func TestWindow_Apply(t *testing.T) {
	t.Parallel()

	w := NewWindow(64)
	src := make([]fixed.Q15, 64)
	for i := range src {
		src[i] = 16384
	}
	dst := make([]fixed.Q15, 64)

	w.Apply(dst, src)

	coeffs := w.Coefficients()
	for i := range dst {
		assert.Equal(t, fixed.Mul(coeffs[i], 16384), dst[i], "index %d", i)
	}
}
