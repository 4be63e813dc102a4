// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"

	"github.com/ik5/audspec/fixed"
)

// Window holds precomputed Q15 Hann coefficients for one transform length.
type Window struct {
	coeffs []fixed.Q15
}

// NewWindow builds w[i] = 0.5 * (1 - cos(2*pi*i/size)) for i in [0, size).
// size must be positive.
func NewWindow(size int) *Window {
	coeffs := make([]fixed.Q15, size)
	for i := range size {
		f := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(size)))
		coeffs[i] = fixed.FromFloat(float32(f))
	}
	return &Window{coeffs: coeffs}
}

// Len returns the number of coefficients.
func (w *Window) Len() int { return len(w.coeffs) }

// Coefficients returns a copy of the table.
func (w *Window) Coefficients() []fixed.Q15 {
	out := make([]fixed.Q15, len(w.coeffs))
	copy(out, w.coeffs)
	return out
}

// Apply multiplies src by the window into dst. Both must hold at least Len()
// samples.
func (w *Window) Apply(dst, src []fixed.Q15) {
	fixed.MulSlice(dst[:len(w.coeffs)], w.coeffs, src[:len(w.coeffs)])
}
