// SPDX-License-Identifier: EPL-2.0

package dsp

import "github.com/ik5/audspec/fixed"

// Magnitudes writes sqrt(re² + im²) for the first count complex bins of the
// interleaved spectrum into dst.
func Magnitudes(dst []fixed.Q15, spectrum []fixed.Q15, count int) {
	for k := range count {
		dst[k] = fixed.Mag(spectrum[2*k], spectrum[2*k+1])
	}
}
