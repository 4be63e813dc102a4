// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"

	"github.com/ik5/audspec/fixed"
)

// QuantizationParams maps magnitudes onto the int8 input of the classifier.
// A zero Divisor disables division.
type QuantizationParams struct {
	Divisor   int32
	ZeroPoint float32
}

// Offset returns the zero point rounded half away from zero.
func (p QuantizationParams) Offset() int32 {
	return int32(math.Round(float64(p.ZeroPoint)))
}

// Quantize writes sat8(mag[j]/Divisor + round(ZeroPoint)) for the first count
// magnitudes and zeroes dst[count:]. count is clamped to len(mag) and len(dst).
// It returns how many outputs were clamped to the int8 range.
func Quantize(dst []int8, mag []fixed.Q15, count int, p QuantizationParams) int {
	count = max(0, min(count, len(mag), len(dst)))
	offset := p.Offset()

	saturated := 0
	for j := range count {
		v := int32(mag[j])
		if p.Divisor != 0 {
			v /= p.Divisor
		}
		v += offset

		if v > math.MaxInt8 || v < math.MinInt8 {
			saturated++
		}
		dst[j] = fixed.Sat8(v)
	}

	clear(dst[count:])

	return saturated
}
