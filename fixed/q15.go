// SPDX-License-Identifier: EPL-2.0

package fixed

import "math"

// Q15 is a signed fixed-point value with 15 fractional bits.
type Q15 = int16

const (
	// One is the scale factor of the Q15 format.
	One = 1 << 15

	MaxQ15 = math.MaxInt16
	MinQ15 = math.MinInt16
)

// FromFloat converts x to Q15, rounding half away from zero and saturating
// to [-32768, 32767]. 1.0 maps to 32767.
func FromFloat(x float32) Q15 {
	v := math.Round(float64(x) * One)
	if v > MaxQ15 {
		return MaxQ15
	}
	if v < MinQ15 {
		return MinQ15
	}
	return Q15(v)
}

// ToFloat converts a Q15 value back to float32.
func ToFloat(q Q15) float32 {
	return float32(q) / One
}

// FromFloats converts src into dst element-wise and returns the count written.
func FromFloats(dst []Q15, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = FromFloat(src[i])
	}
	return n
}

// Sat16 clamps a 32-bit value into the int16 range.
func Sat16(v int32) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

// Sat8 clamps a 32-bit value into the int8 range.
func Sat8(v int32) int8 {
	if v > math.MaxInt8 {
		return math.MaxInt8
	}
	if v < math.MinInt8 {
		return math.MinInt8
	}
	return int8(v)
}

// Mul multiplies two Q15 values, truncating toward negative infinity.
// -1 * -1 saturates to 32767.
func Mul(a, b Q15) Q15 {
	return Sat16((int32(a) * int32(b)) >> 15)
}

// MulSlice computes dst[i] = Mul(a[i], b[i]) for the common length.
func MulSlice(dst, a, b []Q15) {
	n := min(len(dst), len(a), len(b))
	for i := range n {
		dst[i] = Sat16((int32(a[i]) * int32(b[i])) >> 15)
	}
}

// Shift scales q by 2^bits (right shift when bits is negative) with saturation.
func Shift(q Q15, bits int) Q15 {
	switch {
	case bits > 0:
		return Sat16(int32(q) << min(bits, 16))
	case bits < 0:
		return Q15(int32(q) >> min(-bits, 15))
	default:
		return q
	}
}
