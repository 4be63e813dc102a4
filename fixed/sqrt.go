// SPDX-License-Identifier: EPL-2.0

package fixed

// Isqrt returns floor(sqrt(v)).
func Isqrt(v uint64) uint64 {
	if v < 2 {
		return v
	}

	// Start from the highest power of four not above v.
	var res uint64
	bit := uint64(1) << 62
	for bit > v {
		bit >>= 2
	}

	for bit != 0 {
		if v >= res+bit {
			v -= res + bit
			res = (res >> 1) + bit
		} else {
			res >>= 1
		}
		bit >>= 2
	}

	return res
}

// Mag returns the saturated magnitude sqrt(re² + im²) of a complex Q15 value
// in Q15.
func Mag(re, im Q15) Q15 {
	r, i := int64(re), int64(im)
	m := Isqrt(uint64(r*r + i*i))
	if m > MaxQ15 {
		return MaxQ15
	}
	return Q15(m)
}
