// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/ik5/audspec/fixed"
)

const (
	// MinTransformLength is the shortest supported transform.
	MinTransformLength = 32
	// MaxTransformLength is the longest supported transform.
	MaxTransformLength = 8192

	// guardBits extends Q15 samples to Q23 inside the butterflies.
	guardBits = 8
	// twiddleBits is the fractional precision of the twiddle tables.
	twiddleBits = 30
)

// Transform is a fixed-length forward transform of real Q15 samples.
//
// Output is n complex bins, interleaved re/im, in natural order and scaled
// by 1/n, so a cosine of amplitude a at bin k yields a/2 at bins k and n-k.
// All arithmetic is integer; the working buffer keeps guardBits extra bits
// and every stage halves its result so nothing can overflow.
type Transform struct {
	n   int
	cos []int32  // cos(2*pi*k/n) in Q30, k < n/2
	sin []int32  // sin(2*pi*k/n) in Q30, k < n/2
	rev []uint16 // bit-reversed position of every index
	acc []int32  // interleaved re/im working buffer, 2n values
}

// NewTransform prepares the twiddle and bit-reversal tables for length n.
// n must be a power of two in [MinTransformLength, MaxTransformLength].
func NewTransform(n int) (*Transform, error) {
	if n < MinTransformLength || n > MaxTransformLength || n&(n-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedLength, n)
	}

	t := &Transform{
		n:   n,
		cos: make([]int32, n/2),
		sin: make([]int32, n/2),
		rev: make([]uint16, n),
		acc: make([]int32, 2*n),
	}

	for k := range n / 2 {
		angle := 2 * math.Pi * float64(k) / float64(n)
		t.cos[k] = int32(math.Round(math.Cos(angle) * (1 << twiddleBits)))
		t.sin[k] = int32(math.Round(math.Sin(angle) * (1 << twiddleBits)))
	}

	shift := 16 - bits.TrailingZeros(uint(n))
	for i := range n {
		t.rev[i] = bits.Reverse16(uint16(i)) >> shift
	}

	return t, nil
}

// Len returns the transform length.
func (t *Transform) Len() int { return t.n }

// Forward transforms n real samples from in into out, which must hold 2n
// values. It never allocates.
func (t *Transform) Forward(in []fixed.Q15, out []fixed.Q15) {
	n := t.n
	acc := t.acc

	// Load in bit-reversed order; imaginary parts start at zero.
	for i := range n {
		j := int(t.rev[i])
		acc[2*j] = int32(in[i]) << guardBits
		acc[2*j+1] = 0
	}

	const round = 1 << (twiddleBits - 1)

	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		step := n / size

		for start := 0; start < n; start += size {
			for k := range half {
				u := 2 * (start + k)
				v := u + 2*half

				// e^{-i*theta} = cos - i*sin
				wr := int64(t.cos[k*step])
				wi := -int64(t.sin[k*step])

				br, bi := int64(acc[v]), int64(acc[v+1])
				tr := int32((br*wr - bi*wi + round) >> twiddleBits)
				ti := int32((br*wi + bi*wr + round) >> twiddleBits)

				ar, ai := acc[u], acc[u+1]

				acc[u] = (ar + tr) >> 1
				acc[u+1] = (ai + ti) >> 1
				acc[v] = (ar - tr) >> 1
				acc[v+1] = (ai - ti) >> 1
			}
		}
	}

	const half = 1 << (guardBits - 1)
	out = out[:2*n]
	for i, v := range acc {
		out[i] = fixed.Sat16((v + half) >> guardBits)
	}
}
