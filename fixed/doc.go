// SPDX-License-Identifier: EPL-2.0

// Package fixed implements the Q15 arithmetic the feature pipeline runs on.
//
// A Q15 value is an int16 holding value/32768, so the representable range is
// [-1.0, 1.0). Every operation here saturates instead of wrapping:
//
//	q := fixed.FromFloat(0.5)      // 16384
//	p := fixed.Mul(q, q)           // 8192 (0.25)
//	m := fixed.Mag(3000, 4000)     // 5000
//	b := fixed.Sat8(300)           // 127
//
// All functions are allocation free and deterministic across platforms.
package fixed
