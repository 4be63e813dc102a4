// SPDX-License-Identifier: EPL-2.0

// Package utils holds small numeric helpers shared by the float audio path.
package utils

// CubicInterpolate evaluates the Catmull-Rom segment between y1 (x = 0) and
// y2 (x = 1); y0 and y3 are the neighbouring samples that shape the curve.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	c3 := 0.5*(y3-y0) + 1.5*(y1-y2)
	c2 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	c1 := 0.5 * (y2 - y0)

	return ((c3*x+c2)*x+c1)*x + y1
}
