// SPDX-License-Identifier: EPL-2.0

package audiotest

import "math"

// SineQ15 returns n Q15 samples of amplitude*sin(2*pi*frequency*t).
func SineQ15(n, sampleRate int, frequency float64, amplitude float32) []int16 {
	return toneQ15(n, sampleRate, frequency, amplitude, math.Sin)
}

// CosineQ15 returns n Q15 samples of amplitude*cos(2*pi*frequency*t).
func CosineQ15(n, sampleRate int, frequency float64, amplitude float32) []int16 {
	return toneQ15(n, sampleRate, frequency, amplitude, math.Cos)
}

func toneQ15(n, sampleRate int, frequency float64, amplitude float32, f func(float64) float64) []int16 {
	out := make([]int16, n)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		v := math.Round(float64(amplitude) * f(2*math.Pi*frequency*t) * 32768)
		out[i] = int16(max(math.MinInt16, min(math.MaxInt16, v)))
	}
	return out
}
