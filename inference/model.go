// SPDX-License-Identifier: EPL-2.0

package inference

import (
	"context"

	"github.com/ik5/audspec/dsp"
)

// DefaultMultiplier scales the model input scale into the quantizer divisor.
const DefaultMultiplier = 64

// Model is a classifier over a quantized spectrogram.
type Model interface {
	// Input is the tensor Predict reads, frames*bins values row-major.
	Input() []int8
	InputScale() float32
	InputZeroPoint() int32
	// Predict scores the current content of Input in [0, 1].
	Predict(ctx context.Context) (float32, error)
}

// Params derives quantizer settings from the input tensor parameters of m.
// A multiplier <= 0 uses DefaultMultiplier.
func Params(m Model, multiplier float32) dsp.QuantizationParams {
	if multiplier <= 0 {
		multiplier = DefaultMultiplier
	}
	return dsp.QuantizationParams{
		Divisor:   int32(multiplier * m.InputScale()),
		ZeroPoint: float32(m.InputZeroPoint()),
	}
}
