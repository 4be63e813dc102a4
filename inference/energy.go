// SPDX-License-Identifier: EPL-2.0

package inference

import (
	"context"
	"fmt"
	"math"
)

// EnergyConfig shapes an EnergyModel.
type EnergyConfig struct {
	Frames    int
	Bins      int
	Window    int // newest frames scored
	Scale     float32
	ZeroPoint int32
	Center    float32
	Slope     float32
}

// DefaultEnergyConfig matches an 80x32 spectrogram fed four frames per
// block.
func DefaultEnergyConfig() EnergyConfig {
	return EnergyConfig{
		Frames:    80,
		Bins:      32,
		Window:    4,
		Scale:     1,
		ZeroPoint: -128,
		Center:    1,
		Slope:     2,
	}
}

// EnergyModel scores the mean dequantized level of the newest frames
// through a logistic curve. Loud, tonal input scores near 1 and silence
// near 0.
type EnergyModel struct {
	cfg   EnergyConfig
	input []int8
}

func NewEnergyModel(cfg EnergyConfig) (*EnergyModel, error) {
	switch {
	case cfg.Frames <= 0 || cfg.Bins <= 0:
		return nil, fmt.Errorf("%w: %dx%d tensor", ErrInvalidModel, cfg.Frames, cfg.Bins)
	case cfg.Window <= 0 || cfg.Window > cfg.Frames:
		return nil, fmt.Errorf("%w: window %d outside [1, %d]", ErrInvalidModel, cfg.Window, cfg.Frames)
	case cfg.Scale <= 0:
		return nil, fmt.Errorf("%w: scale %v", ErrInvalidModel, cfg.Scale)
	case cfg.ZeroPoint < math.MinInt8 || cfg.ZeroPoint > math.MaxInt8:
		return nil, fmt.Errorf("%w: zero point %d", ErrInvalidModel, cfg.ZeroPoint)
	}

	return &EnergyModel{
		cfg:   cfg,
		input: make([]int8, cfg.Frames*cfg.Bins),
	}, nil
}

func (m *EnergyModel) Input() []int8         { return m.input }
func (m *EnergyModel) InputScale() float32   { return m.cfg.Scale }
func (m *EnergyModel) InputZeroPoint() int32 { return m.cfg.ZeroPoint }
func (m *EnergyModel) Config() EnergyConfig  { return m.cfg }

// Level is the mean dequantized value over the scored window.
func (m *EnergyModel) Level() float32 {
	start := (m.cfg.Frames - m.cfg.Window) * m.cfg.Bins

	var sum int64
	for _, q := range m.input[start:] {
		sum += int64(q) - int64(m.cfg.ZeroPoint)
	}
	return float32(sum) * m.cfg.Scale / float32(m.cfg.Window*m.cfg.Bins)
}

func (m *EnergyModel) Predict(ctx context.Context) (float32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	x := float64(m.cfg.Slope * (m.Level() - m.cfg.Center))
	return float32(1 / (1 + math.Exp(-x))), nil
}
