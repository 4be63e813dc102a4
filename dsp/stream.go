// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"fmt"

	"github.com/ik5/audspec/fixed"
)

// StreamConfig describes a continuous capture feeding a Pipeline.
type StreamConfig struct {
	Config `mapstructure:",squash" yaml:",inline"`

	// InputShift scales every captured sample by 2^InputShift (negative
	// values shift right) before it enters the input buffer.
	InputShift int `mapstructure:"input_shift" yaml:"input_shift"`
}

// FramesPerBlock returns ceil(FFTSize/HopSize), the rows produced per block.
func (c StreamConfig) FramesPerBlock() int {
	return (c.FFTSize + c.HopSize - 1) / c.HopSize
}

// BlockSamples returns how many new samples one capture block carries.
func (c StreamConfig) BlockSamples() int {
	return c.HopSize * c.FramesPerBlock()
}

// TailSamples returns how many samples of the previous block are kept to
// overlap the first window of the next one.
func (c StreamConfig) TailSamples() int {
	return c.FFTSize - c.HopSize
}

// BufferSamples returns the input buffer length, FFTSize + (shift-1)*HopSize.
func (c StreamConfig) BufferSamples() int {
	return c.FFTSize + (c.FramesPerBlock()-1)*c.HopSize
}

// Validate checks the pipeline sizes plus the streaming constraints.
func (c StreamConfig) Validate() error {
	if err := c.Config.Validate(); err != nil {
		return err
	}
	if c.HopSize > c.FFTSize {
		return fmt.Errorf("%w: hop %d exceeds fft size %d", ErrInvalidConfig, c.HopSize, c.FFTSize)
	}
	if c.FramesPerBlock() > c.TimeFrames {
		return fmt.Errorf("%w: %d frames per block exceed %d time frames",
			ErrInvalidConfig, c.FramesPerBlock(), c.TimeFrames)
	}
	return nil
}

// Stream keeps a spectrogram current with a continuous capture.
type Stream struct {
	cfg      StreamConfig
	pipeline *Pipeline
	spect    *Spectrogram
	input    []fixed.Q15
}

// NewStream builds the pipeline and wraps storage (nil allocates) as the
// spectrogram the stream keeps up to date.
func NewStream(cfg StreamConfig, storage []int8) (*Stream, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p, err := New(cfg.Config)
	if err != nil {
		return nil, err
	}

	sg, err := NewSpectrogram(cfg.TimeFrames, cfg.Bins, storage)
	if err != nil {
		return nil, err
	}

	return &Stream{
		cfg:      cfg,
		pipeline: p,
		spect:    sg,
		input:    make([]fixed.Q15, cfg.BufferSamples()),
	}, nil
}

func (s *Stream) Config() StreamConfig      { return s.cfg }
func (s *Stream) Pipeline() *Pipeline       { return s.pipeline }
func (s *Stream) Spectrogram() *Spectrogram { return s.spect }

// Update consumes one capture block: it evicts FramesPerBlock rows, slides
// the input buffer, appends block and writes one new row per hop at the end
// of the spectrogram. A block shorter than BlockSamples is padded with
// silence; extra samples are ignored.
func (s *Stream) Update(block []fixed.Q15, params QuantizationParams) error {
	shift := s.cfg.FramesPerBlock()
	tail := s.cfg.TailSamples()
	n := s.cfg.BlockSamples()

	s.spect.Shift(shift)

	// Keep the overlap of the previous block at the front.
	copy(s.input[:tail], s.input[len(s.input)-tail:])

	dst := s.input[tail:]
	m := min(len(block), n)
	if s.cfg.InputShift == 0 {
		copy(dst, block[:m])
	} else {
		for i := range m {
			dst[i] = fixed.Shift(block[i], s.cfg.InputShift)
		}
	}
	clear(dst[m:])

	first := s.cfg.TimeFrames - shift
	for i := range shift {
		start := i * s.cfg.HopSize
		frame := s.input[start : start+s.cfg.FFTSize]
		if err := s.pipeline.ProcessFrame(frame, s.spect.Row(first+i), params); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}

	return nil
}

// Reset clears the sample history and the spectrogram.
func (s *Stream) Reset() {
	clear(s.input)
	s.spect.Reset()
}
