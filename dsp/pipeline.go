// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"fmt"

	"github.com/ik5/audspec/fixed"
)

// Config holds the sizes a Pipeline is built for.
type Config struct {
	FFTSize    int `mapstructure:"fft_size" yaml:"fft_size"`
	HopSize    int `mapstructure:"hop_size" yaml:"hop_size"`
	Bins       int `mapstructure:"bins" yaml:"bins"`
	TimeFrames int `mapstructure:"time_frames" yaml:"time_frames"`
}

// SpectralBins returns FFTSize/2 + 1, the non-redundant half of the spectrum.
func (c Config) SpectralBins() int { return c.FFTSize/2 + 1 }

// Validate checks the sizes without building anything.
func (c Config) Validate() error {
	if c.FFTSize <= 0 || c.HopSize <= 0 || c.Bins <= 0 || c.TimeFrames <= 0 {
		return fmt.Errorf("%w: fft=%d hop=%d bins=%d frames=%d",
			ErrInvalidConfig, c.FFTSize, c.HopSize, c.Bins, c.TimeFrames)
	}
	if c.Bins > c.SpectralBins() {
		return fmt.Errorf("%w: %d bins requested, transform yields %d",
			ErrInvalidConfig, c.Bins, c.SpectralBins())
	}
	return nil
}

// Stats counts work done by a Pipeline since Init.
type Stats struct {
	Frames    uint64
	Saturated uint64
}

// Pipeline turns one window of Q15 samples into one quantized row.
// The zero value is uninitialized; call Init (or use New) before processing.
type Pipeline struct {
	cfg   Config
	ready bool

	window    *Window
	transform *Transform

	windowed  []fixed.Q15
	spectrum  []fixed.Q15
	magnitude []fixed.Q15

	stats Stats
}

// New returns an initialized Pipeline.
func New(cfg Config) (*Pipeline, error) {
	p := &Pipeline{}
	if err := p.Init(cfg); err != nil {
		return nil, err
	}
	return p, nil
}

// Init validates cfg, builds the window and transform and allocates the
// scratch buffers. On failure the pipeline stays uninitialized.
func (p *Pipeline) Init(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	transform, err := NewTransform(cfg.FFTSize)
	if err != nil {
		return fmt.Errorf("init transform: %w", err)
	}

	*p = Pipeline{
		cfg:       cfg,
		ready:     true,
		window:    NewWindow(cfg.FFTSize),
		transform: transform,
		windowed:  make([]fixed.Q15, cfg.FFTSize),
		spectrum:  make([]fixed.Q15, 2*cfg.FFTSize),
		magnitude: make([]fixed.Q15, cfg.SpectralBins()),
	}

	return nil
}

func (p *Pipeline) Ready() bool    { return p.ready }
func (p *Pipeline) Config() Config { return p.cfg }
func (p *Pipeline) Stats() Stats   { return p.stats }

// Magnitudes returns the magnitude buffer of the last processed frame. It is
// overwritten by the next ProcessFrame.
func (p *Pipeline) Magnitudes() []fixed.Q15 { return p.magnitude }

// ProcessFrame windows the first FFTSize samples, transforms them, extracts
// magnitudes and quantizes at most Bins of them into out. Positions of out
// past Bins are zeroed.
func (p *Pipeline) ProcessFrame(samples []fixed.Q15, out []int8, params QuantizationParams) error {
	if !p.ready {
		return ErrNotReady
	}
	if len(samples) < p.cfg.FFTSize {
		return fmt.Errorf("%w: have %d, want %d", ErrShortFrame, len(samples), p.cfg.FFTSize)
	}

	p.window.Apply(p.windowed, samples)
	p.transform.Forward(p.windowed, p.spectrum)

	fftBins := p.cfg.SpectralBins()
	Magnitudes(p.magnitude, p.spectrum, fftBins)

	writeBins := min(p.cfg.Bins, fftBins)
	sat := Quantize(out, p.magnitude, writeBins, params)

	p.stats.Frames++
	p.stats.Saturated += uint64(sat)

	return nil
}
