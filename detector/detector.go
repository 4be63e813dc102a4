// SPDX-License-Identifier: EPL-2.0

package detector

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audspec/audio"
	"github.com/ik5/audspec/capture"
	"github.com/ik5/audspec/dsp"
	"github.com/ik5/audspec/fixed"
	"github.com/ik5/audspec/inference"
	"github.com/ik5/audspec/spectrumio"
)

// Config holds the detector parameters.
type Config struct {
	Stream     dsp.StreamConfig
	Threshold  float32
	Multiplier float32 // <= 0 uses inference.DefaultMultiplier
}

// Result is the outcome of one cycle.
type Result struct {
	Cycle     uint64
	Score     float32
	Detected  bool
	Saturated uint64 // cells clamped while building this cycle's rows
}

// Stats summarizes a run.
type Stats struct {
	Cycles     uint64
	Detections uint64
	Saturated  uint64
}

type Option func(*Detector)

// WithLogger sets the logger, logrus.StandardLogger() by default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(d *Detector) { d.log = l }
}

// WithHandler calls fn with every Result, on the Run goroutine.
func WithHandler(fn func(Result)) Option {
	return func(d *Detector) { d.handler = fn }
}

// WithSink writes the spectrogram after every update to w.
func WithSink(w *spectrumio.Writer) Option {
	return func(d *Detector) { d.sink = w }
}

type Detector struct {
	cfg     Config
	model   inference.Model
	capture *capture.Capture
	stream  *dsp.Stream
	params  dsp.QuantizationParams

	log     logrus.FieldLogger
	handler func(Result)
	sink    *spectrumio.Writer

	block []fixed.Q15
	stats Stats
}

// New wires src (mono, at the stream's sample rate) to model. The
// spectrogram is laid over model.Input().
func New(cfg Config, src audio.Source, model inference.Model, opts ...Option) (*Detector, error) {
	if cfg.Threshold < 0 || cfg.Threshold > 1 {
		return nil, fmt.Errorf("%w: %v", ErrThreshold, cfg.Threshold)
	}
	if err := cfg.Stream.Validate(); err != nil {
		return nil, err
	}
	if want := cfg.Stream.TimeFrames * cfg.Stream.Bins; len(model.Input()) != want {
		return nil, fmt.Errorf("%w: have %d, want %d", ErrInputSize, len(model.Input()), want)
	}

	stream, err := dsp.NewStream(cfg.Stream, model.Input())
	if err != nil {
		return nil, fmt.Errorf("build stream: %w", err)
	}

	c, err := capture.New(src, cfg.Stream.BlockSamples())
	if err != nil {
		return nil, err
	}

	d := &Detector{
		cfg:     cfg,
		model:   model,
		capture: c,
		stream:  stream,
		params:  inference.Params(model, cfg.Multiplier),
		log:     logrus.StandardLogger(),
		block:   make([]fixed.Q15, cfg.Stream.BlockSamples()),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.params.Divisor == 0 {
		d.log.WithField("scale", model.InputScale()).Warn("quantizer divisor is zero, magnitudes pass unscaled")
	}
	return d, nil
}

// Stats returns the counters of the last Run. Not safe to call while
// Run is active.
func (d *Detector) Stats() Stats { return d.stats }

// Run drives cycles until the source is drained (returns nil), ctx is done
// (returns ctx.Err()) or a stage fails. Run may be called once.
func (d *Detector) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	produced := make(chan error, 1)
	go func() { produced <- d.capture.Run(ctx) }()

	d.log.WithFields(logrus.Fields{
		"fft_size":    d.cfg.Stream.FFTSize,
		"hop_size":    d.cfg.Stream.HopSize,
		"block":       d.cfg.Stream.BlockSamples(),
		"time_frames": d.cfg.Stream.TimeFrames,
		"divisor":     d.params.Divisor,
		"zero_point":  d.params.ZeroPoint,
	}).Debug("detector started")

	err := d.loop(ctx)
	cancel()
	prodErr := <-produced

	if err == nil && prodErr != nil && !errors.Is(prodErr, context.Canceled) {
		err = prodErr
	}

	d.log.WithFields(logrus.Fields{
		"cycles":     d.stats.Cycles,
		"detections": d.stats.Detections,
		"saturated":  d.stats.Saturated,
	}).Info("detector stopped")

	return err
}

func (d *Detector) loop(ctx context.Context) error {
	for {
		n, err := d.capture.Next(ctx, d.block)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		res, err := d.cycle(ctx, d.block[:n])
		if err != nil {
			return err
		}
		d.report(res)
	}
}

func (d *Detector) cycle(ctx context.Context, block []fixed.Q15) (Result, error) {
	before := d.stream.Pipeline().Stats().Saturated
	if err := d.stream.Update(block, d.params); err != nil {
		return Result{}, fmt.Errorf("update spectrogram: %w", err)
	}

	score, err := d.model.Predict(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("predict: %w", err)
	}

	d.stats.Cycles++
	res := Result{
		Cycle:     d.stats.Cycles,
		Score:     score,
		Detected:  score >= d.cfg.Threshold,
		Saturated: d.stream.Pipeline().Stats().Saturated - before,
	}
	d.stats.Saturated += res.Saturated
	if res.Detected {
		d.stats.Detections++
	}

	if d.sink != nil {
		if err := d.sink.Write(d.stream.Spectrogram().Data()); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (d *Detector) report(res Result) {
	entry := d.log.WithFields(logrus.Fields{
		"cycle": res.Cycle,
		"score": res.Score,
	})
	if res.Saturated > 0 {
		entry = entry.WithField("saturated", res.Saturated)
	}

	if res.Detected {
		entry.Info("detected")
	} else {
		entry.Debug("not detected")
	}

	if d.handler != nil {
		d.handler(res)
	}
}
