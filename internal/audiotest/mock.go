// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides signal generators and mock sources for tests.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// ErrInjected is returned by a MockSource configured with FailAfter.
var ErrInjected = errors.New("audiotest: injected read failure")

// MockSource generates interleaved float32 audio on demand.
// It satisfies audio.Source without importing it.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // frames to generate per channel
	generated    int
	waveform     func(sample int, channel int) float32

	// FailAfter makes ReadSamples return ErrInjected once this many
	// frames were produced. Zero disables it.
	FailAfter int
	// MaxRead caps the frames returned by a single ReadSamples call,
	// zero means no cap. Useful to exercise short reads.
	MaxRead int

	Closed bool
}

// NewMockSource creates a source producing totalSamples frames of waveform.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource creates a source producing zeros.
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 { return 0 })
}

// NewSineSource creates a source producing a unit sine wave on every channel.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, _ int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a source producing value on every channel.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 { return value })
}

// NewRampSource creates a mono source whose sample i is (i % period) / period.
func NewRampSource(sampleRate, totalSamples, period int) *MockSource {
	return NewMockSource(sampleRate, 1, totalSamples, func(sample int, _ int) float32 {
		return float32(sample%period) / float32(period)
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Generated() int  { return m.generated }

func (m *MockSource) Close() error {
	m.Closed = true
	return nil
}

// Reset rewinds the generator.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.FailAfter > 0 && m.generated >= m.FailAfter {
		return 0, ErrInjected
	}
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalSamples-m.generated)
	if m.MaxRead > 0 {
		frames = min(frames, m.MaxRead)
	}
	if m.FailAfter > 0 {
		frames = min(frames, m.FailAfter-m.generated)
	}

	for f := range frames {
		idx := m.generated + f
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(idx, ch)
		}
	}
	m.generated += frames

	if m.generated >= m.totalSamples {
		return frames * m.channels, io.EOF
	}
	return frames * m.channels, nil
}
