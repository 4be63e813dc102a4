// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audspec/utils"
)

// Resampler converts src to another sample rate with Catmull-Rom cubic
// interpolation. Channel count is preserved. When downsampling, a one-pole
// low-pass tames aliasing before interpolation.
type Resampler struct {
	src      Source
	srcRate  int
	dstRate  int
	channels int
	step     float64 // source frames per output frame

	// hist[1] and hist[2] bracket the output position, hist[0] and hist[3]
	// shape the curve. has marks slots holding real (not duplicated) frames.
	hist   [4][]float32
	has    [4]bool
	primed bool
	pos    float64

	srcBuf []float32
	bufPos int
	bufLen int
	srcErr error
	stalls int

	lowpass bool
	alpha   float32
	state   []float32
}

// NewResampler wraps src so it produces dstRate Hz. dstRate <= 0 keeps the
// source rate.
func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	srcRate := src.SampleRate()
	if dstRate <= 0 {
		dstRate = srcRate
	}

	r := &Resampler{
		src:      src,
		srcRate:  srcRate,
		dstRate:  dstRate,
		channels: channels,
		step:     float64(srcRate) / float64(dstRate),
		srcBuf:   make([]float32, (4096/channels)*channels),
		lowpass:  srcRate > dstRate,
		alpha:    0.5,
		state:    make([]float32, channels),
	}
	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("resampler: %w", err)
	}
	return nil
}

// nextFrame copies the next source frame into dst.
func (r *Resampler) nextFrame(dst []float32, first bool) error {
	for r.bufPos+r.channels > r.bufLen {
		if r.srcErr != nil {
			return r.srcErr
		}

		n, err := r.src.ReadSamples(r.srcBuf)
		r.bufPos, r.bufLen = 0, n-n%r.channels

		switch {
		case errors.Is(err, io.EOF):
			r.srcErr = io.EOF
		case err != nil:
			r.srcErr = fmt.Errorf("resampler: %w", err)
		case n == 0:
			r.stalls++
			if r.stalls > maxStalls {
				return io.ErrNoProgress
			}
		default:
			r.stalls = 0
		}
	}

	copy(dst, r.srcBuf[r.bufPos:r.bufPos+r.channels])
	r.bufPos += r.channels

	if r.lowpass {
		if first {
			copy(r.state, dst)
		}
		for c := range dst {
			dst[c] = r.alpha*dst[c] + (1-r.alpha)*r.state[c]
			r.state[c] = dst[c]
		}
	}

	return nil
}

// fill reads into slot i, duplicating slot i-1 when the source is done.
func (r *Resampler) fill(i int) error {
	err := r.nextFrame(r.hist[i], false)
	if err == nil {
		r.has[i] = true
		return nil
	}

	r.has[i] = false
	copy(r.hist[i], r.hist[i-1])
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (r *Resampler) prime() error {
	if err := r.nextFrame(r.hist[1], true); err != nil {
		return err
	}
	copy(r.hist[0], r.hist[1])
	r.has[1] = true

	for i := 2; i < 4; i++ {
		if err := r.fill(i); err != nil {
			return err
		}
	}

	r.primed = true
	return nil
}

func (r *Resampler) advance() error {
	first := r.hist[0]
	copy(r.hist[:], r.hist[1:])
	copy(r.has[:], r.has[1:])
	r.hist[3] = first

	return r.fill(3)
}

// ReadSamples produces interleaved frames at the destination rate.
// len(dst) must be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	for written < len(dst)/r.channels {
		for r.pos >= 1 {
			r.pos--
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		// Past the last real frame only an exact hit on it is allowed.
		if !r.has[2] && (!r.has[1] || r.pos != 0) {
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		out := dst[written*r.channels:]
		for c := range r.channels {
			out[c] = utils.CubicInterpolate(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], x)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
