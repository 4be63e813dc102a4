// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// PCMReader is the part of the go-audio wav and aiff decoders used here.
type PCMReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// FullScale returns the magnitude that maps bitDepth PCM onto [-1, 1).
func FullScale(bitDepth int) (float32, error) {
	switch bitDepth {
	case 16:
		return 1 << 15, nil
	case 24:
		return 1 << 23, nil
	case 32:
		return 1 << 31, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}

// IntSource adapts a PCMReader to audio.Source.
type IntSource struct {
	dec        PCMReader
	sampleRate int
	channels   int
	scale      float32
	buf        *goaudio.IntBuffer
	eof        bool
}

// NewIntSource wraps dec. The decoder must already be positioned on the
// PCM data.
func NewIntSource(dec PCMReader, bitDepth int) (*IntSource, error) {
	scale, err := FullScale(bitDepth)
	if err != nil {
		return nil, err
	}

	f := dec.Format()
	if f == nil || f.NumChannels <= 0 || f.SampleRate <= 0 {
		return nil, ErrMissingFormat
	}

	return &IntSource{
		dec:        dec,
		sampleRate: f.SampleRate,
		channels:   f.NumChannels,
		scale:      scale,
		buf: &goaudio.IntBuffer{
			Format:         f,
			Data:           make([]int, 4096),
			SourceBitDepth: bitDepth,
		},
	}, nil
}

func (s *IntSource) SampleRate() int { return s.sampleRate }
func (s *IntSource) Channels() int   { return s.channels }
func (s *IntSource) BufSize() int    { return cap(s.buf.Data) }
func (s *IntSource) Close() error    { return nil }

func (s *IntSource) ReadSamples(dst []float32) (int, error) {
	if s.eof {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, nil
	}
	if cap(s.buf.Data) < want {
		s.buf.Data = make([]int, want)
	}
	s.buf.Data = s.buf.Data[:want]

	n, err := s.dec.PCMBuffer(s.buf)
	inv := 1 / s.scale
	for i, v := range s.buf.Data[:n] {
		dst[i] = float32(v) * inv
	}

	switch {
	case err != nil && err != io.EOF:
		return n, fmt.Errorf("pcm read: %w", err)
	case err == io.EOF || n < want:
		// go-audio reports a short buffer at the end of the data chunk
		s.eof = true
		return n, io.EOF
	}
	return n, nil
}

// Seekable returns r as an io.ReadSeeker, buffering it in memory when it
// cannot seek itself.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffer input: %w", err)
	}
	return bytes.NewReader(data), nil
}
