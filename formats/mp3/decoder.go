// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audspec/audio"
)

// go-mp3 always produces 16-bit little-endian stereo.
const (
	channels   = 2
	frameBytes = 2 * channels
)

// pcmReader is the subset of gomp3.Decoder the source needs.
type pcmReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec  pcmReader
	buf  []byte
	keep int // bytes of an incomplete frame carried to the next read
	done bool
}

func newSource(dec pcmReader) *source {
	return &source{dec: dec, buf: make([]byte, 8192)}
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return len(s.buf) / 2 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.done {
		return 0, io.EOF
	}

	need := (len(dst) / channels) * frameBytes
	if need == 0 {
		return 0, nil
	}
	if len(s.buf) < need {
		grown := make([]byte, need)
		copy(grown, s.buf[:s.keep])
		s.buf = grown
	}

	n, err := s.dec.Read(s.buf[s.keep:need])
	have := s.keep + n
	whole := have - have%frameBytes

	samples := whole / 2
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / 32768
	}
	s.keep = copy(s.buf, s.buf[whole:have])

	switch {
	case err == io.EOF:
		s.done = true
		return samples, io.EOF
	case err != nil:
		return samples, fmt.Errorf("mp3: %w", err)
	}
	return samples, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}
	return newSource(dec), nil
}
