// SPDX-License-Identifier: EPL-2.0

package audspec

import (
	"errors"
	"fmt"
	"os"

	"github.com/ik5/audspec/audio"
	"github.com/ik5/audspec/formats/aiff"
	"github.com/ik5/audspec/formats/mp3"
	"github.com/ik5/audspec/formats/vorbis"
	"github.com/ik5/audspec/formats/wav"
)

// NewRegistry returns a registry holding every bundled decoder, keyed by
// file extension.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	return reg
}

// fileSource closes the underlying file together with the decoder.
type fileSource struct {
	audio.Source
	f *os.File
}

func (s *fileSource) Close() error {
	return errors.Join(s.Source.Close(), s.f.Close())
}

// Open decodes path with the decoder registered for its extension.
func Open(path string) (audio.Source, error) {
	return OpenWith(NewRegistry(), path)
}

// OpenWith is Open with a caller supplied registry.
func OpenWith(reg *audio.Registry, path string) (audio.Source, error) {
	dec, err := reg.ForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &fileSource{Source: src, f: f}, nil
}
