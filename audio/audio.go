// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Source is a pull-style PCM stream.
type Source interface {
	// SampleRate of the stream in Hz.
	SampleRate() int
	// Channels count (1 = mono, 2 = stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1, 1] and
	// returns how many values were written. io.EOF marks the end of the
	// stream and may come together with the last samples.
	ReadSamples(dst []float32) (n int, err error)
	// BufSize is the preferred read size in samples.
	BufSize() int
	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// maxStalls bounds consecutive (0, nil) reads before giving up.
const maxStalls = 100

// ReadFull reads from src until dst is full or the stream ends. When the
// stream ends it returns the samples read so far together with io.EOF.
func ReadFull(src Source, dst []float32) (int, error) {
	total, stalls := 0, 0
	for total < len(dst) {
		n, err := src.ReadSamples(dst[total:])
		total += n

		if errors.Is(err, io.EOF) {
			return total, io.EOF
		}
		if err != nil {
			return total, fmt.Errorf("read samples: %w", err)
		}

		if n == 0 {
			stalls++
			if stalls > maxStalls {
				return total, io.ErrNoProgress
			}
			continue
		}
		stalls = 0
	}
	return total, nil
}

// Registry maps format keys (usually file extensions such as "wav") to decoders.
type Registry struct {
	mtx    sync.RWMutex
	codecs map[string]Decoder
}

func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

// Register binds format to d. Keys are case-insensitive.
func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[strings.ToLower(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	d, ok := r.codecs[strings.ToLower(format)]
	return d, ok
}

// ForPath picks the decoder registered for the extension of path.
func (r *Registry) ForPath(path string) (Decoder, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	d, ok := r.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	return d, nil
}

// Formats lists the registered keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
