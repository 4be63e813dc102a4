// SPDX-License-Identifier: EPL-2.0

package dsp

import "fmt"

// Spectrogram is a frames x bins row-major int8 tensor holding quantized
// history, oldest frame at row 0.
//
// The storage may alias a tensor owned by someone else (typically the
// classifier input). Spectrogram must be its only writer.
type Spectrogram struct {
	frames int
	bins   int
	data   []int8
}

// NewSpectrogram wraps storage as a frames x bins tensor. A nil storage is
// allocated; otherwise its length must be exactly frames*bins.
func NewSpectrogram(frames, bins int, storage []int8) (*Spectrogram, error) {
	if frames <= 0 || bins <= 0 {
		return nil, fmt.Errorf("%w: frames=%d bins=%d", ErrInvalidConfig, frames, bins)
	}
	if storage == nil {
		storage = make([]int8, frames*bins)
	}
	if len(storage) != frames*bins {
		return nil, fmt.Errorf("%w: have %d, want %d", ErrStorageSize, len(storage), frames*bins)
	}

	return &Spectrogram{frames: frames, bins: bins, data: storage}, nil
}

func (s *Spectrogram) Frames() int  { return s.frames }
func (s *Spectrogram) Bins() int    { return s.bins }
func (s *Spectrogram) Data() []int8 { return s.data }

// Row returns the storage of row index. It panics if index is out of range.
func (s *Spectrogram) Row(index int) []int8 {
	return s.data[index*s.bins : (index+1)*s.bins : (index+1)*s.bins]
}

// Shift drops the oldest amount rows, moves the rest to the front and zeroes
// the freed tail. amount <= 0 is a no-op; amount >= Frames() clears all rows.
func (s *Spectrogram) Shift(amount int) {
	if amount <= 0 {
		return
	}
	if amount >= s.frames {
		clear(s.data)
		return
	}

	keep := (s.frames - amount) * s.bins
	// copy has memmove semantics, overlapping ranges are fine.
	copy(s.data[:keep], s.data[amount*s.bins:])
	clear(s.data[keep:])
}

// WriteFrame replaces row index with row. row must hold Bins() values.
func (s *Spectrogram) WriteFrame(index int, row []int8) error {
	if index < 0 || index >= s.frames {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrFrameIndex, index, s.frames)
	}
	if len(row) != s.bins {
		return fmt.Errorf("%w: row has %d bins, want %d", ErrStorageSize, len(row), s.bins)
	}

	copy(s.Row(index), row)
	return nil
}

// Reset zeroes the whole tensor.
func (s *Spectrogram) Reset() { clear(s.data) }
