// SPDX-License-Identifier: EPL-2.0

package spectrumio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	Magic      uint16 = 0xA55A
	HeaderSize        = 4
)

// Writer frames spectrogram snapshots onto w.
type Writer struct {
	w       io.Writer
	buf     []byte
	records uint64
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Records is the number of records written.
func (w *Writer) Records() uint64 { return w.records }

// Write emits one record carrying data. Header and payload go out in a
// single Write call.
func (w *Writer) Write(data []int8) error {
	if len(data) > math.MaxUint16 {
		return fmt.Errorf("%w: %d", ErrRecordTooLarge, len(data))
	}

	size := HeaderSize + len(data)
	if cap(w.buf) < size {
		w.buf = make([]byte, size)
	}
	w.buf = w.buf[:size]

	binary.LittleEndian.PutUint16(w.buf[0:], Magic)
	binary.LittleEndian.PutUint16(w.buf[2:], uint16(len(data)))
	for i, v := range data {
		w.buf[HeaderSize+i] = byte(v)
	}

	if _, err := w.w.Write(w.buf); err != nil {
		return fmt.Errorf("spectrumio: write record: %w", err)
	}
	w.records++
	return nil
}
