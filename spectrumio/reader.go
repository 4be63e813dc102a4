// SPDX-License-Identifier: EPL-2.0

package spectrumio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Reader extracts records from a byte stream that may contain noise.
type Reader struct {
	r       *bufio.Reader
	size    int // expected payload length, 0 accepts any
	skipped uint64
}

// NewReader reads records from r. When size is positive only records of
// exactly that payload length are accepted; a header announcing anything
// else is treated as noise.
func NewReader(r io.Reader, size int) *Reader {
	return &Reader{r: bufio.NewReaderSize(r, 8192), size: size}
}

// Skipped is the number of bytes dropped while hunting for a header.
func (r *Reader) Skipped() uint64 { return r.skipped }

// Next returns the payload of the next record. It returns io.EOF at a clean
// end of stream and io.ErrUnexpectedEOF when a record is cut short.
func (r *Reader) Next() ([]int8, error) {
	var size int
	for {
		hdr, err := r.r.Peek(HeaderSize)
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.skipped += uint64(len(hdr))
				return nil, io.EOF
			}
			return nil, fmt.Errorf("spectrumio: %w", err)
		}

		size = int(binary.LittleEndian.Uint16(hdr[2:]))
		if binary.LittleEndian.Uint16(hdr) == Magic && (r.size <= 0 || size == r.size) {
			break
		}

		_, _ = r.r.Discard(1)
		r.skipped++
	}

	_, _ = r.r.Discard(HeaderSize)

	raw := make([]byte, size)
	if _, err := io.ReadFull(r.r, raw); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("spectrumio: payload: %w", err)
	}

	out := make([]int8, size)
	for i, b := range raw {
		out[i] = int8(b)
	}
	return out, nil
}
