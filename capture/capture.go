// SPDX-License-Identifier: EPL-2.0

package capture

import (
	"context"
	"errors"
	"io"
	"sync/atomic"

	"github.com/ik5/audspec/audio"
	"github.com/ik5/audspec/fixed"
)

// Capture is a single producer, single consumer block handoff.
type Capture struct {
	src     audio.Source
	scratch []float32
	block   []fixed.Q15

	// ready carries the valid sample count of a published block and is
	// closed when the producer stops. release returns the slot.
	ready   chan int
	release chan struct{}

	started atomic.Bool
	blocks  atomic.Uint64
	err     error // written before ready is closed
}

// New prepares a capture of blockSamples mono samples from src.
func New(src audio.Source, blockSamples int) (*Capture, error) {
	if blockSamples <= 0 {
		return nil, ErrBlockSize
	}
	if src.Channels() != 1 {
		return nil, ErrNotMono
	}

	return &Capture{
		src:     src,
		scratch: make([]float32, blockSamples),
		block:   make([]fixed.Q15, blockSamples),
		ready:   make(chan int, 1),
		release: make(chan struct{}, 1),
	}, nil
}

// BlockSamples is the size of one published block.
func (c *Capture) BlockSamples() int { return len(c.block) }

// Blocks reports how many blocks were published so far.
func (c *Capture) Blocks() uint64 { return c.blocks.Load() }

// Run is the producer loop. It returns nil once the source is drained,
// ctx.Err() on cancellation, or the source error. It may only be called once.
func (c *Capture) Run(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	err := c.produce(ctx)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	if err == nil {
		c.err = io.EOF
	} else {
		c.err = err
	}
	close(c.ready)
	return err
}

func (c *Capture) produce(ctx context.Context) error {
	for {
		n, readErr := audio.ReadFull(c.src, c.scratch)
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return readErr
		}

		if n > 0 {
			fixed.FromFloats(c.block, c.scratch[:n])

			select {
			case c.ready <- n:
				c.blocks.Add(1)
			case <-ctx.Done():
				return ctx.Err()
			}

			select {
			case <-c.release:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if readErr != nil {
			return readErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// Next waits for a block, copies it into dst and releases the slot. It
// returns io.EOF after the last block, the producer error if it failed, or
// ctx.Err() on cancellation.
func (c *Capture) Next(ctx context.Context, dst []fixed.Q15) (int, error) {
	if len(dst) < len(c.block) {
		return 0, ErrShortBuffer
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	select {
	case n, ok := <-c.ready:
		if !ok {
			return 0, c.err
		}
		copy(dst, c.block[:n])
		c.release <- struct{}{}
		return n, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Close closes the source. Call it after Run has returned.
func (c *Capture) Close() error {
	return c.src.Close()
}
