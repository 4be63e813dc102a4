// SPDX-License-Identifier: EPL-2.0

// Package capture moves audio from a producer goroutine to the control loop
// one block at a time.
//
// A Capture owns a single Q15 block. Run fills it from an audio.Source and
// publishes it; Next copies it out and hands the slot back. The producer
// never touches the block while the consumer is copying it, so no lock is
// held around the samples.
//
//	c, _ := capture.New(src, 320)
//	go c.Run(ctx)
//
//	block := make([]fixed.Q15, 320)
//	for {
//	    n, err := c.Next(ctx, block)
//	    if err != nil {
//	        break // io.EOF once the source is drained
//	    }
//	    stream.Update(block[:n], params)
//	}
package capture
