// SPDX-License-Identifier: EPL-2.0

// Package dsp implements the streaming spectrogram front-end of an on-device
// audio event detector.
//
// Each hop of Q15 audio goes through the same fixed chain:
//
//	raw samples -> Window -> Transform -> Magnitudes -> Quantize -> Spectrogram row
//
// All buffers are sized once when the Pipeline is initialized and reused for
// every frame, so steady-state processing does not allocate.
//
// # Pipeline
//
// A Pipeline converts one window of samples into one quantized row:
//
//	p, err := dsp.New(dsp.Config{FFTSize: 256, HopSize: 80, Bins: 32, TimeFrames: 80})
//	if err != nil {
//	    return err // invalid sizes or unsupported transform length
//	}
//	row := make([]int8, 32)
//	p.ProcessFrame(samples[:256], row, dsp.QuantizationParams{Divisor: 6, ZeroPoint: -128})
//
// # Spectrogram
//
// A Spectrogram is a T x B row-major int8 tensor, oldest frame first. Shift
// evicts the oldest rows and zeroes the tail so new rows can be written:
//
//	sg.Shift(4)
//	for i := range 4 {
//	    p.ProcessFrame(frame(i), sg.Row(sg.Frames()-4+i), params)
//	}
//
// # Stream
//
// Stream does the bookkeeping above for a continuous capture: it keeps the
// overlap tail of the previous block, shifts the spectrogram by the number
// of hops in the new block and writes one row per hop.
package dsp
