// SPDX-License-Identifier: EPL-2.0

// Package audspec turns audio into the quantized int8 spectrogram tensors a
// keyword or event classifier consumes, using only fixed-point arithmetic on
// the hot path.
//
// The work is split across sub packages:
//
//   - fixed: Q15 arithmetic, saturation, integer square root
//   - dsp: Hann window, fixed-point FFT, quantizer, spectrogram buffer,
//     the per-frame Pipeline and the sliding-window Stream
//   - audio, formats/...: float PCM sources, decoders, mixing, resampling
//   - capture: single-slot handoff between an audio producer and the
//     control loop
//   - inference, detector: the classifier contract and the loop that runs
//     capture, spectrogram update and prediction each cycle
//   - spectrumio: framed spectrogram records for offline inspection
//
// This package glues the PCM side together. ResampleToMono16 collects a whole
// source as mono Q15 samples, NewRegistry knows every bundled format and Open
// picks the decoder from a file extension:
//
//	src, err := audspec.Open("speech.ogg")
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	pcm, err := audspec.ResampleToMono16(src, 8000, 4096)
package audspec
