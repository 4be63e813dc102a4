// SPDX-License-Identifier: EPL-2.0

// Package wav decodes integer PCM WAV files (16, 24 or 32 bit, any channel
// count and rate) into an audio.Source and writes mono 16-bit WAV.
//
//	f, _ := os.Open("speech.wav")
//	src, err := wav.Decoder{}.Decode(f)
//
// Parsing is done by github.com/go-audio/wav, so chunks other than fmt and
// data are skipped instead of rejected.
package wav
