// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III through github.com/hajimehoshi/go-mp3.
// The decoder always yields stereo frames, mono files included; put an
// audio.MonoMixer behind it when one channel is wanted.
package mp3
