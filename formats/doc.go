// SPDX-License-Identifier: EPL-2.0

// Package formats holds what the go-audio backed decoders share: turning
// integer PCM buffers into an audio.Source and giving non-seekable inputs
// a seekable view. The decoders themselves live in the sub packages.
package formats
